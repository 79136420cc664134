package modehandler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/zim/internal/input"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/types"
)

func (mh *ModeHandler) handleInsert(k input.Key) {
	tab := mh.tab()
	buf := tab.Buffer
	c := &tab.Cursor

	cmd, ok := mh.resolve(ModeInsert, k)
	if !ok {
		if !k.Printable() {
			mh.ignore(k)
			return
		}
		buf.InsertCharAt(c.Pos(), k.Rune)
		c.SetPosition(types.Position{Line: c.Line, Col: c.Col + 1}, buf)
		mh.changed()
		return
	}

	switch cmd {
	case "normal_mode":
		mh.setMode(ModeNormal)
	case "newline":
		buf.InsertNewlineAt(c.Pos())
		c.SetPosition(types.Position{Line: c.Line + 1}, buf)
		mh.changed()
	case "backspace":
		switch {
		case c.Col > 0:
			buf.DeleteCharAt(types.Position{Line: c.Line, Col: c.Col - 1})
			c.MoveLeft(buf)
		case c.Line > 0:
			prev := c.Line - 1
			col := buf.LineLength(prev)
			buf.JoinLine(prev)
			c.SetPosition(types.Position{Line: prev, Col: col}, buf)
		default:
			return
		}
		mh.changed()
	case "delete_forward":
		switch {
		case c.Col < buf.LineLength(c.Line):
			buf.DeleteCharAt(c.Pos())
		case c.Line < buf.LineCount()-1:
			buf.JoinLine(c.Line)
		default:
			return
		}
		mh.changed()
	case "indent":
		width := mh.editor.Config().TabWidth
		if end, ok := buf.InsertText(c.Pos(), strings.Repeat(" ", width)); ok {
			c.SetPosition(end, buf)
			mh.changed()
		}
	case "move_left", "move_right", "move_up", "move_down", "start_of_line", "end_of_line":
		mh.runNormal(cmd)
	default:
		logger.DebugTagf("keys", "Insert: command '%s' not available", cmd)
	}
}

// handleDelete runs the second key of a "d" operator. Unknown keys cancel
// the operator and are handled as Normal keys.
func (mh *ModeHandler) handleDelete(k input.Key) {
	tab := mh.tab()
	buf := tab.Buffer
	c := &tab.Cursor

	cmd, ok := mh.resolve(ModeDelete, k)
	if !ok {
		mh.setMode(ModeNormal)
		mh.handleNormal(k)
		return
	}

	mh.setMode(ModeNormal)
	before := buf.Version()
	switch cmd {
	case "cancel":
		return
	case "delete_line":
		mh.clip.Set(buf.Line(c.Line), true)
		buf.DeleteLine(c.Line)
		c.SetPosition(types.Position{Line: c.Line}, buf)
	case "delete_word":
		buf.DeleteWordAt(c.Pos())
	case "delete_to_end":
		buf.DeleteToEndOfLine(c.Pos())
	case "delete_to_start":
		buf.DeleteToStartOfLine(c.Pos())
		c.MoveToLineStart(buf)
	default:
		logger.DebugTagf("keys", "Delete: command '%s' not available", cmd)
		return
	}
	c.Clamp(buf)
	if buf.Version() != before {
		mh.changed()
	}
}

// handleVisual handles the keys that end a selection. Everything else is
// a Normal key; leaving for a non-visual mode drops the selection.
func (mh *ModeHandler) handleVisual(k input.Key) {
	tab := mh.tab()
	buf := tab.Buffer
	lineMode := mh.mode == ModeVisualLine

	cmd, ok := mh.resolve(mh.mode, k)
	if !ok {
		mh.handleNormal(k)
		if !mh.mode.IsVisual() || !mh.tab().Buffer.HasSelection() {
			buf.ClearSelection()
			if mh.mode.IsVisual() {
				mh.setMode(ModeNormal)
			}
		}
		return
	}

	pos := tab.Cursor.Pos()
	switch cmd {
	case "normal_mode":
		buf.ClearSelection()
		mh.setMode(ModeNormal)
	case "visual_mode", "visual_line_mode":
		want := ModeVisual
		if cmd == "visual_line_mode" {
			want = ModeVisualLine
		}
		if mh.mode == want {
			buf.ClearSelection()
			mh.setMode(ModeNormal)
			return
		}
		mh.setMode(want)
	case "yank_selection":
		sel, ok := buf.SelectionBounds(pos, lineMode)
		if ok {
			text := buf.GetSelectedText(pos, lineMode)
			mh.clip.Set(text, lineMode)
			tab.Cursor.SetPosition(sel.Start, buf)
			mh.status.SetTemporaryMessage("Yanked %s", describeYank(text, lineMode))
		}
		buf.ClearSelection()
		mh.setMode(ModeNormal)
	case "delete_selection":
		sel, ok := buf.SelectionBounds(pos, lineMode)
		if ok {
			mh.clip.Set(buf.GetSelectedText(pos, lineMode), lineMode)
			if buf.DeleteSelection(pos, lineMode) {
				at := sel.Start
				if lineMode {
					at = types.Position{Line: sel.Start.Line}
				}
				tab.Cursor.SetPosition(at, buf)
				mh.changed()
			}
		}
		buf.ClearSelection()
		mh.setMode(ModeNormal)
	default:
		logger.DebugTagf("keys", "Visual: command '%s' not available", cmd)
	}
}

func describeYank(text string, lineMode bool) string {
	if lineMode {
		return plural(strings.Count(text, "\n")+1, "line")
	}
	return plural(utf8.RuneCountInString(text), "character")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
