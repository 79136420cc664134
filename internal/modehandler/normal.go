package modehandler

import (
	"strconv"
	"strings"

	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/input"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/snake"
	"github.com/bethropolis/zim/internal/types"
)

func (mh *ModeHandler) handleNormal(k input.Key) {
	cmd, ok := mh.resolve(ModeNormal, k)
	if !ok {
		mh.ignore(k)
		return
	}
	mh.runNormal(cmd)
}

// runNormal executes a Normal-mode command.
func (mh *ModeHandler) runNormal(cmd string) {
	tab := mh.tab()
	buf := tab.Buffer
	c := &tab.Cursor

	switch cmd {
	case "quit":
		mh.quit = true
	case "insert_mode":
		mh.setMode(ModeInsert)
	case "command_mode":
		mh.cmdBuffer = ""
		mh.setMode(ModeCommand)
	case "save_file":
		mh.beginWrite(false)
	case "save_and_quit":
		mh.beginWrite(true)
	case "reload_file":
		mh.beginReload()
	case "delete_char":
		if c.Col < buf.LineLength(c.Line) {
			buf.DeleteCharAt(c.Pos())
			mh.changed()
		}
		mh.setMode(ModeInsert)
	case "open_line_below":
		if line, ok := buf.OpenLineBelow(c.Line); ok {
			c.SetPosition(types.Position{Line: line}, buf)
			mh.changed()
		}
		mh.setMode(ModeInsert)
	case "open_line_above":
		if line, ok := buf.OpenLineAbove(c.Line); ok {
			c.SetPosition(types.Position{Line: line}, buf)
			mh.changed()
		}
		mh.setMode(ModeInsert)
	case "delete_mode":
		mh.setMode(ModeDelete)
	case "visual_mode":
		buf.StartSelection(c.Pos())
		mh.setMode(ModeVisual)
	case "visual_line_mode":
		buf.StartSelection(types.Position{Line: c.Line})
		mh.setMode(ModeVisualLine)
	case "move_left":
		c.MoveLeft(buf)
	case "move_down":
		c.MoveDown(buf)
	case "move_up":
		c.MoveUp(buf)
	case "move_right":
		c.MoveRight(buf)
	case "start_of_line":
		c.MoveToLineStart(buf)
	case "end_of_line":
		c.MoveToLineEnd(buf)
	case "start_of_file":
		c.MoveToFileStart(buf)
	case "end_of_file":
		c.MoveToFileEnd(buf)
	case "page_up":
		c.PageUp(mh.pageSize(), buf)
	case "page_down":
		c.PageDown(mh.pageSize(), buf)
	case "undo":
		if !buf.Undo(c) {
			mh.status.SetTemporaryMessage("Nothing to undo")
			return
		}
		mh.changed()
	case "redo":
		if !buf.Redo(c) {
			mh.status.SetTemporaryMessage("Nothing to redo")
			return
		}
		mh.changed()
	case "paste":
		mh.paste()
	case "next_diagnostic":
		mh.jumpDiagnostic(true)
	case "prev_diagnostic":
		mh.jumpDiagnostic(false)
	case "find_file":
		mh.OpenFinder()
	case "token_search":
		mh.search.Reset()
		mh.setMode(ModeTokenSearch)
	case "run_build":
		mh.runGoTool(diagnostics.GoBuild)
	case "run_vet":
		mh.runGoTool(diagnostics.GoVet)
	case "diagnostics_panel":
		mh.openDiagnosticsPanel()
	case "snake_game":
		mh.startSnake()
	case "show_help":
		mh.helpScroll = 0
		mh.setMode(ModeHelp)
	case "new_tab":
		mh.editor.NewTab()
	case "close_tab":
		mh.closeTab(false)
	case "next_tab":
		mh.editor.NextTab()
	case "prev_tab":
		mh.editor.PrevTab()
	default:
		if n, ok := gotoTabNumber(cmd); ok {
			if !mh.editor.GotoTab(n - 1) {
				mh.status.SetTemporaryMessage("No tab %d", n)
			}
			return
		}
		logger.Warnf("ModeHandler: unknown normal command '%s'", cmd)
	}
}

// gotoTabNumber parses "goto_tab_N".
func gotoTabNumber(cmd string) (int, bool) {
	rest, ok := strings.CutPrefix(cmd, "goto_tab_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil && n > 0
}

// paste inserts the register at the cursor. Linewise text goes on a new
// line below, in one undoable step.
func (mh *ModeHandler) paste() {
	text, linewise := mh.clip.Get()
	if text == "" {
		mh.status.SetTemporaryMessage("Clipboard empty")
		return
	}
	tab := mh.tab()
	buf := tab.Buffer
	c := &tab.Cursor

	if linewise {
		eol := types.Position{Line: c.Line, Col: buf.LineLength(c.Line)}
		if _, ok := buf.InsertText(eol, "\n"+text); ok {
			c.SetPosition(types.Position{Line: c.Line + 1}, buf)
			mh.changed()
		}
		return
	}
	if end, ok := buf.InsertText(c.Pos(), text); ok {
		c.SetPosition(end, buf)
		mh.changed()
	}
}

func (mh *ModeHandler) closeTab(force bool) {
	tab := mh.tab()
	if tab.Buffer.IsModified() && !force {
		mh.status.SetTemporaryMessage("%s has unsaved changes (:tabc! to discard)", tab.Title())
		return
	}
	mh.editor.CloseTab()
}

// jumpDiagnostic moves to the next or previous diagnostic line in the
// current file.
func (mh *ModeHandler) jumpDiagnostic(forward bool) {
	tab := mh.tab()
	var line int
	var ok bool
	if forward {
		line, ok = tab.Diagnostics.NextLine(tab.Cursor.Line)
	} else {
		line, ok = tab.Diagnostics.PrevLine(tab.Cursor.Line)
	}
	if !ok {
		mh.status.SetTemporaryMessage("No diagnostics")
		return
	}
	d := tab.Diagnostics.ForLine(line)[0]
	tab.Cursor.SetPosition(types.Position{Line: line, Col: d.Span.Start}, tab.Buffer)
	mh.status.SetTemporaryMessage("%s: %s", d.Severity, firstLine(d.Message))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func (mh *ModeHandler) startSnake() {
	vp := mh.tab().Viewport
	mh.snake = snake.New(vp.Width-2, vp.Height-2, mh.rng)
	mh.setMode(ModeSnake)
}
