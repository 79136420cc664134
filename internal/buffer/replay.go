package buffer

import (
	"github.com/bethropolis/zim/internal/core/cursor"
	"github.com/bethropolis/zim/internal/core/history"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/types"
)

// Edit runs fn, which may mutate the buffer and move c, then records where
// c was before fn and after it on the actions fn pushed. The mutators only
// know the positions they were given; Edit supplies the editor's cursor.
func (sb *SliceBuffer) Edit(c *cursor.Cursor, fn func()) {
	mark := sb.history.Pushed()
	before := c.Pos()
	fn()
	sb.history.SetCursors(mark, before, c.Pos())
}

// Undo reverts the most recent action and moves c to where it was before.
func (sb *SliceBuffer) Undo(c *cursor.Cursor) bool {
	action, ok := sb.history.UndoAction()
	if !ok {
		return false
	}
	sb.history.StartUndoOrRedo()
	defer sb.history.EndUndoOrRedo()

	logger.Debugf("Buffer: Undoing %T", action.Edit)
	sb.revert(action.Edit)
	sb.anchor = nil
	sb.touch()
	if c != nil {
		c.SetPosition(action.CursorBefore, sb)
	}
	return true
}

// Redo reapplies the next undone action and moves c to where it ended up.
func (sb *SliceBuffer) Redo(c *cursor.Cursor) bool {
	action, ok := sb.history.RedoAction()
	if !ok {
		return false
	}
	sb.history.StartUndoOrRedo()
	defer sb.history.EndUndoOrRedo()

	logger.Debugf("Buffer: Redoing %T", action.Edit)
	sb.apply(action.Edit)
	sb.anchor = nil
	sb.touch()
	if c != nil {
		c.SetPosition(action.CursorAfter, sb)
	}
	return true
}

// apply performs e on the line storage.
func (sb *SliceBuffer) apply(e history.Edit) {
	switch e := e.(type) {
	case history.InsertChar:
		if sb.validLine(e.Pos.Line) {
			sb.insertText(sb.clampPos(e.Pos), string(e.Char))
		}
	case history.DeleteChar:
		sb.removeRunes(e.Pos, 1)
	case history.InsertNewline:
		if sb.validLine(e.Pos.Line) {
			at := sb.clampPos(e.Pos)
			head, tail := splitRunes(sb.lines[at.Line], at.Col)
			sb.lines[at.Line] = head
			sb.insertLine(at.Line+1, tail)
		}
	case history.DeleteLine:
		if e.Sole {
			sb.lines = []string{""}
		} else {
			sb.removeLine(e.Line)
		}
	case history.JoinLines:
		if sb.validLine(e.Line + 1) {
			sb.lines[e.Line] += sb.lines[e.Line+1]
			sb.removeLine(e.Line + 1)
		}
	case history.ReplaceSelection:
		if sb.validRange(e.Start, e.End) {
			sb.replaceRange(e.Start, e.End, e.NewText)
		}
	case history.SetContent:
		sb.setLines(e.NewLines)
	case history.OpenLineBelow:
		sb.insertLine(e.Line, "")
	case history.OpenLineAbove:
		sb.insertLine(e.Line, "")
	case history.DeleteWord:
		sb.removeRunes(e.Pos, runeLen(e.Text))
	case history.DeleteToEndOfLine:
		if sb.validLine(e.Pos.Line) {
			head, _ := splitRunes(sb.lines[e.Pos.Line], e.Pos.Col)
			sb.lines[e.Pos.Line] = head
		}
	case history.DeleteToStartOfLine:
		sb.removeRunes(types.Position{Line: e.Pos.Line}, runeLen(e.Text))
	default:
		logger.Errorf("Buffer: apply: unhandled edit %T", e)
	}
}

// revert undoes e on the line storage.
func (sb *SliceBuffer) revert(e history.Edit) {
	switch e := e.(type) {
	case history.InsertChar:
		sb.removeRunes(e.Pos, 1)
	case history.DeleteChar:
		if sb.validLine(e.Pos.Line) {
			sb.insertText(sb.clampPos(e.Pos), string(e.Char))
		}
	case history.InsertNewline:
		if sb.validLine(e.Pos.Line + 1) {
			sb.lines[e.Pos.Line] += sb.lines[e.Pos.Line+1]
			sb.removeLine(e.Pos.Line + 1)
		}
	case history.DeleteLine:
		if e.Sole {
			sb.lines = []string{e.Content}
		} else {
			sb.insertLine(e.Line, e.Content)
		}
	case history.JoinLines:
		if sb.validLine(e.Line) {
			head, tail := splitRunes(sb.lines[e.Line], e.Col)
			sb.lines[e.Line] = head
			sb.insertLine(e.Line+1, tail)
		}
	case history.ReplaceSelection:
		end := endOf(e.Start, e.NewText)
		if sb.validRange(e.Start, end) {
			sb.replaceRange(e.Start, end, e.OldText)
		}
	case history.SetContent:
		sb.setLines(e.OldLines)
	case history.OpenLineBelow:
		sb.removeLine(e.Line)
	case history.OpenLineAbove:
		sb.removeLine(e.Line)
	case history.DeleteWord:
		if sb.validLine(e.Pos.Line) {
			sb.insertText(sb.clampPos(e.Pos), e.Text)
		}
	case history.DeleteToEndOfLine:
		if sb.validLine(e.Pos.Line) {
			sb.lines[e.Pos.Line] += e.Text
		}
	case history.DeleteToStartOfLine:
		if sb.validLine(e.Pos.Line) {
			sb.lines[e.Pos.Line] = e.Text + sb.lines[e.Pos.Line]
		}
	default:
		logger.Errorf("Buffer: revert: unhandled edit %T", e)
	}
}

func (sb *SliceBuffer) setLines(lines []string) {
	if len(lines) == 0 {
		sb.lines = []string{""}
		return
	}
	sb.lines = cloneLines(lines)
}

// removeRunes deletes n runes starting at pos, within one line.
func (sb *SliceBuffer) removeRunes(pos types.Position, n int) {
	if !sb.validLine(pos.Line) {
		return
	}
	runes := []rune(sb.lines[pos.Line])
	if pos.Col < 0 || pos.Col >= len(runes) {
		return
	}
	end := pos.Col + n
	if end > len(runes) {
		end = len(runes)
	}
	sb.lines[pos.Line] = string(runes[:pos.Col]) + string(runes[end:])
}

func (sb *SliceBuffer) validRange(start, end types.Position) bool {
	return sb.validLine(start.Line) && sb.validLine(end.Line) &&
		start.Col >= 0 && start.Col <= sb.LineLength(start.Line) &&
		end.Col >= 0 && end.Col <= sb.LineLength(end.Line) &&
		!end.Before(start)
}

func runeLen(s string) int {
	return len([]rune(s))
}
