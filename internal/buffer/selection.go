package buffer

import (
	"strings"

	"github.com/bethropolis/zim/internal/core/history"
	"github.com/bethropolis/zim/internal/types"
)

// Selection is the resolved extent of the selection for one cursor position.
// In character mode it covers [Start, End). In line mode it covers every
// column of rows Start.Line through End.Line.
type Selection struct {
	Start    types.Position
	End      types.Position
	LineMode bool
}

// Contains reports whether the cell at (line, col) is selected.
func (s Selection) Contains(line, col int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if s.LineMode {
		return true
	}
	p := types.Position{Line: line, Col: col}
	return !p.Before(s.Start) && p.Before(s.End)
}

// Empty reports whether the selection covers nothing.
func (s Selection) Empty() bool {
	return !s.LineMode && s.Start == s.End
}

// StartSelection anchors a selection at pos.
func (sb *SliceBuffer) StartSelection(pos types.Position) {
	at := sb.clampPos(pos)
	if !sb.validLine(at.Line) {
		at = types.Position{}
	}
	sb.anchor = &at
}

func (sb *SliceBuffer) ClearSelection() {
	sb.anchor = nil
}

func (sb *SliceBuffer) HasSelection() bool {
	return sb.anchor != nil
}

// SelectionAnchor returns the anchor, if any.
func (sb *SliceBuffer) SelectionAnchor() (types.Position, bool) {
	if sb.anchor == nil {
		return types.Position{}, false
	}
	return *sb.anchor, true
}

// SelectionBounds resolves the selection between the anchor and cursor.
// Renderers call it once per frame and test cells with Contains.
func (sb *SliceBuffer) SelectionBounds(cursor types.Position, lineMode bool) (Selection, bool) {
	if sb.anchor == nil {
		return Selection{}, false
	}
	start, end := types.Ordered(sb.clampLinePos(*sb.anchor), sb.clampLinePos(cursor))
	if lineMode {
		start.Col = 0
		end.Col = sb.LineLength(end.Line)
	}
	return Selection{Start: start, End: end, LineMode: lineMode}, true
}

// IsPositionSelected reports whether (line, col) lies in the selection.
func (sb *SliceBuffer) IsPositionSelected(line, col int, cursor types.Position, lineMode bool) bool {
	sel, ok := sb.SelectionBounds(cursor, lineMode)
	return ok && sel.Contains(line, col)
}

// GetSelectedText returns the selected text. Line-mode text is the selected
// rows joined by newlines.
func (sb *SliceBuffer) GetSelectedText(cursor types.Position, lineMode bool) string {
	sel, ok := sb.SelectionBounds(cursor, lineMode)
	if !ok {
		return ""
	}
	if lineMode {
		return strings.Join(sb.lines[sel.Start.Line:sel.End.Line+1], "\n")
	}
	return sb.textRange(sel.Start, sel.End)
}

// DeleteSelection removes what GetSelectedText would return and clears the
// selection. It reports whether anything was removed.
func (sb *SliceBuffer) DeleteSelection(cursor types.Position, lineMode bool) bool {
	sel, ok := sb.SelectionBounds(cursor, lineMode)
	if !ok {
		return false
	}
	sb.anchor = nil

	start, end := sel.Start, sel.End
	after := start
	if lineMode {
		// Widen to a character range that also takes one separating newline,
		// so whole rows disappear.
		first, last := sel.Start.Line, sel.End.Line
		switch {
		case last < len(sb.lines)-1:
			start = types.Position{Line: first}
			end = types.Position{Line: last + 1}
		case first > 0:
			start = types.Position{Line: first - 1, Col: sb.LineLength(first - 1)}
			end = types.Position{Line: last, Col: sb.LineLength(last)}
		default:
			start = types.Position{}
			end = types.Position{Line: last, Col: sb.LineLength(last)}
		}
		after = types.Position{Line: first}
	}
	if start == end {
		return false
	}

	old := sb.textRange(start, end)
	sb.replaceRange(start, end, "")
	if after.Line >= len(sb.lines) {
		after = types.Position{Line: len(sb.lines) - 1}
	}
	sb.touch()
	sb.record(history.ReplaceSelection{OldText: old, Start: start, End: end}, cursor, after)
	return true
}

// clampLinePos clamps both coordinates of pos into the buffer.
func (sb *SliceBuffer) clampLinePos(pos types.Position) types.Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	return sb.clampPos(pos)
}
