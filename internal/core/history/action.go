// Package history provides undo/redo functionality via a linear action log.
package history

import "github.com/bethropolis/zim/internal/types"

// Edit is one reversible buffer mutation. The set of implementations is
// closed; the buffer switches over all of them when applying and reverting.
type Edit interface {
	isEdit()
}

// InsertChar records Char inserted at Pos.
type InsertChar struct {
	Pos  types.Position
	Char rune
}

// DeleteChar records Char removed from Pos.
type DeleteChar struct {
	Pos  types.Position
	Char rune
}

// InsertNewline records a split at Pos. Remaining is the text that moved to
// the new line.
type InsertNewline struct {
	Pos       types.Position
	Remaining string
}

// DeleteLine records the removal of Line. Sole is set when it was the only
// line, in which case the buffer kept a single empty line instead.
type DeleteLine struct {
	Line    int
	Content string
	Sole    bool
}

// JoinLines records Line+1 being appended to Line; Col is the join column.
type JoinLines struct {
	Line int
	Col  int
}

// ReplaceSelection records OldText in [Start, End) replaced by NewText.
type ReplaceSelection struct {
	OldText string
	NewText string
	Start   types.Position
	End     types.Position
}

// SetContent records a wholesale content swap (reload).
type SetContent struct {
	OldLines []string
	NewLines []string
}

// OpenLineBelow records an empty line inserted at index Line.
type OpenLineBelow struct {
	Line int
}

// OpenLineAbove records an empty line inserted at index Line.
type OpenLineAbove struct {
	Line int
}

// DeleteWord records Text removed starting at Pos.
type DeleteWord struct {
	Pos  types.Position
	Text string
}

// DeleteToEndOfLine records Text removed from Pos to the end of the line.
type DeleteToEndOfLine struct {
	Pos  types.Position
	Text string
}

// DeleteToStartOfLine records Text removed from column 0 up to Pos.
// Pos is the original cursor position, before the deletion.
type DeleteToStartOfLine struct {
	Pos  types.Position
	Text string
}

func (InsertChar) isEdit()          {}
func (DeleteChar) isEdit()          {}
func (InsertNewline) isEdit()       {}
func (DeleteLine) isEdit()          {}
func (JoinLines) isEdit()           {}
func (ReplaceSelection) isEdit()    {}
func (SetContent) isEdit()          {}
func (OpenLineBelow) isEdit()       {}
func (OpenLineAbove) isEdit()       {}
func (DeleteWord) isEdit()          {}
func (DeleteToEndOfLine) isEdit()   {}
func (DeleteToStartOfLine) isEdit() {}

// EditorAction is an Edit plus the cursor on either side of it.
type EditorAction struct {
	Edit         Edit
	CursorBefore types.Position
	CursorAfter  types.Position
}
