// Package cursor implements the buffer-bounded cursor used by every tab.
package cursor

import (
	"github.com/bethropolis/zim/internal/types"
)

// Bounds is the part of a buffer the cursor needs to stay valid.
type Bounds interface {
	LineCount() int
	LineLength(line int) int
}

// Cursor is a (line, column) position. Columns are rune indices and are
// re-clamped on every vertical move; no desired column is remembered.
type Cursor struct {
	types.Position
}

// New returns a cursor at the origin.
func New() Cursor {
	return Cursor{}
}

// Pos returns a copy of the current position.
func (c *Cursor) Pos() types.Position {
	return c.Position
}

// SetPosition moves the cursor to pos, clamped to b.
func (c *Cursor) SetPosition(pos types.Position, b Bounds) {
	c.Position = pos
	c.Clamp(b)
}

// Clamp pulls the cursor back inside b.
func (c *Cursor) Clamp(b Bounds) {
	count := b.LineCount()
	if count <= 0 {
		c.Line, c.Col = 0, 0
		return
	}
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line >= count {
		c.Line = count - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := b.LineLength(c.Line); c.Col > n {
		c.Col = n
	}
}

func (c *Cursor) MoveLeft(b Bounds) {
	if c.Col > 0 {
		c.Col--
	}
	c.Clamp(b)
}

func (c *Cursor) MoveRight(b Bounds) {
	if c.Col < b.LineLength(c.Line) {
		c.Col++
	}
	c.Clamp(b)
}

// MoveUp is a no-op on the first line.
func (c *Cursor) MoveUp(b Bounds) {
	if c.Line > 0 {
		c.Line--
	}
	c.Clamp(b)
}

// MoveDown is a no-op on the last line.
func (c *Cursor) MoveDown(b Bounds) {
	if c.Line < b.LineCount()-1 {
		c.Line++
	}
	c.Clamp(b)
}

func (c *Cursor) MoveToLineStart(b Bounds) {
	c.Col = 0
	c.Clamp(b)
}

func (c *Cursor) MoveToLineEnd(b Bounds) {
	c.Col = b.LineLength(c.Line)
	c.Clamp(b)
}

func (c *Cursor) MoveToFileStart(b Bounds) {
	c.Line, c.Col = 0, 0
	c.Clamp(b)
}

// MoveToFileEnd places the cursor at the start of the last line.
func (c *Cursor) MoveToFileEnd(b Bounds) {
	c.Line = b.LineCount() - 1
	c.Col = 0
	c.Clamp(b)
}

// PageUp moves up by n lines, stopping at the first line.
func (c *Cursor) PageUp(n int, b Bounds) {
	if n < 1 {
		n = 1
	}
	c.Line -= n
	c.Clamp(b)
}

// PageDown moves down by n lines, stopping at the last line.
func (c *Cursor) PageDown(n int, b Bounds) {
	if n < 1 {
		n = 1
	}
	c.Line += n
	c.Clamp(b)
}
