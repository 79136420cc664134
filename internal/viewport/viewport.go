// Package viewport tracks the visible window of a buffer.
package viewport

import (
	"github.com/rivo/uniseg"
)

// Viewport is the window onto a buffer, in buffer rows and visual columns.
type Viewport struct {
	TopLine    int
	LeftColumn int
	Width      int
	Height     int
	ScrollOff  int
}

// New creates a viewport with the given scroll-off margin.
func New(scrollOff int) *Viewport {
	return &Viewport{ScrollOff: scrollOff}
}

// Resize sets the text area size. Negative sizes are treated as zero.
func (v *Viewport) Resize(width, height int) {
	v.Width = max(width, 0)
	v.Height = max(height, 0)
}

// effectiveScrollOff caps the margin at just under half the height so the
// cursor always has a row to sit on.
func (v *Viewport) effectiveScrollOff() int {
	so := v.ScrollOff
	if so*2 >= v.Height {
		if v.Height > 0 {
			so = (v.Height - 1) / 2
		} else {
			so = 0
		}
	}
	return max(so, 0)
}

// EnsureCursorVisible scrolls so that row and visualCol are on screen with
// ScrollOff rows of context where the height allows.
func (v *Viewport) EnsureCursorVisible(row, visualCol int) {
	so := v.effectiveScrollOff()

	if row < v.TopLine+so {
		v.TopLine = row - so
	} else if v.Height > 0 && row >= v.TopLine+v.Height-so {
		v.TopLine = row - v.Height + 1 + so
	}

	if visualCol < v.LeftColumn {
		v.LeftColumn = visualCol
	} else if v.Width > 0 && visualCol >= v.LeftColumn+v.Width {
		v.LeftColumn = visualCol - v.Width + 1
	}

	v.TopLine = max(v.TopLine, 0)
	v.LeftColumn = max(v.LeftColumn, 0)
}

// ScrollUp moves the window n rows towards the top.
func (v *Viewport) ScrollUp(n int) {
	v.TopLine = max(v.TopLine-n, 0)
}

// ScrollDown moves the window n rows down, never past the last line.
func (v *Viewport) ScrollDown(n, lineCount int) {
	v.TopLine = min(v.TopLine+n, max(lineCount-1, 0))
}

// VisibleRange returns the half-open row range [start, end) on screen.
func (v *Viewport) VisibleRange(lineCount int) (start, end int) {
	start = min(v.TopLine, lineCount)
	end = min(v.TopLine+v.Height, lineCount)
	return start, end
}

// VisualColumn returns the screen column of rune index col in line, with
// tabs expanded to the next multiple of tabWidth.
func VisualColumn(line string, col, tabWidth int) int {
	if col <= 0 {
		return 0
	}
	visual := 0
	runeIndex := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if runeIndex >= col {
			break
		}
		runes := gr.Runes()
		visual += CellWidth(runes[0], gr.Width(), visual, tabWidth)
		runeIndex += len(runes)
	}
	return visual
}

// CellWidth is the number of screen cells a grapheme occupies when drawn
// at visual column at. Tabs stretch to the next tab stop.
func CellWidth(first rune, width, at, tabWidth int) int {
	if first == '\t' {
		if tabWidth <= 0 {
			tabWidth = 1
		}
		return tabWidth - at%tabWidth
	}
	return width
}
