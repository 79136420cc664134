// internal/tui/render.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/zim/internal/buffer"
	"github.com/bethropolis/zim/internal/core"
	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/highlighter"
	"github.com/bethropolis/zim/internal/statusbar"
	"github.com/bethropolis/zim/internal/theme"
	"github.com/bethropolis/zim/internal/viewport"
)

const (
	tabBarHeight    = 1
	statusBarHeight = 1
	// markerColumns hold the diagnostic and change markers.
	markerColumns = 2
	minDigits     = 3
)

// CursorMode says where the terminal cursor goes.
type CursorMode int

const (
	CursorText CursorMode = iota
	CursorPrompt
	CursorHidden
)

// Frame is everything the renderer needs for one screen.
type Frame struct {
	Tabs    []*core.Tab
	Current int

	// Selection is resolved once per frame for the current tab.
	Selection    buffer.Selection
	HasSelection bool
	Highlights   highlighter.Result

	Status  *statusbar.StatusBar
	Overlay Overlay

	Cursor       CursorMode
	PromptColumn int
}

// Renderer draws frames. It never modifies editor state.
type Renderer struct {
	theme       *theme.Theme
	tabWidth    int
	lineNumbers bool
}

func NewRenderer(th *theme.Theme, tabWidth int, lineNumbers bool) *Renderer {
	return &Renderer{theme: th, tabWidth: tabWidth, lineNumbers: lineNumbers}
}

// GutterWidth is the number of columns left of the text.
func GutterWidth(lineCount int, lineNumbers bool) int {
	if !lineNumbers {
		return markerColumns
	}
	return markerColumns + max(digits(lineCount), minDigits) + 1
}

// TextArea returns the size of the text region for a screen of w by h.
func TextArea(w, h, lineCount int, lineNumbers bool) (int, int) {
	return max(w-GutterWidth(lineCount, lineNumbers), 0), max(h-tabBarHeight-statusBarHeight, 0)
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// Draw paints f onto s. The caller shows the screen.
func (r *Renderer) Draw(s tcell.Screen, f Frame) {
	width, height := s.Size()
	if width <= 0 || height <= 0 || len(f.Tabs) == 0 {
		return
	}
	tab := f.Tabs[min(max(f.Current, 0), len(f.Tabs)-1)]
	textHeight := max(height-tabBarHeight-statusBarHeight, 0)

	r.drawTabBar(s, f, width)
	r.drawText(s, f, tab, width, textHeight)
	if f.Status != nil {
		f.Status.Draw(s, height-1, width)
	}
	if f.Overlay != nil {
		f.Overlay.Draw(s, Rect{X: 0, Y: tabBarHeight, W: width, H: textHeight}, r.theme)
	}

	switch {
	case f.Overlay != nil || f.Cursor == CursorHidden:
		s.HideCursor()
	case f.Cursor == CursorPrompt:
		s.ShowCursor(min(f.PromptColumn, width-1), height-1)
	default:
		r.placeCursor(s, tab, width, textHeight)
	}
}

func (r *Renderer) drawTabBar(s tcell.Screen, f Frame, width int) {
	barStyle := r.theme.GetStyle("TabBar")
	activeStyle := r.theme.GetStyle("TabBarActive")
	for x := 0; x < width; x++ {
		s.SetContent(x, 0, ' ', nil, barStyle)
	}
	x := 0
	for i, tab := range f.Tabs {
		label := fmt.Sprintf(" %d:%s ", i+1, tab.Title())
		if tab.Buffer.IsModified() {
			label = fmt.Sprintf(" %d:%s [+] ", i+1, tab.Title())
		}
		style := barStyle
		if i == f.Current {
			style = activeStyle
		}
		x = statusbar.DrawText(s, x, 0, width-x, label, style)
		if x >= width {
			return
		}
	}
}

func (r *Renderer) drawText(s tcell.Screen, f Frame, tab *core.Tab, width, height int) {
	defStyle := r.theme.GetStyle("Default")
	buf := tab.Buffer
	gutter := GutterWidth(buf.LineCount(), r.lineNumbers)
	numDigits := 0
	if r.lineNumbers {
		numDigits = gutter - markerColumns - 1
	}

	for row := 0; row < height; row++ {
		y := tabBarHeight + row
		for x := 0; x < width; x++ {
			s.SetContent(x, y, ' ', nil, defStyle)
		}
		line := tab.Viewport.TopLine + row
		if line >= buf.LineCount() {
			s.SetContent(0, y, '~', nil, r.theme.GetStyle("LineNumber"))
			continue
		}
		if gutter >= width {
			continue
		}
		r.drawGutter(s, tab, line, y, numDigits)
		r.drawLine(s, f, tab, line, y, gutter, width)
	}
}

func (r *Renderer) drawGutter(s tcell.Screen, tab *core.Tab, line, y, numDigits int) {
	if ds := tab.Diagnostics.ForLine(line); len(ds) > 0 {
		sev := worstSeverity(ds)
		s.SetContent(0, y, severityMarker(sev), nil, r.severityStyle(sev))
	}
	switch {
	case tab.ReloadDiff.Has(line):
		s.SetContent(1, y, '~', nil, r.theme.GetStyle("GutterDiff"))
	case tab.Buffer.IsLineModified(line):
		s.SetContent(1, y, '+', nil, r.theme.GetStyle("GutterModified"))
	}
	if numDigits == 0 {
		return
	}
	style := r.theme.GetStyle("LineNumber")
	if line == tab.Cursor.Line {
		style = r.theme.GetStyle("LineNumberActive")
	}
	statusbar.DrawText(s, markerColumns, y, numDigits, fmt.Sprintf("%*d", numDigits, line+1), style)
}

// drawLine draws the visible part of one buffer line. Style priority is
// selection, then diagnostics, then syntax.
func (r *Renderer) drawLine(s tcell.Screen, f Frame, tab *core.Tab, line, y, gutter, width int) {
	defStyle := r.theme.GetStyle("Default")
	selStyle := r.theme.GetStyle("Selection")
	left := tab.Viewport.LeftColumn
	textWidth := width - gutter
	spans := tab.Diagnostics.ForLine(line)

	text := tab.Buffer.Line(line)
	gr := uniseg.NewGraphemes(text)
	visual, runeIndex := 0, 0
	for gr.Next() {
		if visual >= left+textWidth {
			break
		}
		runes := gr.Runes()
		cw := viewport.CellWidth(runes[0], gr.Width(), visual, r.tabWidth)

		style := defStyle
		if name, ok := f.Highlights.StyleAt(line, runeIndex); ok {
			style = r.theme.GetStyle(name)
		}
		if d, ok := diagnosticAt(spans, runeIndex); ok {
			style = style.Underline(true).Foreground(r.severityColor(d.Severity))
		}
		if f.HasSelection && f.Selection.Contains(line, runeIndex) {
			style = selStyle
		}

		if visual >= left && visual+cw <= left+textWidth {
			x := gutter + visual - left
			if runes[0] == '\t' {
				for i := 0; i < cw; i++ {
					s.SetContent(x+i, y, ' ', nil, style)
				}
			} else {
				s.SetContent(x, y, runes[0], runes[1:], style)
			}
		}
		visual += cw
		runeIndex += len(runes)
	}

	// An empty or short line in a line selection still shows one cell.
	if f.HasSelection && f.Selection.LineMode && f.Selection.Contains(line, 0) {
		if x := gutter + visual - left; visual >= left && x < width {
			s.SetContent(x, y, ' ', nil, selStyle)
		}
	}
}

func (r *Renderer) placeCursor(s tcell.Screen, tab *core.Tab, width, height int) {
	buf := tab.Buffer
	gutter := GutterWidth(buf.LineCount(), r.lineNumbers)
	visual := viewport.VisualColumn(buf.Line(tab.Cursor.Line), tab.Cursor.Col, r.tabWidth)
	x := gutter + visual - tab.Viewport.LeftColumn
	row := tab.Cursor.Line - tab.Viewport.TopLine
	if x < gutter || x >= width || row < 0 || row >= height {
		s.HideCursor()
		return
	}
	s.ShowCursor(x, tabBarHeight+row)
}

func diagnosticAt(ds []diagnostics.Diagnostic, col int) (diagnostics.Diagnostic, bool) {
	for _, d := range ds {
		if col >= d.Span.Start && col < d.Span.End {
			return d, true
		}
	}
	return diagnostics.Diagnostic{}, false
}

func worstSeverity(ds []diagnostics.Diagnostic) diagnostics.Severity {
	worst := ds[0].Severity
	for _, d := range ds[1:] {
		if d.Severity < worst {
			worst = d.Severity
		}
	}
	return worst
}

func severityMarker(sev diagnostics.Severity) rune {
	switch sev {
	case diagnostics.SeverityError:
		return 'E'
	case diagnostics.SeverityWarning:
		return 'W'
	case diagnostics.SeverityInfo:
		return 'I'
	}
	return 'H'
}

func (r *Renderer) severityStyle(sev diagnostics.Severity) tcell.Style {
	switch sev {
	case diagnostics.SeverityError:
		return r.theme.GetStyle("DiagnosticError")
	case diagnostics.SeverityWarning:
		return r.theme.GetStyle("DiagnosticWarning")
	}
	return r.theme.GetStyle("DiagnosticInfo")
}

func (r *Renderer) severityColor(sev diagnostics.Severity) tcell.Color {
	fg, _, _ := r.severityStyle(sev).Decompose()
	return fg
}
