// internal/tui/overlay.go
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/finder"
	"github.com/bethropolis/zim/internal/search"
	"github.com/bethropolis/zim/internal/snake"
	"github.com/bethropolis/zim/internal/statusbar"
	"github.com/bethropolis/zim/internal/theme"
)

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Overlay is drawn over the text area.
type Overlay interface {
	Draw(s tcell.Screen, area Rect, th *theme.Theme)
}

const (
	maxOverlayWidth  = 100
	maxOverlayHeight = 24
)

// popup returns the centred box used by the list overlays.
func popup(area Rect) Rect {
	w := min(area.W-4, maxOverlayWidth)
	h := min(area.H-2, maxOverlayHeight)
	return Rect{X: area.X + (area.W-w)/2, Y: area.Y + (area.H-h)/2, W: w, H: h}
}

// drawBox fills r with a bordered frame and returns the inner region.
func drawBox(s tcell.Screen, r Rect, style tcell.Style, title string) Rect {
	if r.W < 2 || r.H < 2 {
		return Rect{}
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for y := r.Y; y <= bottom; y++ {
		for x := r.X; x <= right; x++ {
			ch := ' '
			switch {
			case y == r.Y && x == r.X:
				ch = tcell.RuneULCorner
			case y == r.Y && x == right:
				ch = tcell.RuneURCorner
			case y == bottom && x == r.X:
				ch = tcell.RuneLLCorner
			case y == bottom && x == right:
				ch = tcell.RuneLRCorner
			case y == r.Y || y == bottom:
				ch = tcell.RuneHLine
			case x == r.X || x == right:
				ch = tcell.RuneVLine
			}
			s.SetContent(x, y, ch, nil, style)
		}
	}
	if title != "" {
		statusbar.DrawText(s, r.X+2, r.Y, r.W-4, title, style.Bold(true))
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// listWindow returns the first item to show so that selected stays
// inside a window of h rows.
func listWindow(selected, count, h int) int {
	if h <= 0 || count <= h {
		return 0
	}
	return min(max(selected-h+1, 0), count-h)
}

func fillRow(s tcell.Screen, x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawMarked draws text with the clusters for which marked(byteOffset,
// runeIndex) holds in the mark style.
func drawMarked(s tcell.Screen, x, y, w int, text string, base, mark tcell.Style, marked func(byteOff, runeIdx int) bool) {
	gr := uniseg.NewGraphemes(text)
	cx, runeIdx := x, 0
	for gr.Next() {
		cw := gr.Width()
		if cx+cw > x+w {
			return
		}
		from, _ := gr.Positions()
		runes := gr.Runes()
		style := base
		if marked(from, runeIdx) {
			style = mark
		}
		s.SetContent(cx, y, runes[0], runes[1:], style)
		cx += cw
		runeIdx += len(runes)
	}
}

// FinderOverlay shows the fuzzy file finder.
type FinderOverlay struct {
	Finder *finder.Finder
}

func (o FinderOverlay) Draw(s tcell.Screen, area Rect, th *theme.Theme) {
	base := th.GetStyle("Overlay")
	matches := o.Finder.Matches()
	title := fmt.Sprintf(" Files %d/%d ", len(matches), len(o.Finder.Files()))
	inner := drawBox(s, popup(area), base, title)
	if inner.H < 2 {
		return
	}
	statusbar.DrawText(s, inner.X, inner.Y, inner.W, "> "+o.Finder.Query(), base)

	rows := inner.H - 1
	first := listWindow(o.Finder.SelectedIndex(), len(matches), rows)
	for row := 0; row < rows && first+row < len(matches); row++ {
		i := first + row
		m := matches[i]
		style := base
		if i == o.Finder.SelectedIndex() {
			style = th.GetStyle("OverlaySelected")
		}
		y := inner.Y + 1 + row
		fillRow(s, inner.X, y, inner.W, style)
		matched := make(map[int]bool, len(m.Matched))
		for _, idx := range m.Matched {
			matched[idx] = true
		}
		markStyle := th.GetStyle("OverlayMatch")
		if i == o.Finder.SelectedIndex() {
			markStyle = markStyle.Reverse(true)
		}
		drawMarked(s, inner.X, y, inner.W, m.Path, style, markStyle, func(off, _ int) bool {
			return matched[off]
		})
	}
}

// SearchOverlay shows project-wide token search results.
type SearchOverlay struct {
	Search *search.Search
}

func (o SearchOverlay) Draw(s tcell.Screen, area Rect, th *theme.Theme) {
	base := th.GetStyle("Overlay")
	results := o.Search.Results()
	inner := drawBox(s, popup(area), base, fmt.Sprintf(" Search: %d results ", len(results)))
	if inner.H < 2 {
		return
	}
	statusbar.DrawText(s, inner.X, inner.Y, inner.W, "> "+o.Search.Query(), base)

	rows := inner.H - 1
	selected := o.Search.SelectedIndex()
	first := listWindow(selected, len(results), rows)
	for row := 0; row < rows && first+row < len(results); row++ {
		i := first + row
		res := results[i]
		style := base
		if i == selected {
			style = th.GetStyle("OverlaySelected")
		}
		y := inner.Y + 1 + row
		fillRow(s, inner.X, y, inner.W, style)

		prefix := fmt.Sprintf("%s:%d: ", res.Path, res.Line+1)
		x := statusbar.DrawText(s, inner.X, y, inner.W, prefix, style.Dim(true))
		hits := search.FindInLines([]string{res.Text}, o.Search.Query())
		drawMarked(s, x, y, inner.X+inner.W-x, res.Text, style, th.GetStyle("SearchHighlight"), func(_, idx int) bool {
			for _, h := range hits {
				if idx >= h.StartCol && idx < h.EndCol {
					return true
				}
			}
			return false
		})
	}
}

// HelpOverlay shows the key binding reference.
type HelpOverlay struct {
	Lines  []string
	Scroll int
}

func (o HelpOverlay) Draw(s tcell.Screen, area Rect, th *theme.Theme) {
	base := th.GetStyle("Overlay")
	inner := drawBox(s, popup(area), base, " Help (j/k scroll, q close) ")
	for row := 0; row < inner.H; row++ {
		i := o.Scroll + row
		if i >= len(o.Lines) {
			return
		}
		statusbar.DrawText(s, inner.X+1, inner.Y+row, inner.W-1, o.Lines[i], base)
	}
}

// DiagnosticsOverlay lists the results of the last go tool run.
type DiagnosticsOverlay struct {
	Diagnostics *diagnostics.Collection
	Selected    int
	Root        string
}

func (o DiagnosticsOverlay) Draw(s tcell.Screen, area Rect, th *theme.Theme) {
	base := th.GetStyle("Overlay")
	all := o.Diagnostics.All()
	title := fmt.Sprintf(" Diagnostics: %d error(s), %d warning(s) ", o.Diagnostics.ErrorCount(), o.Diagnostics.WarningCount())
	inner := drawBox(s, popup(area), base, title)

	first := listWindow(o.Selected, len(all), inner.H)
	for row := 0; row < inner.H && first+row < len(all); row++ {
		i := first + row
		d := all[i]
		style := base
		if i == o.Selected {
			style = th.GetStyle("OverlaySelected")
		}
		y := inner.Y + row
		fillRow(s, inner.X, y, inner.W, style)

		sevStyle := style
		switch d.Severity {
		case diagnostics.SeverityError:
			sevStyle = style.Foreground(styleFg(th, "DiagnosticError"))
		case diagnostics.SeverityWarning:
			sevStyle = style.Foreground(styleFg(th, "DiagnosticWarning"))
		}
		x := statusbar.DrawText(s, inner.X, y, inner.W, fmt.Sprintf("%-7s ", d.Severity), sevStyle)
		msg, _, _ := strings.Cut(d.Message, "\n")
		loc := fmt.Sprintf("%s:%d:%d: %s", relPath(o.Root, d.FilePath), d.Span.Line+1, d.Span.Start+1, msg)
		statusbar.DrawText(s, x, y, inner.X+inner.W-x, loc, style)
	}
}

func styleFg(th *theme.Theme, name string) tcell.Color {
	fg, _, _ := th.GetStyle(name).Decompose()
	return fg
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// SnakeOverlay draws the snake board at the top left of the text area.
type SnakeOverlay struct {
	Game *snake.Game
}

func (o SnakeOverlay) Draw(s tcell.Screen, area Rect, th *theme.Theme) {
	g := o.Game
	box := Rect{X: area.X, Y: area.Y, W: min(g.Width()+2, area.W), H: min(g.Height()+2, area.H)}
	inner := drawBox(s, box, th.GetStyle("Overlay"), fmt.Sprintf(" Snake %d ", g.Score()))

	put := func(p snake.Point, ch rune, style tcell.Style) {
		if p.X >= 0 && p.X < inner.W && p.Y >= 0 && p.Y < inner.H {
			s.SetContent(inner.X+p.X, inner.Y+p.Y, ch, nil, style)
		}
	}
	put(g.Food(), '*', th.GetStyle("SnakeFood"))
	body := g.Body()
	for i := len(body) - 1; i > 0; i-- {
		put(body[i], 'o', th.GetStyle("SnakeBody"))
	}
	put(g.Head(), '@', th.GetStyle("SnakeHead"))

	var banner string
	switch g.State() {
	case snake.GameOver:
		banner = " GAME OVER - r to restart "
	case snake.Won:
		banner = " YOU WON - r to restart "
	default:
		return
	}
	w := uniseg.StringWidth(banner)
	statusbar.DrawText(s, inner.X+max((inner.W-w)/2, 0), inner.Y+inner.H/2, inner.W, banner, th.GetStyle("StatusBarError"))
}
