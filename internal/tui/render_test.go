package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/buffer"
	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/core"
	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/finder"
	"github.com/bethropolis/zim/internal/highlighter"
	"github.com/bethropolis/zim/internal/statusbar"
	"github.com/bethropolis/zim/internal/theme"
	"github.com/bethropolis/zim/internal/types"
)

const (
	screenW = 40
	screenH = 10
	// textX is where buffer text starts: markers, three digits, a space.
	textX = 6
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(s, tcell.StyleDefault)
	require.NoError(t, err)
	t.Cleanup(ui.Close)
	s.SetSize(screenW, screenH)
	return s
}

func newEditor(lines ...string) *core.Editor {
	cfg := config.NewDefaultConfig()
	ed := core.NewEditor(cfg.Editor)
	ed.CurrentTab().Buffer = buffer.FromLines(lines...)
	ed.Resize(TextArea(screenW, screenH, len(lines), true))
	return ed
}

func newRenderer() (*Renderer, *theme.Theme) {
	th := theme.FromConfig(config.DefaultTheme())
	return NewRenderer(th, 4, true), th
}

func frameFor(ed *core.Editor) Frame {
	return Frame{
		Tabs:    ed.Tabs(),
		Current: ed.CurrentIndex(),
		Status:  statusbar.New(statusbar.DefaultStyles(), 0),
	}
}

func rowText(s tcell.SimulationScreen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func styleAt(s tcell.SimulationScreen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y)
	return style
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 6, GutterWidth(1, true))
	assert.Equal(t, 8, GutterWidth(12345, true))
	assert.Equal(t, 2, GutterWidth(12345, false))

	w, h := TextArea(80, 24, 10, true)
	assert.Equal(t, 74, w)
	assert.Equal(t, 22, h)
}

func TestDrawTextAndGutter(t *testing.T) {
	s := newScreen(t)
	r, th := newRenderer()
	ed := newEditor("hello", "world")
	tab := ed.CurrentTab()
	tab.Buffer.InsertCharAt(types.Position{Line: 1, Col: 0}, '!')

	r.Draw(s, frameFor(ed))

	assert.Equal(t, " 1:[No Name] [+] ", rowText(s, 0, 0, 17))
	assert.Equal(t, "    1 hello", rowText(s, 1, 0, 11))
	assert.Equal(t, " +  2 !world", rowText(s, 2, 0, 12))
	assert.Equal(t, th.GetStyle("GutterModified"), styleAt(s, 1, 2))
	assert.Equal(t, th.GetStyle("LineNumberActive"), styleAt(s, 4, 1), "cursor line")
	assert.Equal(t, "~", rowText(s, 3, 0, 1), "past the end of the buffer")

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, textX, x)
	assert.Equal(t, 1, y)
}

func TestDrawSelectionAndSyntax(t *testing.T) {
	s := newScreen(t)
	r, th := newRenderer()
	ed := newEditor("func main")
	f := frameFor(ed)
	f.Selection = buffer.Selection{Start: types.Position{Col: 5}, End: types.Position{Col: 7}}
	f.HasSelection = true
	f.Highlights = highlighter.Result{0: {{StartCol: 0, EndCol: 4, StyleName: "keyword"}}}

	r.Draw(s, f)

	assert.Equal(t, th.GetStyle("keyword"), styleAt(s, textX, 1))
	assert.Equal(t, th.GetStyle("Default"), styleAt(s, textX+4, 1))
	assert.Equal(t, th.GetStyle("Selection"), styleAt(s, textX+5, 1))
	assert.Equal(t, th.GetStyle("Selection"), styleAt(s, textX+6, 1))
	assert.Equal(t, th.GetStyle("Default"), styleAt(s, textX+7, 1), "selection end is exclusive")
}

func TestDrawLineSelectionOnEmptyLine(t *testing.T) {
	s := newScreen(t)
	r, th := newRenderer()
	ed := newEditor("a", "", "b")
	f := frameFor(ed)
	f.Selection = buffer.Selection{Start: types.Position{Line: 0}, End: types.Position{Line: 1}, LineMode: true}
	f.HasSelection = true

	r.Draw(s, f)
	assert.Equal(t, th.GetStyle("Selection"), styleAt(s, textX, 2))
	assert.NotEqual(t, th.GetStyle("Selection"), styleAt(s, textX, 3))
}

func TestDrawTabsExpand(t *testing.T) {
	s := newScreen(t)
	r, _ := newRenderer()
	ed := newEditor("\tx")
	ed.CurrentTab().Cursor.SetPosition(types.Position{Col: 1}, ed.CurrentTab().Buffer)

	r.Draw(s, frameFor(ed))
	assert.Equal(t, "    x", rowText(s, 1, textX, textX+5))
	x, _, _ := s.GetCursor()
	assert.Equal(t, textX+4, x)
}

func TestDrawDiagnosticsAndReloadDiff(t *testing.T) {
	s := newScreen(t)
	r, th := newRenderer()
	ed := newEditor("a := b", "c")
	tab := ed.CurrentTab()
	tab.Diagnostics.Add(diagnostics.Diagnostic{
		Message:  "undefined: b",
		Severity: diagnostics.SeverityError,
		Span:     diagnostics.Span{Line: 0, Start: 5, End: 6},
	})
	tab.ReloadDiff = buffer.LineSet{1: {}}

	r.Draw(s, frameFor(ed))

	assert.Equal(t, "E", rowText(s, 1, 0, 1))
	assert.Equal(t, th.GetStyle("DiagnosticError"), styleAt(s, 0, 1))
	assert.Equal(t, "~", rowText(s, 2, 1, 2))
	_, _, attrs := styleAt(s, textX+5, 1).Decompose()
	assert.NotZero(t, attrs&tcell.AttrUnderline)
}

func TestHorizontalScroll(t *testing.T) {
	s := newScreen(t)
	r, _ := newRenderer()
	ed := newEditor(strings.Repeat("a", 50) + "XYZ")
	tab := ed.CurrentTab()
	tab.Cursor.SetPosition(types.Position{Col: 52}, tab.Buffer)
	tab.ScrollToCursor()

	r.Draw(s, frameFor(ed))
	assert.Equal(t, "XYZ", rowText(s, 1, screenW-3, screenW))
	x, _, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, screenW-1, x)
}

func TestPromptCursorAndStatus(t *testing.T) {
	s := newScreen(t)
	r, _ := newRenderer()
	ed := newEditor("a")
	f := frameFor(ed)
	f.Status.SetPrompt(":wq")
	f.Cursor = CursorPrompt
	f.PromptColumn = 3

	r.Draw(s, f)
	assert.Equal(t, ":wq", rowText(s, screenH-1, 0, 3))
	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 3, x)
	assert.Equal(t, screenH-1, y)
}

func TestHelpOverlayHidesCursor(t *testing.T) {
	s := newScreen(t)
	r, _ := newRenderer()
	ed := newEditor("a")
	f := frameFor(ed)
	f.Overlay = HelpOverlay{Lines: []string{"first", "second", "third"}, Scroll: 1}

	r.Draw(s, f)
	_, _, visible := s.GetCursor()
	assert.False(t, visible)

	var screenText strings.Builder
	for y := 0; y < screenH; y++ {
		screenText.WriteString(rowText(s, y, 0, screenW))
	}
	assert.Contains(t, screenText.String(), "second")
	assert.NotContains(t, screenText.String(), "first")
}

func TestFinderOverlay(t *testing.T) {
	s := newScreen(t)
	r, _ := newRenderer()
	ed := newEditor("a")
	fd := finder.New(t.TempDir())
	fd.SetFiles([]string{"cmd/main.go", "README.md"})
	fd.AddChar('m')

	f := frameFor(ed)
	f.Overlay = FinderOverlay{Finder: fd}
	r.Draw(s, f)

	var screenText strings.Builder
	for y := 0; y < screenH; y++ {
		screenText.WriteString(rowText(s, y, 0, screenW))
	}
	assert.Contains(t, screenText.String(), "> m")
	assert.Contains(t, screenText.String(), "main.go")
}

func TestListWindow(t *testing.T) {
	assert.Equal(t, 0, listWindow(3, 5, 10))
	assert.Equal(t, 0, listWindow(2, 20, 5))
	assert.Equal(t, 3, listWindow(7, 20, 5))
	assert.Equal(t, 15, listWindow(19, 20, 5))
}
