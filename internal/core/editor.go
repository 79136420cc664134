// internal/core/editor.go
package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bethropolis/zim/internal/buffer"
	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/core/cursor"
	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/viewport"
)

// Tab is one open buffer with its own cursor and viewport.
type Tab struct {
	Buffer      *buffer.SliceBuffer
	Cursor      cursor.Cursor
	Viewport    *viewport.Viewport
	Diagnostics *diagnostics.Collection
	// ReloadDiff holds the lines that differ from disk while a reload is
	// being confirmed.
	ReloadDiff buffer.LineSet

	tabWidth int
}

// ScrollToCursor clamps the cursor and scrolls the viewport to it.
func (t *Tab) ScrollToCursor() {
	t.Cursor.Clamp(t.Buffer)
	visual := viewport.VisualColumn(t.Buffer.Line(t.Cursor.Line), t.Cursor.Col, t.tabWidth)
	t.Viewport.EnsureCursorVisible(t.Cursor.Line, visual)
}

// Title is the file's base name, or "[No Name]".
func (t *Tab) Title() string {
	if t.Buffer.FilePath() == "" {
		return "[No Name]"
	}
	return filepath.Base(t.Buffer.FilePath())
}

// Untitled reports whether the tab has no path and no edits.
func (t *Tab) Untitled() bool {
	return t.Buffer.FilePath() == "" && !t.Buffer.IsModified()
}

// Editor owns the open tabs and the index of the current one.
type Editor struct {
	tabs    []*Tab
	current int

	cfg    config.EditorConfig
	width  int
	height int
}

// NewEditor creates an editor with one empty tab.
func NewEditor(cfg config.EditorConfig) *Editor {
	e := &Editor{cfg: cfg}
	e.tabs = []*Tab{e.newTab()}
	return e
}

func (e *Editor) newTab() *Tab {
	vp := viewport.New(e.cfg.ScrollOff)
	vp.Resize(e.width, e.height)
	return &Tab{
		Buffer:      buffer.NewSliceBufferWithHistory(e.cfg.MaxHistory),
		Cursor:      cursor.New(),
		Viewport:    vp,
		Diagnostics: diagnostics.NewCollection(),
		tabWidth:    e.cfg.TabWidth,
	}
}

// Config returns the editor settings.
func (e *Editor) Config() config.EditorConfig { return e.cfg }

// Tabs returns the open tabs in order.
func (e *Editor) Tabs() []*Tab { return e.tabs }

// CurrentTab returns the active tab. There is always one.
func (e *Editor) CurrentTab() *Tab { return e.tabs[e.current] }

// CurrentIndex returns the index of the active tab.
func (e *Editor) CurrentIndex() int { return e.current }

// NewTab appends an empty tab and switches to it.
func (e *Editor) NewTab() *Tab {
	t := e.newTab()
	e.tabs = append(e.tabs, t)
	e.current = len(e.tabs) - 1
	logger.DebugTagf("tabs", "Opened tab %d", e.current)
	return t
}

// CloseTab removes the current tab. Closing the last tab leaves a single
// empty one.
func (e *Editor) CloseTab() {
	if len(e.tabs) == 1 {
		e.tabs[0] = e.newTab()
		e.current = 0
		return
	}
	e.tabs = append(e.tabs[:e.current], e.tabs[e.current+1:]...)
	if e.current >= len(e.tabs) {
		e.current = len(e.tabs) - 1
	}
}

// NextTab switches to the following tab, wrapping around.
func (e *Editor) NextTab() {
	e.current = (e.current + 1) % len(e.tabs)
}

// PrevTab switches to the preceding tab, wrapping around.
func (e *Editor) PrevTab() {
	e.current = (e.current - 1 + len(e.tabs)) % len(e.tabs)
}

// GotoTab switches to tab i. Out-of-range indices are ignored.
func (e *Editor) GotoTab(i int) bool {
	if i < 0 || i >= len(e.tabs) {
		return false
	}
	e.current = i
	return true
}

// FindTab returns the index of the tab editing path, or -1.
func (e *Editor) FindTab(path string) int {
	want, err := filepath.Abs(path)
	if err != nil {
		want = path
	}
	for i, t := range e.tabs {
		have, err := filepath.Abs(t.Buffer.FilePath())
		if err != nil {
			have = t.Buffer.FilePath()
		}
		if t.Buffer.FilePath() != "" && have == want {
			return i
		}
	}
	return -1
}

// OpenFile shows path in a tab. An already open file is switched to; an
// untitled, unmodified current tab is reused; otherwise a new tab opens.
// A file that does not exist yet opens as an empty buffer with that path.
func (e *Editor) OpenFile(path string) (*Tab, error) {
	if i := e.FindTab(path); i >= 0 {
		e.current = i
		return e.tabs[i], nil
	}

	t := e.newTab()
	if err := t.Buffer.Load(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open '%s': %w", path, err)
		}
		logger.Infof("Editor: '%s' does not exist yet, starting empty", path)
		t.Buffer.SetFilePath(path)
	}

	if e.CurrentTab().Untitled() {
		e.tabs[e.current] = t
	} else {
		e.tabs = append(e.tabs, t)
		e.current = len(e.tabs) - 1
	}
	t.ScrollToCursor()
	return t, nil
}

// Resize sets every tab's viewport to the text area size.
func (e *Editor) Resize(width, height int) {
	e.width, e.height = width, height
	for _, t := range e.tabs {
		t.Viewport.Resize(width, height)
		t.ScrollToCursor()
	}
}
