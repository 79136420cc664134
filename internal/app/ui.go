package app

import (
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/modehandler"
	"github.com/bethropolis/zim/internal/tui"
)

// layout sizes every viewport to the text area left by the bars and the
// current tab's gutter.
func (a *App) layout() {
	width, height := a.tuiManager.Size()
	lines := a.editor.CurrentTab().Buffer.LineCount()
	textWidth, textHeight := tui.TextArea(width, height, lines, a.cfg.Editor.LineNumbers)
	logger.DebugTagf("draw", "layout: screen %dx%d, text area %dx%d", width, height, textWidth, textHeight)
	a.editor.Resize(textWidth, textHeight)
}

// drawEditor renders the current state and shows it.
func (a *App) drawEditor() {
	a.layout()
	mh := a.modeHandler
	mh.SyncStatus()

	tab := a.editor.CurrentTab()
	frame := tui.Frame{
		Tabs:       a.editor.Tabs(),
		Current:    a.editor.CurrentIndex(),
		Highlights: a.highlighter.Highlight(tab.Buffer),
		Status:     a.statusBar,
		Overlay:    a.overlay(),
	}
	if mh.Mode().IsVisual() {
		frame.Selection, frame.HasSelection = tab.Buffer.SelectionBounds(tab.Cursor.Pos(), mh.LineMode())
	}
	if col, ok := mh.PromptCursor(); ok {
		frame.Cursor, frame.PromptColumn = tui.CursorPrompt, col
	} else if mh.Mode() == modehandler.ModeWriteConfirm || mh.Mode() == modehandler.ModeReloadConfirm {
		frame.Cursor = tui.CursorHidden
	}

	a.renderer.Draw(a.tuiManager.Screen(), frame)
	a.tuiManager.Show()
}

// overlay returns the panel for the current mode, if it has one.
func (a *App) overlay() tui.Overlay {
	mh := a.modeHandler
	switch mh.Mode() {
	case modehandler.ModeFileFinder:
		return tui.FinderOverlay{Finder: mh.Finder()}
	case modehandler.ModeTokenSearch:
		return tui.SearchOverlay{Search: mh.Search()}
	case modehandler.ModeHelp:
		return tui.HelpOverlay{Lines: mh.HelpLines(), Scroll: mh.HelpScroll()}
	case modehandler.ModeDiagnosticsPanel:
		coll, selected := mh.ProjectDiagnostics()
		return tui.DiagnosticsOverlay{Diagnostics: coll, Selected: selected, Root: a.root}
	case modehandler.ModeSnake:
		if g := mh.Snake(); g != nil {
			return tui.SnakeOverlay{Game: g}
		}
	}
	return nil
}
