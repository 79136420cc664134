package modehandler

import (
	"context"
	"fmt"

	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/input"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/snake"
	"github.com/bethropolis/zim/internal/types"
)

// OpenFinder rescans the project and shows the file finder.
func (mh *ModeHandler) OpenFinder() {
	if err := mh.finder.Refresh(); err != nil {
		logger.Warnf("ModeHandler: file finder: %v", err)
		mh.status.SetTemporaryMessage("File finder: %v", err)
		return
	}
	mh.setMode(ModeFileFinder)
}

func (mh *ModeHandler) handleFileFinder(k input.Key) {
	cmd, ok := mh.resolve(ModeFileFinder, k)
	if !ok {
		if k.Printable() {
			mh.finder.AddChar(k.Rune)
		} else {
			mh.ignore(k)
		}
		return
	}
	switch cmd {
	case "cancel":
		mh.setMode(ModeNormal)
	case "select":
		path, ok := mh.finder.Selected()
		if !ok {
			return
		}
		mh.setMode(ModeNormal)
		mh.openFile(path)
	case "next":
		mh.finder.Next()
	case "previous":
		mh.finder.Previous()
	case "backspace":
		mh.finder.RemoveChar()
	}
}

func (mh *ModeHandler) handleTokenSearch(k input.Key) {
	cmd, ok := mh.resolve(ModeTokenSearch, k)
	if !ok {
		if !k.Printable() {
			mh.ignore(k)
			return
		}
		mh.search.AddChar(k.Rune)
		mh.runSearch()
		return
	}
	switch cmd {
	case "cancel":
		mh.setMode(ModeNormal)
	case "select":
		res, ok := mh.search.Selected()
		if !ok {
			return
		}
		mh.setMode(ModeNormal)
		if tab, ok := mh.openFile(res.Path); ok {
			tab.Cursor.SetPosition(types.Position{Line: res.Line, Col: res.Col}, tab.Buffer)
		}
	case "next":
		mh.search.Next()
	case "previous":
		mh.search.Previous()
	case "backspace":
		mh.search.RemoveChar()
		mh.runSearch()
	}
}

func (mh *ModeHandler) runSearch() {
	if err := mh.search.Run(); err != nil {
		logger.Warnf("ModeHandler: token search: %v", err)
		mh.status.SetTemporaryMessage("Search failed: %v", err)
	}
}

// HelpLines lists the Normal bindings, configured first, then the fixed
// keys.
func (mh *ModeHandler) HelpLines() []string {
	table := mh.bindings.ForMode(config.TableNormal)
	lines := make([]string, 0, len(table)+len(fallbacks[ModeNormal])+1)
	for _, cmd := range table.Commands() {
		lines = append(lines, fmt.Sprintf("%-12s %s", table[cmd].String(), cmd))
	}
	lines = append(lines, "")
	for _, fb := range fallbacks[ModeNormal] {
		lines = append(lines, fmt.Sprintf("%-12s %s", fb.binding.String(), fb.command))
	}
	return lines
}

func (mh *ModeHandler) handleHelp(k input.Key) {
	cmd, ok := mh.resolve(ModeHelp, k)
	if !ok {
		mh.ignore(k)
		return
	}
	last := max(len(mh.HelpLines())-1, 0)
	switch cmd {
	case "normal_mode":
		mh.setMode(ModeNormal)
	case "scroll_down":
		mh.helpScroll = min(mh.helpScroll+1, last)
	case "scroll_up":
		mh.helpScroll = max(mh.helpScroll-1, 0)
	case "page_down":
		mh.helpScroll = min(mh.helpScroll+mh.pageSize(), last)
	case "page_up":
		mh.helpScroll = max(mh.helpScroll-mh.pageSize(), 0)
	}
}

// runGoTool runs tool over the project and spreads the results over the
// open tabs.
func (mh *ModeHandler) runGoTool(tool diagnostics.Tool) {
	ctx, cancel := context.WithTimeout(context.Background(), mh.timeout)
	defer cancel()

	coll, err := mh.runTool(ctx, mh.root, tool)
	if err != nil {
		logger.Errorf("ModeHandler: %s: %v", tool.Label(), err)
		mh.status.SetTemporaryMessage("%s failed: %v", tool.Label(), err)
		return
	}
	mh.projectDiagnostics = coll
	mh.diagSelected = 0
	for _, tab := range mh.editor.Tabs() {
		tab.Diagnostics = coll.ForFile(tab.Buffer.FilePath())
	}
	if coll.Len() == 0 {
		mh.status.SetTemporaryMessage("%s: no problems", tool.Label())
		return
	}
	mh.status.SetTemporaryMessage("%s: %d error(s), %d warning(s)", tool.Label(), coll.ErrorCount(), coll.WarningCount())
}

func (mh *ModeHandler) openDiagnosticsPanel() {
	if mh.projectDiagnostics.Len() == 0 {
		mh.status.SetTemporaryMessage("No diagnostics (run :build or :vet)")
		return
	}
	mh.diagSelected = min(mh.diagSelected, mh.projectDiagnostics.Len()-1)
	mh.setMode(ModeDiagnosticsPanel)
}

func (mh *ModeHandler) handleDiagnosticsPanel(k input.Key) {
	cmd, ok := mh.resolve(ModeDiagnosticsPanel, k)
	if !ok {
		mh.ignore(k)
		return
	}
	n := mh.projectDiagnostics.Len()
	switch cmd {
	case "normal_mode":
		mh.setMode(ModeNormal)
	case "next":
		if n > 0 {
			mh.diagSelected = (mh.diagSelected + 1) % n
		}
	case "previous":
		if n > 0 {
			mh.diagSelected = (mh.diagSelected - 1 + n) % n
		}
	case "select":
		all := mh.projectDiagnostics.All()
		if mh.diagSelected >= len(all) {
			return
		}
		d := all[mh.diagSelected]
		mh.setMode(ModeNormal)
		if tab, ok := mh.openFile(d.FilePath); ok {
			tab.Cursor.SetPosition(types.Position{Line: d.Span.Line, Col: d.Span.Start}, tab.Buffer)
			mh.status.SetTemporaryMessage("%s: %s", d.Severity, firstLine(d.Message))
		}
	}
}

var snakeDirections = map[string]snake.Direction{
	"left":  snake.Left,
	"right": snake.Right,
	"up":    snake.Up,
	"down":  snake.Down,
}

func (mh *ModeHandler) handleSnake(k input.Key) {
	if mh.snake == nil {
		mh.setMode(ModeNormal)
		return
	}
	cmd, ok := mh.resolve(ModeSnake, k)
	if !ok {
		mh.ignore(k)
		return
	}
	if d, ok := snakeDirections[cmd]; ok {
		mh.snake.Turn(d)
		return
	}
	switch cmd {
	case "restart":
		mh.snake.Restart()
	case "normal_mode":
		mh.snake = nil
		mh.setMode(ModeNormal)
	}
}
