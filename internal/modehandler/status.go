package modehandler

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/zim/internal/snake"
)

// SyncStatus copies the editor state into the status bar.
func (mh *ModeHandler) SyncStatus() {
	tab := mh.tab()
	buf := tab.Buffer
	mh.status.SetFileInfo(displayPath(mh.root, buf.FilePath()), buf.IsModified())
	mh.status.SetCursorInfo(tab.Cursor.Pos())
	mh.status.SetEditorMode(mh.mode.String())
	mh.status.SetTabInfo(mh.editor.CurrentIndex(), len(mh.editor.Tabs()))
	mh.status.SetDiagnosticCounts(tab.Diagnostics.ErrorCount(), tab.Diagnostics.WarningCount())
	mh.status.SetPrompt(mh.prompt())
}

// PromptCursor returns the status bar column where typed text goes, for
// the modes that read a line of input.
func (mh *ModeHandler) PromptCursor() (int, bool) {
	switch mh.mode {
	case ModeCommand:
		return uniseg.StringWidth(":" + mh.cmdBuffer), true
	case ModeFilenamePrompt:
		return uniseg.StringWidth(filenamePrompt + mh.filename), true
	}
	return 0, false
}

const filenamePrompt = "FILENAME: "

// prompt is the status line for modes that replace it.
func (mh *ModeHandler) prompt() string {
	tab := mh.tab()
	switch mh.mode {
	case ModeCommand:
		return ":" + mh.cmdBuffer
	case ModeWriteConfirm:
		target := tab.Buffer.FilePath()
		if target == "" {
			target = "No filename specified"
		}
		return fmt.Sprintf("WRITE? (y/n/q) | Save file: %s | %d modified lines | Press Y to confirm, N to cancel, Q to quit without saving",
			target, len(tab.Buffer.ModifiedLines()))
	case ModeReloadConfirm:
		return fmt.Sprintf("RELOAD? (y/n) | Reload file: %s | %d changed lines | Press Y to confirm, N to cancel",
			tab.Buffer.FilePath(), len(tab.ReloadDiff))
	case ModeFilenamePrompt:
		return filenamePrompt + mh.filename + " | Press Enter to save, Esc to cancel"
	case ModeFileFinder:
		return fmt.Sprintf("FILE FINDER: %s | Press Enter to select, Esc to cancel", mh.finder.Query())
	case ModeTokenSearch:
		return fmt.Sprintf("TOKEN SEARCH: %s | Press Enter to go to selection, Esc to cancel", mh.search.Query())
	case ModeDiagnosticsPanel:
		return "DIAGNOSTICS | Press Enter to go to selected error, n/p for next/prev, Esc to exit"
	case ModeSnake:
		if mh.snake == nil {
			return ""
		}
		state := "Score"
		switch mh.snake.State() {
		case snake.GameOver:
			state = "GAME OVER! | Score"
		case snake.Won:
			state = "YOU WON! | Score"
		}
		return fmt.Sprintf("SNAKE | %s: %d | Use h,j,k,l or arrow keys to move | r: restart | q/ESC: exit", state, mh.snake.Score())
	}
	return ""
}
