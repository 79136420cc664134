package modehandler

import (
	"errors"

	"github.com/bethropolis/zim/internal/buffer"
	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/input"
	"github.com/bethropolis/zim/internal/logger"
)

// beginWrite asks for confirmation before saving. With quitAfter the editor
// exits once the save succeeds.
func (mh *ModeHandler) beginWrite(quitAfter bool) {
	mh.quitAfterSave = quitAfter
	mh.setMode(ModeWriteConfirm)
}

func (mh *ModeHandler) handleWriteConfirm(k input.Key) {
	cmd, ok := mh.resolve(ModeWriteConfirm, k)
	if !ok {
		mh.ignore(k)
		return
	}
	switch cmd {
	case "confirm":
		if mh.tab().Buffer.FilePath() == "" {
			mh.filename = ""
			mh.setMode(ModeFilenamePrompt)
			return
		}
		mh.setMode(ModeNormal)
		mh.finishSave("")
	case "cancel":
		mh.quitAfterSave = false
		mh.setMode(ModeNormal)
	case "quit_without_saving":
		mh.quit = true
		mh.setMode(ModeNormal)
	}
}

func (mh *ModeHandler) handleFilenamePrompt(k input.Key) {
	cmd, ok := mh.resolve(ModeFilenamePrompt, k)
	if !ok {
		if k.Printable() {
			mh.filename += string(k.Rune)
		} else {
			mh.ignore(k)
		}
		return
	}
	switch cmd {
	case "backspace":
		if runes := []rune(mh.filename); len(runes) > 0 {
			mh.filename = string(runes[:len(runes)-1])
		}
	case "confirm":
		if mh.filename == "" {
			mh.status.SetTemporaryMessage("No filename given")
			return
		}
		name := mh.filename
		mh.filename = ""
		mh.setMode(ModeNormal)
		mh.finishSave(name)
	case "cancel":
		mh.filename = ""
		mh.quitAfterSave = false
		mh.setMode(ModeNormal)
	}
}

// finishSave saves the current buffer and quits when that was requested.
func (mh *ModeHandler) finishSave(path string) {
	quitAfter := mh.quitAfterSave
	mh.quitAfterSave = false
	if mh.save(path) && quitAfter {
		mh.quit = true
	}
}

// save writes the current buffer to path (the buffer's own path when
// empty) and reports the result on the status bar.
func (mh *ModeHandler) save(path string) bool {
	buf := mh.tab().Buffer
	if err := buf.Save(path); err != nil {
		logger.Errorf("ModeHandler: save failed: %v", err)
		mh.status.SetTemporaryMessage("Save FAILED: %v", err)
		return false
	}
	mh.status.SetTemporaryMessage("Saved %s (%d lines)", displayPath(mh.root, buf.FilePath()), buf.LineCount())
	mh.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: buf.FilePath()})
	return true
}

// beginReload compares the buffer with the file on disk and asks before
// replacing it.
func (mh *ModeHandler) beginReload() {
	tab := mh.tab()
	diff, err := tab.Buffer.DiffWithDisk()
	switch {
	case errors.Is(err, buffer.ErrNoFilePath):
		mh.status.SetTemporaryMessage("No file to reload")
		return
	case err != nil:
		logger.Warnf("ModeHandler: reload check failed: %v", err)
		mh.status.SetTemporaryMessage("Reload failed: %v", err)
		return
	case len(diff) == 0:
		mh.status.SetTemporaryMessage("%s is up to date", tab.Title())
		return
	}
	tab.ReloadDiff = diff
	mh.setMode(ModeReloadConfirm)
}

func (mh *ModeHandler) handleReloadConfirm(k input.Key) {
	cmd, ok := mh.resolve(ModeReloadConfirm, k)
	if !ok {
		mh.ignore(k)
		return
	}
	tab := mh.tab()
	switch cmd {
	case "confirm":
		tab.ReloadDiff = nil
		mh.setMode(ModeNormal)
		if err := tab.Buffer.Reload(tab.Cursor.Pos()); err != nil {
			logger.Warnf("ModeHandler: reload failed: %v", err)
			mh.status.SetTemporaryMessage("Reload failed: %v", err)
			return
		}
		tab.Cursor.Clamp(tab.Buffer)
		mh.status.SetTemporaryMessage("Reloaded %s", tab.Title())
		mh.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: tab.Buffer.FilePath()})
		mh.changed()
	case "cancel":
		tab.ReloadDiff = nil
		mh.setMode(ModeNormal)
	}
}
