package modehandler

import (
	"strconv"
	"strings"

	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/input"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/types"
)

func (mh *ModeHandler) handleCommand(k input.Key) {
	cmd, ok := mh.resolve(ModeCommand, k)
	if !ok {
		if k.Printable() {
			mh.cmdBuffer += string(k.Rune)
		} else {
			mh.ignore(k)
		}
		return
	}
	switch cmd {
	case "normal_mode":
		mh.cmdBuffer = ""
		mh.setMode(ModeNormal)
	case "backspace":
		runes := []rune(mh.cmdBuffer)
		if len(runes) == 0 {
			mh.setMode(ModeNormal)
			return
		}
		mh.cmdBuffer = string(runes[:len(runes)-1])
	case "execute":
		line := mh.cmdBuffer
		mh.cmdBuffer = ""
		mh.setMode(ModeNormal)
		mh.executeCommand(line)
	}
}

// executeCommand runs a ":" command line. Built-in commands win over
// plugin commands.
func (mh *ModeHandler) executeCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	name, args := parts[0], parts[1:]
	arg := strings.Join(args, " ")
	logger.DebugTagf("command", "Executing ':%s' with args %v", name, args)

	if n, err := strconv.Atoi(name); err == nil {
		tab := mh.tab()
		tab.Cursor.SetPosition(types.Position{Line: n - 1}, tab.Buffer)
		return
	}

	switch name {
	case "w":
		if arg == "" && mh.tab().Buffer.FilePath() == "" {
			mh.quitAfterSave = false
			mh.filename = ""
			mh.setMode(ModeFilenamePrompt)
			return
		}
		mh.save(arg)
	case "wq", "x":
		if arg == "" && mh.tab().Buffer.FilePath() == "" {
			mh.quitAfterSave = true
			mh.filename = ""
			mh.setMode(ModeFilenamePrompt)
			return
		}
		if mh.save(arg) {
			mh.quit = true
		}
	case "q":
		if tab, ok := mh.firstModifiedTab(); ok {
			mh.status.SetTemporaryMessage("No write since last change in %s (add ! to override)", tab)
			return
		}
		mh.quit = true
	case "q!":
		mh.quit = true
	case "e":
		if arg == "" {
			mh.beginReload()
			return
		}
		mh.openFile(arg)
	case "tabnew":
		mh.editor.NewTab()
		if arg != "" {
			mh.openFile(arg)
		}
	case "tabn":
		mh.editor.NextTab()
	case "tabp":
		mh.editor.PrevTab()
	case "tabc":
		mh.closeTab(false)
	case "tabc!":
		mh.closeTab(true)
	case "help":
		mh.helpScroll = 0
		mh.setMode(ModeHelp)
	case "build":
		mh.runGoTool(diagnostics.GoBuild)
	case "vet":
		mh.runGoTool(diagnostics.GoVet)
	default:
		fn, ok := mh.commands.Lookup(name)
		if !ok {
			mh.status.SetTemporaryMessage("Unknown command: %s", name)
			return
		}
		if err := fn(args); err != nil {
			logger.Warnf("ModeHandler: command ':%s' failed: %v", name, err)
			mh.status.SetTemporaryMessage("Error executing command '%s': %v", name, err)
		}
	}
}

func (mh *ModeHandler) firstModifiedTab() (string, bool) {
	for _, tab := range mh.editor.Tabs() {
		if tab.Buffer.IsModified() {
			return tab.Title(), true
		}
	}
	return "", false
}
