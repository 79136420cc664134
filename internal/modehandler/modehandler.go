// internal/modehandler/modehandler.go
package modehandler

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/zim/internal/clipboard"
	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/core"
	"github.com/bethropolis/zim/internal/diagnostics"
	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/finder"
	"github.com/bethropolis/zim/internal/input"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/plugin"
	"github.com/bethropolis/zim/internal/search"
	"github.com/bethropolis/zim/internal/snake"
	"github.com/bethropolis/zim/internal/statusbar"
)

// ToolRunner runs a go tool in dir; diagnostics.Run is the default.
type ToolRunner func(ctx context.Context, dir string, tool diagnostics.Tool) (*diagnostics.Collection, error)

// Config holds dependencies for the ModeHandler. Only Editor is required.
type Config struct {
	Editor       *core.Editor
	KeyBindings  config.KeyBindings
	EventManager *event.Manager
	StatusBar    *statusbar.StatusBar
	Clipboard    *clipboard.Register
	Commands     *plugin.Commands
	// Root is the project directory for the finder, search and go tools.
	Root        string
	Rand        *rand.Rand
	RunTool     ToolRunner
	ToolTimeout time.Duration
}

// ModeHandler owns the current mode and turns key events into editor
// commands.
type ModeHandler struct {
	editor   *core.Editor
	bindings config.KeyBindings
	events   *event.Manager
	status   *statusbar.StatusBar
	clip     *clipboard.Register
	commands *plugin.Commands
	root     string
	rng      *rand.Rand
	runTool  ToolRunner
	timeout  time.Duration

	mode Mode
	quit bool

	cmdBuffer     string
	filename      string
	quitAfterSave bool

	finder *finder.Finder
	search *search.Search

	helpScroll int

	// projectDiagnostics is the last go tool run across all files.
	projectDiagnostics *diagnostics.Collection
	diagSelected       int

	snake *snake.Game
}

// New creates a ModeHandler in ModeNormal.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil {
		panic("modehandler.New: Editor is required")
	}
	mh := &ModeHandler{
		editor:             cfg.Editor,
		bindings:           cfg.KeyBindings,
		events:             cfg.EventManager,
		status:             cfg.StatusBar,
		clip:               cfg.Clipboard,
		commands:           cfg.Commands,
		root:               cfg.Root,
		rng:                cfg.Rand,
		runTool:            cfg.RunTool,
		timeout:            cfg.ToolTimeout,
		mode:               ModeNormal,
		projectDiagnostics: diagnostics.NewCollection(),
	}
	if mh.status == nil {
		mh.status = statusbar.New(statusbar.DefaultStyles(), 0)
	}
	if mh.clip == nil {
		mh.clip = clipboard.New(false)
	}
	if mh.root == "" {
		mh.root = "."
	}
	if mh.rng == nil {
		mh.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if mh.runTool == nil {
		mh.runTool = diagnostics.Run
	}
	if mh.timeout <= 0 {
		mh.timeout = 2 * time.Minute
	}
	mh.finder = finder.New(mh.root)
	mh.search = search.New(mh.root)
	mh.SyncStatus()
	return mh
}

// HandleKey processes one key event and reports whether the editor should
// quit.
func (mh *ModeHandler) HandleKey(ev *tcell.EventKey) bool {
	k := input.FromEvent(ev)
	tabBefore := mh.tab()
	posBefore := tabBefore.Cursor.Pos()

	// Actions recorded by this key carry the cursor as the user saw it.
	tabBefore.Buffer.Edit(&tabBefore.Cursor, func() { mh.dispatch(k) })

	tab := mh.tab()
	tab.ScrollToCursor()
	switch {
	case tab != tabBefore:
		mh.events.Dispatch(event.TypeTabSwitched, event.TabSwitchedData{
			Index:    mh.editor.CurrentIndex(),
			FilePath: tab.Buffer.FilePath(),
		})
	case tab.Cursor.Pos() != posBefore:
		mh.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: tab.Cursor.Pos()})
	}
	mh.SyncStatus()
	return mh.quit
}

func (mh *ModeHandler) dispatch(k input.Key) {
	switch mh.mode {
	case ModeNormal:
		mh.handleNormal(k)
	case ModeInsert:
		mh.handleInsert(k)
	case ModeCommand:
		mh.handleCommand(k)
	case ModeVisual, ModeVisualLine:
		mh.handleVisual(k)
	case ModeDelete:
		mh.handleDelete(k)
	case ModeFileFinder:
		mh.handleFileFinder(k)
	case ModeTokenSearch:
		mh.handleTokenSearch(k)
	case ModeHelp:
		mh.handleHelp(k)
	case ModeWriteConfirm:
		mh.handleWriteConfirm(k)
	case ModeReloadConfirm:
		mh.handleReloadConfirm(k)
	case ModeFilenamePrompt:
		mh.handleFilenamePrompt(k)
	case ModeDiagnosticsPanel:
		mh.handleDiagnosticsPanel(k)
	case ModeSnake:
		mh.handleSnake(k)
	default:
		logger.Errorf("ModeHandler: no handler for mode %v, returning to normal", mh.mode)
		mh.setMode(ModeNormal)
	}
}

// resolve looks k up in the mode's configured table, then in its fallback
// keys.
func (mh *ModeHandler) resolve(m Mode, k input.Key) (string, bool) {
	if name := m.tableName(); name != "" {
		if cmd, ok := mh.bindings.ForMode(name).Resolve(k); ok {
			return cmd, true
		}
	}
	if m == ModeVisualLine {
		m = ModeVisual
	}
	for _, fb := range fallbacks[m] {
		if fb.binding.Matches(k) {
			return fb.command, true
		}
	}
	return "", false
}

func (mh *ModeHandler) ignore(k input.Key) {
	logger.DebugTagf("keys", "%v: ignoring key %s", mh.mode, k)
}

// setMode switches modes and announces the change.
func (mh *ModeHandler) setMode(m Mode) {
	if m == mh.mode {
		return
	}
	from := mh.mode
	mh.mode = m
	logger.DebugTagf("mode", "Mode %v -> %v", from, m)
	mh.events.Dispatch(event.TypeModeChanged, event.ModeChangedData{From: from.String(), To: m.String()})
}

// Tick advances time-driven state. It reports whether a redraw is needed.
func (mh *ModeHandler) Tick(now time.Time) bool {
	if mh.mode != ModeSnake || mh.snake == nil {
		return false
	}
	if !mh.snake.Tick(now) {
		return false
	}
	mh.SyncStatus()
	return true
}

// tab returns the current tab.
func (mh *ModeHandler) tab() *core.Tab {
	return mh.editor.CurrentTab()
}

// changed announces a content change of the current buffer.
func (mh *ModeHandler) changed() {
	buf := mh.tab().Buffer
	mh.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
		FilePath: buf.FilePath(),
		Version:  buf.Version(),
	})
}

func (mh *ModeHandler) pageSize() int {
	return max(mh.tab().Viewport.Height-1, 1)
}

// openFile shows path in a tab and attaches the diagnostics known for it.
func (mh *ModeHandler) openFile(path string) (*core.Tab, bool) {
	tab, err := mh.editor.OpenFile(path)
	if err != nil {
		logger.Warnf("ModeHandler: %v", err)
		mh.status.SetTemporaryMessage("Error: %v", err)
		return nil, false
	}
	tab.Diagnostics = mh.projectDiagnostics.ForFile(tab.Buffer.FilePath())
	mh.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: tab.Buffer.FilePath()})
	mh.status.SetTemporaryMessage("Opened %s", displayPath(mh.root, tab.Buffer.FilePath()))
	return tab, true
}

func displayPath(root, path string) string {
	if path == "" {
		return "[No Name]"
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// --- accessors for the renderer ---

func (mh *ModeHandler) Mode() Mode {
	return mh.mode
}

func (mh *ModeHandler) Editor() *core.Editor {
	return mh.editor
}

func (mh *ModeHandler) StatusBar() *statusbar.StatusBar {
	return mh.status
}

// CommandBuffer is the text typed after ":".
func (mh *ModeHandler) CommandBuffer() string {
	return mh.cmdBuffer
}

// Filename is the text typed in the filename prompt.
func (mh *ModeHandler) Filename() string {
	return mh.filename
}

func (mh *ModeHandler) Finder() *finder.Finder {
	return mh.finder
}

func (mh *ModeHandler) Search() *search.Search {
	return mh.search
}

func (mh *ModeHandler) HelpScroll() int {
	return mh.helpScroll
}

// ProjectDiagnostics returns the diagnostics of the last go tool run and
// the index selected in the panel.
func (mh *ModeHandler) ProjectDiagnostics() (*diagnostics.Collection, int) {
	return mh.projectDiagnostics, mh.diagSelected
}

// Snake returns the running game, or nil.
func (mh *ModeHandler) Snake() *snake.Game {
	return mh.snake
}

// LineMode reports whether the selection is line-granular.
func (mh *ModeHandler) LineMode() bool {
	return mh.mode == ModeVisualLine
}
