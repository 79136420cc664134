// internal/app/app.go
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/zim/internal/clipboard"
	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/core"
	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/highlighter"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/modehandler"
	"github.com/bethropolis/zim/internal/plugin"
	"github.com/bethropolis/zim/internal/statusbar"
	"github.com/bethropolis/zim/internal/theme"
	"github.com/bethropolis/zim/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	commands      *plugin.Commands
	modeHandler   *modehandler.ModeHandler
	highlighter   *highlighter.Highlighter
	renderer      *tui.Renderer
	activeTheme   *theme.Theme
	root          string

	pollInterval time.Duration
	closed       bool
}

// NewApp creates the terminal screen and wires every component. filePath
// may be empty.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	th := theme.FromConfig(cfg.Theme)
	tuiManager, err := tui.New(th.GetStyle("Default"))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, filePath, tuiManager, th), nil
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI, th *theme.Theme) *App {
	root, err := os.Getwd()
	if err != nil {
		logger.Warnf("App: cannot determine working directory: %v", err)
		root = "."
	}

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        core.NewEditor(cfg.Editor),
		statusBar:     statusbar.New(statusStyles(th), config.MessageTimeout),
		eventManager:  event.NewManager(),
		pluginManager: plugin.NewManager(),
		commands:      plugin.NewCommands(),
		highlighter:   highlighter.NewHighlighter(),
		renderer:      tui.NewRenderer(th, cfg.Editor.TabWidth, cfg.Editor.LineNumbers),
		activeTheme:   th,
		root:          root,
		pollInterval:  time.Duration(cfg.Editor.PollIntervalMs) * time.Millisecond,
	}
	a.layout()

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:       a.editor,
		KeyBindings:  cfg.KeyBindings,
		EventManager: a.eventManager,
		StatusBar:    a.statusBar,
		Clipboard:    clipboard.New(cfg.Editor.SystemClipboard),
		Commands:     a.commands,
		Root:         root,
	})

	a.subscribeEvents()
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(newEditorAPI(a))

	a.openInitial(filePath)
	return a
}

// statusStyles takes the status bar colours from the theme.
func statusStyles(th *theme.Theme) statusbar.Styles {
	return statusbar.Styles{
		Default:  th.GetStyle("StatusBar"),
		Modified: th.GetStyle("StatusBarModified"),
		Message:  th.GetStyle("StatusBarMessage"),
		Mode:     th.GetStyle("StatusBarMode"),
		Error:    th.GetStyle("StatusBarError"),
		Warning:  th.GetStyle("StatusBarWarning"),
	}
}

// openInitial loads the file from the command line, or shows the finder
// when none was given.
func (a *App) openInitial(filePath string) {
	if filePath == "" {
		if a.cfg.Editor.StartInFinder {
			a.modeHandler.OpenFinder()
		}
		a.statusBar.SetTemporaryMessage("%s %s - Ctrl+H for help", config.AppName, config.Version)
		return
	}
	tab, err := a.editor.OpenFile(filePath)
	if err != nil {
		logger.Errorf("App: %v", err)
		a.statusBar.SetTemporaryMessage("Error: %v", err)
		return
	}
	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: tab.Buffer.FilePath()})
	a.modeHandler.SyncStatus()
}

// Run starts the main loop. It returns when the user quits or the screen
// stops delivering events.
func (a *App) Run() error {
	quit := make(chan struct{})
	defer close(quit)
	events := a.tuiManager.ChannelEvents(quit)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.drawEditor()

	timer := time.NewTimer(a.pollInterval)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				logger.Infof("App: event channel closed")
				a.shutdown()
				return nil
			}
			if a.handleEvent(ev) {
				a.shutdown()
				return nil
			}
		case now := <-timer.C:
			a.modeHandler.Tick(now)
		}
		a.drawEditor()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(a.pollInterval)
	}
}

// handleEvent processes one screen event and reports whether to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.layout()
	case *tcell.EventKey:
		return a.modeHandler.HandleKey(ev)
	}
	return false
}

// shutdown announces the quit, stops plugins and restores the terminal.
func (a *App) shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	a.pluginManager.ShutdownPlugins()
	a.tuiManager.Close()
	logger.Infof("Exiting application.")
}
