package app

import (
	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/logger"
)

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.eventManager.Subscribe(event.TypeModeChanged, a.handleModeChanged)
	a.eventManager.Subscribe(event.TypeAppQuit, a.handleAppQuit)
}

// handleBufferLoaded picks the highlighter backend for the new content.
func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.DebugTagf("event", "App: buffer loaded: %s", data.FilePath)
	}
	a.highlighter.Attach(a.editor.CurrentTab().Buffer)
	return false
}

// handleBufferSaved re-detects the language, since a first save names the
// file.
func (a *App) handleBufferSaved(e event.Event) bool {
	a.highlighter.Attach(a.editor.CurrentTab().Buffer)
	return false
}

func (a *App) handleModeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ModeChangedData); ok {
		logger.DebugTagf("mode", "App: %s -> %s", data.From, data.To)
	}
	return false
}

func (a *App) handleAppQuit(e event.Event) bool {
	for _, tab := range a.editor.Tabs() {
		if tab.Buffer.IsModified() {
			logger.Warnf("App: exiting with unsaved changes in %s", tab.Title())
		}
	}
	return false
}
