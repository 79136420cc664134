// internal/event/event.go
package event

import (
	"fmt"

	"github.com/bethropolis/zim/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Buffer content changed; render caches are stale
	TypeBufferLoaded   // A buffer was loaded from disk
	TypeBufferSaved    // A buffer was written to disk
	TypeCursorMoved    // The cursor position changed
	TypeModeChanged    // The editor mode changed
	TypeTabSwitched    // The current tab changed

	// Application Lifecycle Events
	TypeAppReady // The application is fully initialized
	TypeAppQuit  // Fired just before shutdown begins
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeBufferModified: "buffer_modified",
	TypeBufferLoaded:   "buffer_loaded",
	TypeBufferSaved:    "buffer_saved",
	TypeCursorMoved:    "cursor_moved",
	TypeModeChanged:    "mode_changed",
	TypeTabSwitched:    "tab_switched",
	TypeAppReady:       "app_ready",
	TypeAppQuit:        "app_quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData names the buffer that changed.
type BufferModifiedData struct {
	FilePath string
	Version  uint64
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// ModeChangedData carries the mode names before and after.
type ModeChangedData struct {
	From string
	To   string
}

// TabSwitchedData carries the new tab index.
type TabSwitchedData struct {
	Index    int
	FilePath string
}

type AppQuitData struct{}

type AppReadyData struct{}
