// internal/plugin/plugin.go
package plugin

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/types"
)

// CommandFunc is a ":" command registered by a plugin. args are the
// whitespace-separated words after the command name.
type CommandFunc func(args []string) error

// EditorAPI is the part of the editor plugins may use. Buffer methods refer
// to the current tab.
type EditorAPI interface {
	GetBufferLines() []string
	GetBufferLineCount() int
	GetBufferFilePath() string
	IsBufferModified() bool
	GetBufferBytes() []byte

	GetCursor() types.Position

	SubscribeEvent(eventType event.Type, handler event.Handler)
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// SetStatusMessage shows a temporary message.
	SetStatusMessage(format string, args ...interface{})

	GetThemeStyle(styleName string) tcell.Style
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once at startup. Plugins subscribe to events and
	// register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
