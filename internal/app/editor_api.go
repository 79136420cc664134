// internal/app/editor_api.go
package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/zim/internal/buffer"
	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/plugin"
	"github.com/bethropolis/zim/internal/types"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the plugin view of the App. Buffer calls act on the
// current tab.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) buffer() *buffer.SliceBuffer {
	return api.app.editor.CurrentTab().Buffer
}

// GetBufferLines returns a copy of the current buffer's lines.
func (api *appEditorAPI) GetBufferLines() []string {
	return append([]string(nil), api.buffer().Lines()...)
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.buffer().LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.buffer().FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.buffer().IsModified()
}

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.buffer().Bytes()
}

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.CurrentTab().Cursor.Pos()
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.Register(name, cmdFunc)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.activeTheme.GetStyle(styleName)
}
