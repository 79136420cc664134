package wordcount

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/event"
	"github.com/bethropolis/zim/internal/plugin"
	"github.com/bethropolis/zim/internal/types"
)

type fakeAPI struct {
	lines    []string
	commands *plugin.Commands
	status   string
}

func (f *fakeAPI) GetBufferLines() []string { return f.lines }
func (f *fakeAPI) GetBufferLineCount() int { return len(f.lines) }
func (f *fakeAPI) GetBufferFilePath() string { return "" }
func (f *fakeAPI) IsBufferModified() bool { return false }
func (f *fakeAPI) GetBufferBytes() []byte { return []byte(strings.Join(f.lines, "\n")) }
func (f *fakeAPI) GetCursor() types.Position { return types.Position{} }

func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler) {}

func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	return f.commands.Register(name, fn)
}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

func (f *fakeAPI) GetThemeStyle(string) tcell.Style { return tcell.StyleDefault }

func TestWordCountCommand(t *testing.T) {
	api := &fakeAPI{lines: []string{"hello world", "", "  three  words here"}, commands: plugin.NewCommands()}
	p := New()
	require.NoError(t, p.Initialize(api))

	fn, ok := api.commands.Lookup("wc")
	require.True(t, ok)
	require.NoError(t, fn(nil))
	assert.Equal(t, "Lines: 3, Words: 5, Bytes: 32", api.status)

	assert.Error(t, New().Initialize(api), "a second registration of :wc fails")
}

func TestCount(t *testing.T) {
	lines, words, n := Count([]byte("a\tb\nc"), 2)
	assert.Equal(t, 2, lines)
	assert.Equal(t, 3, words)
	assert.Equal(t, 5, n)
}
