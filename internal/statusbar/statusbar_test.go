package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/types"
)

func newTestBar() (*StatusBar, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(DefaultStyles(), 2*time.Second)
	sb.now = func() time.Time { return now }
	return sb, &now
}

func TestDefaultText(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetFileInfo("main.go", true)
	sb.SetCursorInfo(types.Position{Line: 4, Col: 2})
	sb.SetEditorMode("NORMAL")
	sb.SetTabInfo(1, 3)
	sb.SetDiagnosticCounts(2, 1)

	text, style := sb.Text()
	assert.Equal(t, " -- NORMAL -- [2/3] main.go [+] -- Ln 5, Col 3 E:2 W:1", text)
	assert.Equal(t, DefaultStyles().Default, style)
}

func TestUntitledSingleTab(t *testing.T) {
	sb, _ := newTestBar()
	text, _ := sb.Text()
	assert.Equal(t, " [No Name] -- Ln 1, Col 1", text)
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb, now := newTestBar()
	sb.SetTemporaryMessage("Saved %s", "a.txt")

	text, style := sb.Text()
	assert.Equal(t, "Saved a.txt", text)
	assert.Equal(t, DefaultStyles().Message, style)

	*now = now.Add(3 * time.Second)
	_, ok := sb.Message()
	assert.False(t, ok)
	text, _ = sb.Text()
	assert.NotContains(t, text, "Saved")
}

func TestPromptOverridesMessage(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetTemporaryMessage("hello")
	sb.SetPrompt(":wq")
	text, _ := sb.Text()
	assert.Equal(t, ":wq", text)

	sb.ClearPrompt()
	text, _ = sb.Text()
	assert.Equal(t, "hello", text)
}

func TestDrawClipsToWidth(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 2)

	sb, _ := newTestBar()
	sb.SetPrompt("abcdefghijklmnop")
	sb.Draw(screen, 1, 10)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var row strings.Builder
	for x := 0; x < w; x++ {
		row.WriteString(string(cells[w+x].Runes))
	}
	assert.Equal(t, "abcdefghij", row.String())
}

func TestDrawTextWideClusters(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 1)

	end := DrawText(screen, 0, 0, 5, "日本語", tcell.StyleDefault)
	assert.Equal(t, 4, end, "third wide rune does not fit in five cells")
}
