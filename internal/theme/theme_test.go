package theme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/config"
)

func TestGetStyleFallbacks(t *testing.T) {
	def := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	kw := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{"Default": def, "keyword": kw}}

	assert.Equal(t, kw, th.GetStyle("keyword"))
	assert.Equal(t, kw, th.GetStyle("keyword.control"), "dotted names fall back to the base")
	assert.Equal(t, def, th.GetStyle("unknown"))

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("x"))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xff0000), c)

	c, err = ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorRed, c)

	c, err = ParseColor("reset")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorReset, c)

	_, err = ParseColor("not-a-colour")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultTheme()
	cfg.Background = "#101010"
	cfg.Modified = "bogus"

	th := FromConfig(cfg)
	_, bg, _ := th.GetStyle("Default").Decompose()
	assert.Equal(t, tcell.NewHexColor(0x101010), bg)

	fg, _, _ := th.GetStyle("StatusBarModified").Decompose()
	assert.Equal(t, tcell.ColorYellow, fg, "bad colours fall back")

	_, _, attrs := th.GetStyle("keyword").Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
}
