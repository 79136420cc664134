package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/input"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.Equal(t, 3, cfg.Editor.ScrollOff)
	assert.Equal(t, 1000, cfg.Editor.MaxHistory)
	assert.True(t, cfg.Editor.SystemClipboard)
	assert.True(t, cfg.Editor.StartInFinder)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, "ctrl+r", cfg.KeyBindings.NormalMode["redo"].String())
	assert.Equal(t, "f3", cfg.KeyBindings.NormalMode["goto_tab_3"].String())
}

func TestFileOverridesAndMergesBindings(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 8
system_clipboard = false

[theme]
background = "#000000"

[key_bindings.normal_mode]
quit = { key = "q", modifiers = ["ctrl"] }
`)
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.False(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, 3, cfg.Editor.ScrollOff, "unset keys keep defaults")
	assert.Equal(t, "#000000", cfg.Theme.Background)
	assert.Equal(t, DefaultTheme().Foreground, cfg.Theme.Foreground)

	want := input.Binding{Key: "q", Modifiers: []string{"ctrl"}}
	if diff := cmp.Diff(want, cfg.KeyBindings.NormalMode["quit"]); diff != "" {
		t.Errorf("quit binding (-want +got):\n%s", diff)
	}
	assert.Equal(t, "u", cfg.KeyBindings.NormalMode["undo"].String(), "other commands keep defaults")
	assert.Equal(t, "esc", cfg.KeyBindings.InsertMode["normal_mode"].String())
}

func TestInvalidValuesAreReset(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = -2
scroll_off = -1
max_history = 0

[logger]
log_level = "loud"
`)
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, DefaultScrollOff, cfg.Editor.ScrollOff)
	assert.Equal(t, DefaultMaxHistory, cfg.Editor.MaxHistory)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestParseErrorKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = ")
	cfg, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
	require.NotNil(t, cfg)
	assert.Equal(t, "q", cfg.KeyBindings.NormalMode["quit"].String())
}

func TestFlagOverrides(t *testing.T) {
	var flags Flags
	rest, err := flags.ParseArgs([]string{"-tabwidth", "2", "-loglevel", "debug", "-log-tags", "buffer, history", "main.go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, rest)

	path := writeConfig(t, "[editor]\ntab_width = 8\nscroll_off = 5\n")
	cfg, err := LoadConfig(path, &flags)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Editor.TabWidth, "flags win over the file")
	assert.Equal(t, 5, cfg.Editor.ScrollOff, "unset flags leave the file value")
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"buffer", "history"}, cfg.Logger.EnabledTags)
}

func TestForMode(t *testing.T) {
	kb := DefaultKeyBindings()
	for _, name := range []string{TableNormal, TableInsert, TableCommand, TableVisual, TableDelete,
		TableFileFinder, TableTokenSearch, TableHelp, TableDiagnostics} {
		assert.NotEmpty(t, kb.ForMode(name), name)
	}
	assert.Nil(t, kb.ForMode("nope"))

	cmdName, ok := kb.ForMode(TableFileFinder).Resolve(input.Key{Name: "enter"})
	require.True(t, ok)
	assert.Equal(t, "select", cmdName)
}
