package config

import (
	"fmt"

	"github.com/bethropolis/zim/internal/input"
)

// KeyBindings holds one binding table per mode.
type KeyBindings struct {
	NormalMode  input.Table `toml:"normal_mode"`
	InsertMode  input.Table `toml:"insert_mode"`
	CommandMode input.Table `toml:"command_mode"`
	VisualMode  input.Table `toml:"visual_mode"`
	DeleteMode  input.Table `toml:"delete_mode"`
	FileFinder  input.Table `toml:"file_finder"`
	TokenSearch input.Table `toml:"token_search"`
	Help        input.Table `toml:"help"`
	Diagnostics input.Table `toml:"diagnostics"`
}

// Table names accepted by ForMode.
const (
	TableNormal      = "normal_mode"
	TableInsert      = "insert_mode"
	TableCommand     = "command_mode"
	TableVisual      = "visual_mode"
	TableDelete      = "delete_mode"
	TableFileFinder  = "file_finder"
	TableTokenSearch = "token_search"
	TableHelp        = "help"
	TableDiagnostics = "diagnostics"
)

func bindings(pairs ...string) input.Table {
	t := make(input.Table, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		t[pairs[i]] = input.ParseBinding(pairs[i+1])
	}
	return t
}

// DefaultKeyBindings returns the built-in binding tables.
func DefaultKeyBindings() KeyBindings {
	normal := bindings(
		"quit", "q",
		"insert_mode", "i",
		"save_file", "w",
		"reload_file", "e",
		"save_and_quit", "X",
		"delete_char", "x",
		"snake_game", "s",
		"open_line_below", "o",
		"open_line_above", "O",
		"move_left", "h",
		"move_down", "j",
		"move_up", "k",
		"move_right", "l",
		"undo", "u",
		"redo", "ctrl+r",
		"start_of_line", "^",
		"end_of_line", "$",
		"start_of_file", "g",
		"end_of_file", "G",
		"paste", "p",
		"command_mode", ":",
		"next_diagnostic", "n",
		"prev_diagnostic", "N",
		"find_file", "ctrl+o",
		"token_search", "ctrl+t",
		"page_up", "ctrl+b",
		"page_down", "ctrl+f",
		"run_build", "ctrl+d",
		"run_vet", "ctrl+y",
		"diagnostics_panel", "ctrl+g",
		"new_tab", "ctrl+n",
		"close_tab", "ctrl+w",
		"next_tab", "ctrl+right",
		"prev_tab", "ctrl+left",
		"show_help", "ctrl+h",
	)
	for i := 1; i <= 12; i++ {
		normal[fmt.Sprintf("goto_tab_%d", i)] = input.Binding{Key: fmt.Sprintf("f%d", i)}
	}

	esc := func() input.Table { return bindings("normal_mode", "esc") }
	picker := func() input.Table {
		return bindings("cancel", "esc", "select", "enter", "next", "down", "previous", "up")
	}

	return KeyBindings{
		NormalMode:  normal,
		InsertMode:  esc(),
		CommandMode: esc(),
		VisualMode:  esc(),
		DeleteMode:  bindings("cancel", "esc"),
		FileFinder:  picker(),
		TokenSearch: picker(),
		Help:        esc(),
		Diagnostics: bindings("normal_mode", "esc", "select", "enter", "next", "down", "previous", "up"),
	}
}

// ForMode returns the table with the given name, or nil.
func (k KeyBindings) ForMode(name string) input.Table {
	switch name {
	case TableNormal:
		return k.NormalMode
	case TableInsert:
		return k.InsertMode
	case TableCommand:
		return k.CommandMode
	case TableVisual:
		return k.VisualMode
	case TableDelete:
		return k.DeleteMode
	case TableFileFinder:
		return k.FileFinder
	case TableTokenSearch:
		return k.TokenSearch
	case TableHelp:
		return k.Help
	case TableDiagnostics:
		return k.Diagnostics
	}
	return nil
}

// Merge applies every table entry of over on top of k.
func (k KeyBindings) Merge(over KeyBindings) KeyBindings {
	return KeyBindings{
		NormalMode:  k.NormalMode.Merge(over.NormalMode),
		InsertMode:  k.InsertMode.Merge(over.InsertMode),
		CommandMode: k.CommandMode.Merge(over.CommandMode),
		VisualMode:  k.VisualMode.Merge(over.VisualMode),
		DeleteMode:  k.DeleteMode.Merge(over.DeleteMode),
		FileFinder:  k.FileFinder.Merge(over.FileFinder),
		TokenSearch: k.TokenSearch.Merge(over.TokenSearch),
		Help:        k.Help.Merge(over.Help),
		Diagnostics: k.Diagnostics.Merge(over.Diagnostics),
	}
}
