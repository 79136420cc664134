package modehandler

import "github.com/bethropolis/zim/internal/input"

// fallbackKey is a fixed binding tried when the configured table has no
// match.
type fallbackKey struct {
	binding input.Binding
	command string
}

func keys(pairs ...string) []fallbackKey {
	out := make([]fallbackKey, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, fallbackKey{binding: input.ParseBinding(pairs[i]), command: pairs[i+1]})
	}
	return out
}

var arrows = []string{
	"left", "move_left",
	"right", "move_right",
	"up", "move_up",
	"down", "move_down",
	"home", "start_of_line",
	"end", "end_of_line",
}

// fallbacks hold the per-mode defaults. A mode missing from its configured
// table still works with these keys.
var fallbacks = map[Mode][]fallbackKey{
	ModeNormal: keys(append([]string{
		"d", "delete_mode",
		"v", "visual_mode",
		"V", "visual_line_mode",
		"0", "start_of_line",
		"pgup", "page_up",
		"pgdn", "page_down",
		"q", "quit",
		"i", "insert_mode",
		":", "command_mode",
		"u", "undo",
		"ctrl+r", "redo",
		"h", "move_left",
		"j", "move_down",
		"k", "move_up",
		"l", "move_right",
	}, arrows...)...),
	ModeInsert: keys(append([]string{
		"esc", "normal_mode",
		"enter", "newline",
		"backspace", "backspace",
		"delete", "delete_forward",
		"tab", "indent",
	}, arrows...)...),
	ModeCommand: keys(
		"esc", "normal_mode",
		"enter", "execute",
		"backspace", "backspace",
	),
	ModeVisual: keys(
		"esc", "normal_mode",
		"d", "delete_selection",
		"x", "delete_selection",
		"y", "yank_selection",
		"v", "visual_mode",
		"V", "visual_line_mode",
	),
	ModeDelete: keys(
		"esc", "cancel",
		"d", "delete_line",
		"w", "delete_word",
		"$", "delete_to_end",
		"^", "delete_to_start",
		"0", "delete_to_start",
	),
	ModeFileFinder: keys(
		"esc", "cancel",
		"enter", "select",
		"down", "next",
		"up", "previous",
		"backspace", "backspace",
	),
	ModeTokenSearch: keys(
		"esc", "cancel",
		"enter", "select",
		"down", "next",
		"up", "previous",
		"backspace", "backspace",
	),
	ModeHelp: keys(
		"esc", "normal_mode",
		"q", "normal_mode",
		"j", "scroll_down",
		"down", "scroll_down",
		"k", "scroll_up",
		"up", "scroll_up",
		"pgdn", "page_down",
		"pgup", "page_up",
	),
	ModeWriteConfirm: keys(
		"y", "confirm",
		"Y", "confirm",
		"n", "cancel",
		"N", "cancel",
		"esc", "cancel",
		"q", "quit_without_saving",
		"Q", "quit_without_saving",
	),
	ModeReloadConfirm: keys(
		"y", "confirm",
		"Y", "confirm",
		"n", "cancel",
		"N", "cancel",
		"esc", "cancel",
	),
	ModeFilenamePrompt: keys(
		"esc", "cancel",
		"enter", "confirm",
		"backspace", "backspace",
	),
	ModeDiagnosticsPanel: keys(
		"esc", "normal_mode",
		"q", "normal_mode",
		"enter", "select",
		"down", "next",
		"j", "next",
		"n", "next",
		"up", "previous",
		"k", "previous",
		"p", "previous",
	),
	ModeSnake: keys(
		"h", "left",
		"left", "left",
		"j", "down",
		"down", "down",
		"k", "up",
		"up", "up",
		"l", "right",
		"right", "right",
		"r", "restart",
		"esc", "normal_mode",
		"q", "normal_mode",
	),
}
