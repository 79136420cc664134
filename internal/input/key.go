// internal/input/key.go
package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key is a terminal key press reduced to a symbolic name plus modifiers.
// Name is the rune itself for printable keys ("d", "$", "G") and a lower
// case word for everything else ("esc", "enter", "f5", "left").
type Key struct {
	Name  string
	Rune  rune // set for printable keys only
	Ctrl  bool
	Alt   bool
	Shift bool
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
	tcell.KeyPgUp:   "pageup",
	tcell.KeyPgDn:   "pagedown",
	tcell.KeyDelete: "delete",
	tcell.KeyInsert: "insert",
	tcell.KeyF1:     "f1",
	tcell.KeyF2:     "f2",
	tcell.KeyF3:     "f3",
	tcell.KeyF4:     "f4",
	tcell.KeyF5:     "f5",
	tcell.KeyF6:     "f6",
	tcell.KeyF7:     "f7",
	tcell.KeyF8:     "f8",
	tcell.KeyF9:     "f9",
	tcell.KeyF10:    "f10",
	tcell.KeyF11:    "f11",
	tcell.KeyF12:    "f12",
}

// FromEvent converts a tcell key event.
func FromEvent(ev *tcell.EventKey) Key {
	mod := ev.Modifiers()
	k := Key{
		Ctrl:  mod&tcell.ModCtrl != 0,
		Alt:   mod&(tcell.ModAlt|tcell.ModMeta) != 0,
		Shift: mod&tcell.ModShift != 0,
	}

	code := ev.Key()
	switch {
	case code == tcell.KeyRune:
		k.Rune = ev.Rune()
		k.Name = string(k.Rune)
		// Shift is already folded into the rune ('V' vs 'v').
		k.Shift = false
	case code == tcell.KeyBackspace && k.Ctrl:
		// Ctrl+H and Backspace share a key code; only the modifier differs.
		k.Name = "h"
	case code == tcell.KeyBackspace || code == tcell.KeyBackspace2:
		k.Name = "backspace"
		k.Ctrl = false
	case code == tcell.KeyTab:
		k.Name = "tab"
		k.Ctrl = false
	case code == tcell.KeyBacktab:
		k.Name = "tab"
		k.Shift = true
	case code == tcell.KeyEnter:
		k.Name = "enter"
		k.Ctrl = false
	case code == tcell.KeyEscape:
		k.Name = "esc"
		k.Ctrl = false
	case code >= tcell.KeyCtrlA && code <= tcell.KeyCtrlZ:
		k.Name = string(rune('a' + int(code-tcell.KeyCtrlA)))
		k.Ctrl = true
	default:
		if name, ok := namedKeys[code]; ok {
			k.Name = name
		} else {
			k.Name = strings.ToLower(ev.Name())
		}
	}
	return k
}

// Plain reports whether no modifier is held.
func (k Key) Plain() bool {
	return !k.Ctrl && !k.Alt && !k.Shift
}

// Printable reports whether the key carries a character to insert.
func (k Key) Printable() bool {
	return k.Rune != 0 && !k.Ctrl && !k.Alt
}

// String renders the key like "ctrl+r".
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(k.Name)
	return b.String()
}
