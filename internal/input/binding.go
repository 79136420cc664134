package input

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Binding is a configured key plus the modifiers that must be held.
type Binding struct {
	Key       string   `toml:"key"`
	Modifiers []string `toml:"modifiers"`
}

// Table maps command names to bindings for one mode.
type Table map[string]Binding

var keyAliases = map[string]string{
	"escape":    "esc",
	"return":    "enter",
	"bs":        "backspace",
	"del":       "delete",
	"pgup":      "pageup",
	"page_up":   "pageup",
	"pgdn":      "pagedown",
	"page_down": "pagedown",
	"space":     " ",
}

// normalizeKeyName folds named keys to lower case; single characters keep
// their case so "g" and "G" stay distinct.
func normalizeKeyName(name string) string {
	if utf8.RuneCountInString(name) == 1 {
		return name
	}
	lower := strings.ToLower(name)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}

// ParseBinding reads "ctrl+r", "shift+tab", "G" or "+".
func ParseBinding(s string) Binding {
	if s == "+" || !strings.Contains(s, "+") {
		return Binding{Key: s}
	}
	parts := strings.Split(s, "+")
	key := parts[len(parts)-1]
	if key == "" { // "ctrl++"
		key = "+"
		parts = parts[:len(parts)-1]
	}
	return Binding{Key: key, Modifiers: parts[:len(parts)-1]}
}

// Matches reports whether k triggers b. A binding without modifiers only
// matches when none are held; otherwise every listed modifier must be held.
func (b Binding) Matches(k Key) bool {
	if b.Key == "" || normalizeKeyName(b.Key) != normalizeKeyName(k.Name) {
		return false
	}
	if len(b.Modifiers) == 0 {
		return k.Plain()
	}
	for _, m := range b.Modifiers {
		switch strings.ToLower(m) {
		case "ctrl", "control":
			if !k.Ctrl {
				return false
			}
		case "alt", "meta":
			if !k.Alt {
				return false
			}
		case "shift":
			if !k.Shift {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// String renders the binding the way ParseBinding reads it.
func (b Binding) String() string {
	if len(b.Modifiers) == 0 {
		return b.Key
	}
	mods := make([]string, len(b.Modifiers))
	for i, m := range b.Modifiers {
		mods[i] = strings.ToLower(m)
	}
	return strings.Join(mods, "+") + "+" + b.Key
}

// Resolve returns the command bound to k. Commands are tried in name order
// so a key bound twice always resolves the same way.
func (t Table) Resolve(k Key) (string, bool) {
	for _, name := range t.Commands() {
		if t[name].Matches(k) {
			return name, true
		}
	}
	return "", false
}

// Commands returns the command names in sorted order.
func (t Table) Commands() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a copy of t with every entry of over applied on top.
func (t Table) Merge(over Table) Table {
	out := make(Table, len(t)+len(over))
	for name, b := range t {
		out[name] = b
	}
	for name, b := range over {
		out[name] = b
	}
	return out
}
