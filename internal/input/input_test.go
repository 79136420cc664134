package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Key
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), Key{Name: "d", Rune: 'd'}},
		{"upper rune drops shift", tcell.NewEventKey(tcell.KeyRune, 'V', tcell.ModShift), Key{Name: "V", Rune: 'V'}},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), Key{Name: "r", Ctrl: true}},
		{"ctrl h", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModCtrl), Key{Name: "h", Ctrl: true}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Key{Name: "backspace"}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Key{Name: "esc"}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Key{Name: "enter"}},
		{"ctrl right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), Key{Name: "right", Ctrl: true}},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), Key{Name: "f5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromEvent(tt.ev))
		})
	}
}

func TestParseBinding(t *testing.T) {
	assert.Equal(t, Binding{Key: "q"}, ParseBinding("q"))
	assert.Equal(t, Binding{Key: "r", Modifiers: []string{"ctrl"}}, ParseBinding("ctrl+r"))
	assert.Equal(t, Binding{Key: "+"}, ParseBinding("+"))
	assert.Equal(t, Binding{Key: "+", Modifiers: []string{"ctrl"}}, ParseBinding("ctrl++"))
	assert.Equal(t, "ctrl+right", ParseBinding("ctrl+right").String())
}

func TestBindingMatches(t *testing.T) {
	plainU := Key{Name: "u", Rune: 'u'}
	ctrlR := Key{Name: "r", Ctrl: true}

	assert.True(t, ParseBinding("u").Matches(plainU))
	assert.False(t, ParseBinding("u").Matches(Key{Name: "u", Ctrl: true}), "no-modifier binding rejects held modifiers")
	assert.True(t, ParseBinding("ctrl+r").Matches(ctrlR))
	assert.False(t, ParseBinding("ctrl+r").Matches(Key{Name: "r", Rune: 'r'}))
	assert.False(t, ParseBinding("g").Matches(Key{Name: "G", Rune: 'G'}), "single characters are case sensitive")
	assert.True(t, Binding{Key: "Escape"}.Matches(Key{Name: "esc"}), "named keys fold case and aliases")
	assert.False(t, Binding{Key: "x", Modifiers: []string{"hyper"}}.Matches(Key{Name: "x", Ctrl: true}))
}

func TestTableResolveIsDeterministic(t *testing.T) {
	table := Table{
		"zeta":  ParseBinding("x"),
		"alpha": ParseBinding("x"),
		"undo":  ParseBinding("u"),
	}
	for i := 0; i < 20; i++ {
		name, ok := table.Resolve(Key{Name: "x", Rune: 'x'})
		assert.True(t, ok)
		assert.Equal(t, "alpha", name)
	}
	_, ok := table.Resolve(Key{Name: "y", Rune: 'y'})
	assert.False(t, ok)

	var empty Table
	_, ok = empty.Resolve(Key{Name: "u", Rune: 'u'})
	assert.False(t, ok, "nil table resolves nothing")
}

func TestMerge(t *testing.T) {
	base := Table{"quit": ParseBinding("q"), "undo": ParseBinding("u")}
	merged := base.Merge(Table{"quit": ParseBinding("ctrl+q")})
	assert.Equal(t, "ctrl+q", merged["quit"].String())
	assert.Equal(t, "u", merged["undo"].String())
	assert.Equal(t, "q", base["quit"].String(), "merge copies")
}
