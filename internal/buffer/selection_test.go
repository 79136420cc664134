package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoSelectionWithoutAnchor(t *testing.T) {
	sb := FromLines("abc")
	_, ok := sb.SelectionBounds(pos(0, 2), false)
	assert.False(t, ok)
	assert.False(t, sb.IsPositionSelected(0, 0, pos(0, 2), false))
	assert.Empty(t, sb.GetSelectedText(pos(0, 2), false))
	assert.False(t, sb.DeleteSelection(pos(0, 2), false))
}

func TestCharacterSelectionIsHalfOpen(t *testing.T) {
	sb := FromLines("hello", "world")
	sb.StartSelection(pos(1, 2))

	// Cursor before the anchor: the range is normalised.
	cur := pos(0, 3)
	assert.Equal(t, "lo\nwo", sb.GetSelectedText(cur, false))
	assert.True(t, sb.IsPositionSelected(0, 3, cur, false))
	assert.True(t, sb.IsPositionSelected(1, 1, cur, false))
	assert.False(t, sb.IsPositionSelected(1, 2, cur, false), "end is exclusive")
	assert.False(t, sb.IsPositionSelected(0, 2, cur, false))
}

func TestSelectionFollowsCursor(t *testing.T) {
	sb := FromLines("abcdef")
	sb.StartSelection(pos(0, 1))
	assert.Equal(t, "bc", sb.GetSelectedText(pos(0, 3), false))
	assert.Equal(t, "bcde", sb.GetSelectedText(pos(0, 5), false))
}

func TestLineSelectionCoversWholeRows(t *testing.T) {
	sb := FromLines("one", "two", "three", "four")
	sb.StartSelection(pos(2, 0))
	cur := pos(1, 1)

	sel, ok := sb.SelectionBounds(cur, true)
	require.True(t, ok)
	assert.Equal(t, 1, sel.Start.Line)
	assert.Equal(t, 2, sel.End.Line)
	assert.True(t, sel.Contains(2, 100))
	assert.False(t, sel.Contains(3, 0))
	assert.Equal(t, "two\nthree", sb.GetSelectedText(cur, true))
}

func TestStaleAnchorIsClamped(t *testing.T) {
	sb := FromLines("abc", "def")
	sb.StartSelection(pos(1, 3))
	sb.DeleteLine(1)

	assert.Equal(t, "bc", sb.GetSelectedText(pos(0, 1), false))
}

func TestDeleteSelectionMatchesSelectedText(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		anchor   [2]int
		cursor   [2]int
		lineMode bool
		want     []string
	}{
		{"char same line", []string{"abcdef"}, [2]int{0, 1}, [2]int{0, 4}, false, []string{"aef"}},
		{"char multi line", []string{"abc", "def", "ghi"}, [2]int{0, 2}, [2]int{2, 1}, false, []string{"abhi"}},
		{"char reversed", []string{"abc", "def"}, [2]int{1, 2}, [2]int{0, 1}, false, []string{"af"}},
		{"line middle", []string{"a", "b", "c", "d"}, [2]int{1, 0}, [2]int{2, 0}, true, []string{"a", "d"}},
		{"line tail", []string{"a", "b", "c"}, [2]int{2, 0}, [2]int{1, 1}, true, []string{"a"}},
		{"line head", []string{"a", "b", "c"}, [2]int{0, 0}, [2]int{0, 1}, true, []string{"b", "c"}},
		{"line all", []string{"a", "b", "c"}, [2]int{0, 0}, [2]int{2, 0}, true, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := FromLines(tt.lines...)
			sb.StartSelection(pos(tt.anchor[0], tt.anchor[1]))
			cur := pos(tt.cursor[0], tt.cursor[1])
			before := strings.Join(sb.Lines(), "\n")
			selected := sb.GetSelectedText(cur, tt.lineMode)

			require.True(t, sb.DeleteSelection(cur, tt.lineMode))
			assert.Equal(t, tt.want, sb.Lines())
			assert.False(t, sb.HasSelection())

			if tt.lineMode {
				first, last := tt.anchor[0], tt.cursor[0]
				if last < first {
					first, last = last, first
				}
				assert.Equal(t, tt.lines[first:last+1], strings.Split(selected, "\n"))
			} else {
				after := strings.Join(sb.Lines(), "\n")
				assert.Equal(t, len(before)-len(selected), len(after))
				assert.True(t, strings.Contains(before, selected))
			}

			require.True(t, sb.Undo(nil))
			assert.Equal(t, tt.lines, sb.Lines())
		})
	}
}

func TestLineModeCutOfWholeBuffer(t *testing.T) {
	sb := FromLines("first", "second", "third")
	sb.StartSelection(pos(0, 0))
	cur := pos(2, 3)

	text := sb.GetSelectedText(cur, true)
	require.True(t, sb.DeleteSelection(cur, true))

	assert.Equal(t, "first\nsecond\nthird", text)
	assert.Equal(t, []string{""}, sb.Lines())
}

func TestEmptyCharacterSelectionDeletesNothing(t *testing.T) {
	sb := FromLines("abc")
	sb.StartSelection(pos(0, 1))
	assert.False(t, sb.DeleteSelection(pos(0, 1), false))
	assert.Equal(t, []string{"abc"}, sb.Lines())
	assert.Zero(t, sb.History().Len())
}
