package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/types"
)

func action(line int) EditorAction {
	return EditorAction{
		Edit:         OpenLineBelow{Line: line},
		CursorBefore: types.Position{Line: line - 1},
		CursorAfter:  types.Position{Line: line},
	}
}

func TestNewLogIsEmpty(t *testing.T) {
	l := New(0)
	assert.Equal(t, DefaultMaxHistory, l.MaxHistory())
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())

	_, ok := l.UndoAction()
	assert.False(t, ok)
	_, ok = l.RedoAction()
	assert.False(t, ok)
}

func TestUndoRedoWalk(t *testing.T) {
	l := New(10)
	l.Push(action(1))
	l.Push(action(2))
	require.Equal(t, 2, l.CurrentIndex())

	got, ok := l.UndoAction()
	require.True(t, ok)
	assert.Equal(t, action(2), got)
	assert.Equal(t, 1, l.CurrentIndex())
	assert.True(t, l.CanRedo())

	got, ok = l.RedoAction()
	require.True(t, ok)
	assert.Equal(t, action(2), got)
	assert.Equal(t, 2, l.CurrentIndex())
	assert.False(t, l.CanRedo())
}

func TestPushWhileReplayingIsIgnored(t *testing.T) {
	l := New(10)
	l.Push(action(1))

	l.StartUndoOrRedo()
	assert.True(t, l.Replaying())
	for i := 0; i < 5; i++ {
		l.Push(action(i + 2))
	}
	l.EndUndoOrRedo()

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, l.CurrentIndex())
}

func TestPushAfterUndoTruncatesRedoTail(t *testing.T) {
	l := New(10)
	l.Push(action(1))
	l.Push(action(2))
	l.Push(action(3))
	l.UndoAction()
	l.UndoAction()

	l.Push(action(9))

	assert.False(t, l.CanRedo())
	assert.Equal(t, []EditorAction{action(1), action(9)}, l.Actions())
	_, ok := l.RedoAction()
	assert.False(t, ok)
}

func TestCapacityEviction(t *testing.T) {
	l := New(2)
	a, b, c := action(1), action(2), action(3)
	l.Push(a)
	l.Push(b)
	l.Push(c)

	assert.Equal(t, []EditorAction{b, c}, l.Actions())
	assert.Equal(t, 2, l.CurrentIndex())
	assert.True(t, l.CanUndo())
	assert.False(t, l.CanRedo())
}

func TestEvictionKeepsIndexInRange(t *testing.T) {
	l := New(3)
	for i := 0; i < 50; i++ {
		l.Push(action(i))
		require.LessOrEqual(t, l.CurrentIndex(), l.Len())
		require.GreaterOrEqual(t, l.CurrentIndex(), 0)
		require.LessOrEqual(t, l.Len(), 3)
	}
}

func TestClear(t *testing.T) {
	l := New(5)
	l.Push(action(1))
	l.Push(action(2))
	l.Clear()

	assert.Zero(t, l.Len())
	assert.Zero(t, l.CurrentIndex())
	assert.False(t, l.CanUndo())
}

func TestSetCursorsStampsOnlyNewActions(t *testing.T) {
	l := New(10)
	l.Push(action(1))
	mark := l.Pushed()
	l.Push(action(2))
	l.Push(action(3))

	before := types.Position{Line: 7, Col: 3}
	after := types.Position{Line: 8, Col: 1}
	l.SetCursors(mark, before, after)

	got := l.Actions()
	assert.Equal(t, action(1), got[0])
	assert.Equal(t, before, got[1].CursorBefore)
	assert.Equal(t, action(2).CursorAfter, got[1].CursorAfter)
	assert.Equal(t, action(3).CursorBefore, got[2].CursorBefore)
	assert.Equal(t, after, got[2].CursorAfter)
}

func TestSetCursorsWithNothingNew(t *testing.T) {
	l := New(2)
	l.Push(action(1))
	l.SetCursors(l.Pushed(), types.Position{Line: 9}, types.Position{Line: 9})
	assert.Equal(t, action(1), l.Actions()[0])

	// Eviction keeps the counter moving, so the newest action is still found.
	mark := l.Pushed()
	l.Push(action(2))
	l.Push(action(3))
	l.SetCursors(mark, types.Position{Col: 4}, types.Position{Col: 5})
	got := l.Actions()
	require.Len(t, got, 2)
	assert.Equal(t, types.Position{Col: 4}, got[0].CursorBefore)
	assert.Equal(t, types.Position{Col: 5}, got[1].CursorAfter)

	l.Clear()
	l.SetCursors(mark, types.Position{}, types.Position{})
	assert.Zero(t, l.Len())
}
