package history

import (
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/types"
)

// DefaultMaxHistory is the capacity used when none is configured.
const DefaultMaxHistory = 1000

// Log is a bounded, non-branching undo/redo log.
type Log struct {
	actions    []EditorAction
	current    int // index of the next action to redo
	maxHistory int
	replaying  bool
	pushed     int // actions recorded over the log's lifetime
}

// New creates a log holding at most maxHistory actions.
func New(maxHistory int) *Log {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Log{maxHistory: maxHistory}
}

// Push records a new action and discards the redo tail. It does nothing
// while an undo or redo is being replayed.
func (l *Log) Push(action EditorAction) {
	if l.replaying {
		return
	}

	if l.current < len(l.actions) {
		l.actions = l.actions[:l.current]
	}
	l.actions = append(l.actions, action)
	l.current = len(l.actions)
	l.pushed++

	if over := len(l.actions) - l.maxHistory; over > 0 {
		l.actions = append(l.actions[:0:0], l.actions[over:]...)
		l.current -= over
		if l.current < 0 {
			l.current = 0
		}
	}

	logger.Debugf("History: Recorded %T. Index: %d, Count: %d", action.Edit, l.current, len(l.actions))
}

// CanUndo reports whether there is an action to revert.
func (l *Log) CanUndo() bool { return l.current > 0 }

// CanRedo reports whether there is an undone action to reapply.
func (l *Log) CanRedo() bool { return l.current < len(l.actions) }

// UndoAction steps back and returns the action to revert.
func (l *Log) UndoAction() (EditorAction, bool) {
	if !l.CanUndo() {
		logger.Debugf("History: Nothing to undo.")
		return EditorAction{}, false
	}
	l.current--
	return l.actions[l.current], true
}

// RedoAction returns the action to reapply and steps forward.
func (l *Log) RedoAction() (EditorAction, bool) {
	if !l.CanRedo() {
		logger.Debugf("History: Nothing to redo. Index: %d, Count: %d", l.current, len(l.actions))
		return EditorAction{}, false
	}
	action := l.actions[l.current]
	l.current++
	return action, true
}

// StartUndoOrRedo suppresses Push until EndUndoOrRedo is called.
func (l *Log) StartUndoOrRedo() { l.replaying = true }

// EndUndoOrRedo closes the replay bracket opened by StartUndoOrRedo.
func (l *Log) EndUndoOrRedo() { l.replaying = false }

// Replaying reports whether a replay bracket is open.
func (l *Log) Replaying() bool { return l.replaying }

// Clear empties the log.
func (l *Log) Clear() {
	l.actions = nil
	l.current = 0
	logger.Debugf("History: Cleared.")
}

// Len returns the number of actions held, including the redo tail.
func (l *Log) Len() int { return len(l.actions) }

// CurrentIndex is the number of actions that can be undone.
func (l *Log) CurrentIndex() int { return l.current }

// MaxHistory returns the capacity of the log.
func (l *Log) MaxHistory() int { return l.maxHistory }

// Pushed counts every action recorded since the log was created. It keeps
// growing across eviction and Clear.
func (l *Log) Pushed() int { return l.pushed }

// SetCursors rewrites the cursor positions of the actions recorded since
// Pushed returned since: the first gets before, the last gets after. Actions
// already evicted or cleared are skipped.
func (l *Log) SetCursors(since int, before, after types.Position) {
	n := min(l.pushed-since, l.current)
	if n <= 0 || l.current != len(l.actions) {
		return
	}
	l.actions[l.current-n].CursorBefore = before
	l.actions[l.current-1].CursorAfter = after
}

// Actions returns a copy of the recorded actions, oldest first.
func (l *Log) Actions() []EditorAction {
	out := make([]EditorAction, len(l.actions))
	copy(out, l.actions)
	return out
}
