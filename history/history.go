// Package history implements the studio's linear undo/redo log.
//
// The log is a list of actions plus a cursor. Appending while the cursor is
// not at the tail discards the redo branch: this is standard linear undo,
// not an undo tree. Actions may carry Apply/Revert functions so Undo and
// Redo can mutate state deterministically; actions without them degrade to
// plain activity-log entries and the caller reconstructs state itself.
package history

import (
	"time"

	"github.com/google/uuid"
)

// ActionType categorizes a history entry.
type ActionType string

// Built-in action types. The set is open: callers may log their own.
const (
	ActionGeneration ActionType = "generation"
	ActionRefinement ActionType = "refinement"
	ActionFilter     ActionType = "filter"
	ActionAdjustment ActionType = "adjustment"
)

// Action is one immutable history entry.
type Action struct {
	ID          string
	Type        ActionType
	Description string
	Timestamp   time.Time
	Data        any
	Preview     string // optional thumbnail reference

	// Apply re-performs the action; Revert undoes it. Either may be nil,
	// in which case the engine only moves the cursor.
	Apply  func()
	Revert func()
}

// Engine is a linear, branch-discarding undo/redo log.
// It is not safe for concurrent use; the studio mutates it from a single
// event loop.
type Engine struct {
	actions []Action
	current int // index of the current action, -1 when empty
}

// New creates an empty history engine.
func New() *Engine {
	return &Engine{current: -1}
}

// Add records a new action. Any redoable actions beyond the cursor are
// discarded first, then the action is appended and becomes current.
// The action's ID and Timestamp are assigned here.
func (e *Engine) Add(a Action) Action {
	a.ID = uuid.NewString()
	a.Timestamp = time.Now()

	e.actions = append(e.actions[:e.current+1], a)
	e.current = len(e.actions) - 1
	return a
}

// Undo steps the cursor back one action and returns the action that is now
// current (the one before the undone action), calling the undone action's
// Revert if set. At the first action or on an empty log it returns nil and
// leaves the state unchanged; the first action is the baseline and cannot
// be stepped behind.
func (e *Engine) Undo() *Action {
	if e.current <= 0 {
		return nil
	}
	undone := e.actions[e.current]
	if undone.Revert != nil {
		undone.Revert()
	}
	e.current--
	a := e.actions[e.current]
	return &a
}

// Redo steps the cursor forward one action and returns it, calling its
// Apply if set. At the tail it returns nil and leaves the state unchanged.
func (e *Engine) Redo() *Action {
	if e.current >= len(e.actions)-1 {
		return nil
	}
	e.current++
	a := e.actions[e.current]
	if a.Apply != nil {
		a.Apply()
	}
	return &a
}

// CanUndo reports whether Undo would move the cursor.
func (e *Engine) CanUndo() bool { return e.current > 0 }

// CanRedo reports whether Redo would move the cursor.
func (e *Engine) CanRedo() bool { return e.current < len(e.actions)-1 }

// Current returns the action at the cursor, or nil when the log is empty.
func (e *Engine) Current() *Action {
	if e.current < 0 {
		return nil
	}
	a := e.actions[e.current]
	return &a
}

// Index returns the cursor position, -1 when empty.
func (e *Engine) Index() int { return e.current }

// Len returns the number of recorded actions.
func (e *Engine) Len() int { return len(e.actions) }

// Actions returns a copy of the log in record order.
func (e *Engine) Actions() []Action {
	out := make([]Action, len(e.actions))
	copy(out, e.actions)
	return out
}

// Clear resets the engine to an empty log.
func (e *Engine) Clear() {
	e.actions = nil
	e.current = -1
}
