package history

import "testing"

func add(e *Engine, desc string) Action {
	return e.Add(Action{Type: ActionAdjustment, Description: desc})
}

func TestAddAssignsIdentity(t *testing.T) {
	e := New()
	a := add(e, "first")
	if a.ID == "" {
		t.Error("ID not assigned")
	}
	if a.Timestamp.IsZero() {
		t.Error("Timestamp not assigned")
	}
	if e.Index() != 0 || e.Len() != 1 {
		t.Errorf("index/len = %d/%d, want 0/1", e.Index(), e.Len())
	}
}

func TestUndoRedoCursor(t *testing.T) {
	e := New()
	add(e, "a0")
	add(e, "a1")
	add(e, "a2")

	got := e.Undo()
	if got == nil || got.Description != "a1" {
		t.Fatalf("Undo returned %v, want a1", got)
	}
	if e.Index() != 1 {
		t.Errorf("index = %d, want 1", e.Index())
	}

	got = e.Redo()
	if got == nil || got.Description != "a2" {
		t.Fatalf("Redo returned %v, want a2", got)
	}
	if e.Index() != 2 {
		t.Errorf("index = %d, want 2", e.Index())
	}
}

// Undo at index 0 is a no-op returning nil: the first action is the
// baseline.
func TestUndoBoundary(t *testing.T) {
	e := New()
	if e.Undo() != nil {
		t.Error("Undo on empty log should return nil")
	}
	add(e, "a0")
	if e.Undo() != nil {
		t.Error("Undo at index 0 should return nil")
	}
	if e.Index() != 0 {
		t.Errorf("index = %d, want 0 (unchanged)", e.Index())
	}
	if e.CanUndo() {
		t.Error("CanUndo should be false at index 0")
	}
}

func TestRedoBoundary(t *testing.T) {
	e := New()
	add(e, "a0")
	if e.Redo() != nil {
		t.Error("Redo at tail should return nil")
	}
	if e.Index() != 0 {
		t.Errorf("index = %d, want 0 (unchanged)", e.Index())
	}
	if e.CanRedo() {
		t.Error("CanRedo should be false at tail")
	}
}

// Adding after an undo discards the redo branch.
func TestTruncateOnBranch(t *testing.T) {
	e := New()
	add(e, "a0")
	add(e, "a1")
	add(e, "a2")

	e.Undo()
	add(e, "a3")

	if e.Len() != 3 {
		t.Fatalf("len = %d, want 3", e.Len())
	}
	if e.Index() != 2 {
		t.Errorf("index = %d, want 2", e.Index())
	}
	want := []string{"a0", "a1", "a3"}
	for i, a := range e.Actions() {
		if a.Description != want[i] {
			t.Errorf("actions[%d] = %s, want %s", i, a.Description, want[i])
		}
	}
}

func TestApplyRevertCallbacks(t *testing.T) {
	e := New()
	counter := 0
	add(e, "baseline")
	e.Add(Action{
		Description: "increment",
		Apply:       func() { counter++ },
		Revert:      func() { counter-- },
	})

	counter++ // the action itself ran once when recorded

	e.Undo()
	if counter != 0 {
		t.Errorf("counter after undo = %d, want 0", counter)
	}
	e.Redo()
	if counter != 1 {
		t.Errorf("counter after redo = %d, want 1", counter)
	}
}

func TestClear(t *testing.T) {
	e := New()
	add(e, "a0")
	add(e, "a1")
	e.Clear()
	if e.Len() != 0 || e.Index() != -1 {
		t.Errorf("after Clear: len/index = %d/%d, want 0/-1", e.Len(), e.Index())
	}
	if e.Current() != nil {
		t.Error("Current should be nil after Clear")
	}
}

func TestCurrent(t *testing.T) {
	e := New()
	if e.Current() != nil {
		t.Error("Current on empty log should be nil")
	}
	add(e, "a0")
	add(e, "a1")
	if got := e.Current(); got == nil || got.Description != "a1" {
		t.Errorf("Current = %v, want a1", got)
	}
}
