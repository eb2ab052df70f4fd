package flowcanvas

// History is a linear undo/redo stack of workflow snapshots.
//
// Snapshots are deep copies taken at checkpoint time and are never mutated
// afterwards; Undo and Redo hand out fresh copies. Checkpointing after an
// undo discards the abandoned future.
//
// History is not safe for concurrent use. Store serializes access to it.
type History struct {
	snapshots []*Workflow
	index     int
	limit     int
}

// NewHistory creates an empty history. limit <= 0 means unlimited.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{index: -1, limit: limit}
}

// Reset replaces all history with a single snapshot of w.
// A nil w empties the history.
func (h *History) Reset(w *Workflow) {
	if w == nil {
		h.snapshots = nil
		h.index = -1
		return
	}
	h.snapshots = []*Workflow{w.Clone()}
	h.index = 0
}

// Save truncates the redo future and appends a snapshot of w.
func (h *History) Save(w *Workflow) {
	h.snapshots = append(h.snapshots[:h.index+1], w.Clone())
	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		clear(h.snapshots[:drop])
		h.snapshots = h.snapshots[drop:]
	}
	h.index = len(h.snapshots) - 1
}

// Undo steps back and returns a copy of the restored snapshot.
// It returns false at the start of history.
func (h *History) Undo() (*Workflow, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.index--
	return h.snapshots[h.index].Clone(), true
}

// Redo steps forward and returns a copy of the restored snapshot.
// It returns false at the end of history.
func (h *History) Redo() (*Workflow, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.index++
	return h.snapshots[h.index].Clone(), true
}

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool {
	return h.index < len(h.snapshots)-1
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Index returns the current position, or -1 when empty.
func (h *History) Index() int {
	return h.index
}

// Snapshot returns a copy of the snapshot at i.
func (h *History) Snapshot(i int) (*Workflow, bool) {
	if i < 0 || i >= len(h.snapshots) {
		return nil, false
	}
	return h.snapshots[i].Clone(), true
}
