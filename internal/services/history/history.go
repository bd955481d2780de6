package history

import (
	"github.com/marklab/annotator/internal/services/segments"
)

// DefaultLimit bounds how many undo snapshots are retained. Oldest
// snapshots are dropped once the limit is reached.
const DefaultLimit = 100

// History keeps linear undo/redo snapshot stacks over a segment sequence.
// A snapshot is recorded before every mutating operation; any new mutation
// clears the redo stack.
type History struct {
	undo  []segments.Sequence
	redo  []segments.Sequence
	limit int
}

// New creates an empty history with the default snapshot limit
func New() *History {
	return NewWithLimit(DefaultLimit)
}

// NewWithLimit creates an empty history retaining at most limit snapshots
func NewWithLimit(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Record pushes a snapshot of the pre-mutation sequence onto the undo stack
// and clears the redo stack.
func (h *History) Record(seq segments.Sequence) {
	h.undo = append(h.undo, seq.Clone())
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// Undo returns the most recent snapshot, moving the current sequence onto
// the redo stack. Returns false when there is nothing to undo.
func (h *History) Undo(current segments.Sequence) (segments.Sequence, bool) {
	if len(h.undo) == 0 {
		return current, false
	}

	snapshot := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())
	return snapshot, true
}

// Redo reverses the most recent undo. Returns false when there is nothing
// to redo.
func (h *History) Redo(current segments.Sequence) (segments.Sequence, bool) {
	if len(h.redo) == 0 {
		return current, false
	}

	snapshot := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.Clone())
	return snapshot, true
}

// CanUndo reports whether an undo snapshot is available
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo snapshot is available
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Reset drops both stacks. Used when a different video is opened.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
