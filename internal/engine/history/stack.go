package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []Operation
	redoStack []Operation

	// sealed stops the next push merging into the top entry, which may
	// have just been redone.
	sealed bool

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push records an operation and clears the redo stack.
func (h *History) Push(op Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil

	if n := len(h.undoStack); n > 0 && !h.sealed {
		if merged, ok := h.undoStack[n-1].merge(op); ok {
			h.undoStack[n-1] = merged
			return
		}
	}
	h.sealed = false

	h.undoStack = append(h.undoStack, op)
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last operation on buf and returns the selection to
// restore.
func (h *History) Undo(buf *buffer.Buffer) (cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.undoStack)
	if n == 0 {
		return cursor.Selection{}, ErrNothingToUndo
	}
	op := h.undoStack[n-1]
	if _, err := buf.ApplyEdit(op.undoEdit()); err != nil {
		return cursor.Selection{}, fmt.Errorf("undo: %w", err)
	}

	h.undoStack = h.undoStack[:n-1]
	h.redoStack = append(h.redoStack, op)
	h.sealed = true
	return op.Before, nil
}

// Redo re-applies the last undone operation on buf and returns the
// selection to restore.
func (h *History) Redo(buf *buffer.Buffer) (cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.redoStack)
	if n == 0 {
		return cursor.Selection{}, ErrNothingToRedo
	}
	op := h.redoStack[n-1]
	if _, err := buf.ApplyEdit(op.redoEdit()); err != nil {
		return cursor.Selection{}, fmt.Errorf("redo: %w", err)
	}

	h.redoStack = h.redoStack[:n-1]
	h.undoStack = append(h.undoStack, op)
	h.sealed = true
	return op.After, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.sealed = false
}
