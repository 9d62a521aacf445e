package pairs

import (
	"fmt"

	"github.com/dshills/caretkit/internal/engine/buffer"
)

// Kind identifies what an Action asks the host to do.
type Kind uint8

const (
	// PassThrough leaves the input to the host's default handling.
	PassThrough Kind = iota
	// InsertPair inserts an opener and its closer with the caret between.
	InsertPair
	// MoveCaretPast suppresses the insertion and advances the caret by one.
	MoveCaretPast
	// DeleteRange deletes an opener and its adjacent closer as one unit.
	DeleteRange
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case PassThrough:
		return "pass-through"
	case InsertPair:
		return "insert-pair"
	case MoveCaretPast:
		return "move-caret-past"
	case DeleteRange:
		return "delete-range"
	default:
		return "unknown"
	}
}

// Action is the outcome of a matcher decision.
// Edit is the buffer change to apply (a no-op edit for PassThrough and
// MoveCaretPast); Caret is the collapsed caret offset after applying it.
type Action struct {
	Kind  Kind
	Edit  buffer.Edit
	Caret buffer.Offset
}

// Handled reports whether the host must suppress its default behaviour.
func (a Action) Handled() bool {
	return a.Kind != PassThrough
}

// String returns a human-readable representation of the action.
func (a Action) String() string {
	if a.Kind == PassThrough {
		return a.Kind.String()
	}
	return fmt.Sprintf("%s %s caret=%d", a.Kind, a.Edit, a.Caret)
}

// Editor is the part of a buffer an Action is applied to.
type Editor interface {
	ApplyEdit(edit buffer.Edit) (buffer.EditResult, error)
}

// Apply performs the action's edit on ed and returns the resulting caret.
// PassThrough returns an error-free no-op with caret unchanged.
func (a Action) Apply(ed Editor) (buffer.Offset, error) {
	if a.Edit.IsNoOp() {
		return a.Caret, nil
	}
	if _, err := ed.ApplyEdit(a.Edit); err != nil {
		return 0, fmt.Errorf("apply %s: %w", a.Kind, err)
	}
	return a.Caret, nil
}
