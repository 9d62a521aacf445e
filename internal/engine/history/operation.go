package history

import (
	"time"
	"unicode/utf8"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
)

// MergeWindow is the longest pause between typed characters that still
// merge into one undo entry.
const MergeWindow = time.Second

// Operation represents a single undoable edit.
type Operation struct {
	Range   buffer.Range // range replaced, in the text before the edit
	OldText string       // text that was replaced (for undo)
	NewText string       // text that was inserted (for redo)

	Before cursor.Selection // selection before the edit
	After  cursor.Selection // selection after the edit

	// Typing marks a single character insertion that may merge with the
	// operation before it.
	Typing bool

	Timestamp time.Time
}

// NewOperation records an applied edit. inserted is the text now occupying
// res.NewRange.
func NewOperation(res buffer.EditResult, inserted string, before, after cursor.Selection) Operation {
	return Operation{
		Range:     res.OldRange,
		OldText:   res.OldText,
		NewText:   inserted,
		Before:    before,
		After:     after,
		Timestamp: time.Now(),
	}
}

// IsInsert returns true if this operation is a pure insertion.
func (op Operation) IsInsert() bool {
	return op.Range.IsEmpty() && op.NewText != ""
}

// NewRange returns the range of the text after the operation.
func (op Operation) NewRange() buffer.Range {
	return buffer.NewRange(op.Range.Start, op.Range.Start+utf8.RuneCountInString(op.NewText))
}

// undoEdit restores the text the operation replaced.
func (op Operation) undoEdit() buffer.Edit {
	return buffer.NewEdit(op.NewRange(), op.OldText)
}

// redoEdit re-applies the operation.
func (op Operation) redoEdit() buffer.Edit {
	return buffer.NewEdit(op.Range, op.NewText)
}

// merge appends next to op when both are typed insertions, next continues
// where op ended, and next came within MergeWindow. A newline ends a run.
func (op Operation) merge(next Operation) (Operation, bool) {
	if !op.Typing || !next.Typing || !op.IsInsert() || !next.IsInsert() {
		return op, false
	}
	if next.Range.Start != op.NewRange().End || next.NewText == "\n" {
		return op, false
	}
	if next.Timestamp.Sub(op.Timestamp) > MergeWindow {
		return op, false
	}

	op.NewText += next.NewText
	op.After = next.After
	op.Timestamp = next.Timestamp
	return op, true
}
