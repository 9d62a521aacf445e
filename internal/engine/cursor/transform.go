package cursor

import (
	"unicode/utf8"

	"github.com/dshills/caretkit/internal/engine/buffer"
)

// TransformOffset updates an offset after an edit.
//
//   - edit ending at or before offset (including an insert at offset): shift by the edit's delta
//   - edit starts at or after offset: unchanged
//   - edit spans offset: move to the end of the new text
func TransformOffset(offset Offset, edit buffer.Edit) Offset {
	return transform(offset, edit.Range, utf8.RuneCountInString(edit.NewText))
}

// TransformSelection updates a selection after an edit.
// Anchor and head are transformed independently.
func TransformSelection(sel Selection, edit buffer.Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformApplied updates a selection after an edit the buffer has
// already applied. It uses the result's ranges, which account for any line
// ending normalization of the inserted text.
func TransformApplied(sel Selection, res buffer.EditResult) Selection {
	n := res.NewRange.Len()
	return Selection{
		Anchor: transform(sel.Anchor, res.OldRange, n),
		Head:   transform(sel.Head, res.OldRange, n),
	}
}

func transform(offset Offset, r Range, newLen int) Offset {
	if r.End <= offset {
		return offset - r.Len() + newLen
	}
	if r.Start >= offset {
		return offset
	}
	return r.Start + newLen
}
