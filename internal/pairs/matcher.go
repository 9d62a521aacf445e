package pairs

import (
	"unicode/utf8"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
)

// Matcher decides pair insertion, retyping and deletion against a Table.
// It holds no state besides the table and never fails.
type Matcher struct {
	table Table
}

// NewMatcher creates a matcher for table.
func NewMatcher(table Table) *Matcher {
	return &Matcher{table: table}
}

// Table returns the matcher's pair table.
func (m *Matcher) Table() Table {
	return m.table
}

// OnInsert decides what typing typed at caret should do.
//
// The retype check runs before the open check, so a delimiter that is its
// own closer (a quote) moves over a matching quote to its right and opens a
// new pair otherwise. Input that is not exactly one character passes through.
func (m *Matcher) OnInsert(buf buffer.Reader, caret buffer.Offset, typed string) Action {
	pass := Action{Kind: PassThrough, Caret: caret}

	r, size := utf8.DecodeRuneInString(typed)
	if size == 0 || size != len(typed) {
		return pass
	}

	if next, ok := buf.RuneAt(caret); ok && next == r && m.table.IsCloser(r) {
		return Action{Kind: MoveCaretPast, Caret: caret + 1}
	}

	if closer, ok := m.table.Closer(r); ok {
		return Action{
			Kind:  InsertPair,
			Edit:  buffer.NewInsert(caret, string(r)+string(closer)),
			Caret: caret + 1,
		}
	}

	return pass
}

// OnBackspace decides what a backspace with selection sel should do.
// Only a collapsed selection sitting between an opener and its own closer
// deletes both; everything else passes through.
func (m *Matcher) OnBackspace(buf buffer.Reader, sel cursor.Selection) Action {
	caret := sel.Head
	pass := Action{Kind: PassThrough, Caret: caret}

	if !sel.IsEmpty() {
		return pass
	}

	opener, ok := buf.RuneAt(caret - 1)
	if !ok {
		return pass
	}
	closer, ok := m.table.Closer(opener)
	if !ok {
		return pass
	}
	if next, ok := buf.RuneAt(caret); !ok || next != closer {
		return pass
	}

	return Action{
		Kind:  DeleteRange,
		Edit:  buffer.NewDelete(caret-1, caret+1),
		Caret: caret - 1,
	}
}
