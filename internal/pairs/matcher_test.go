package pairs

import (
	"testing"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
)

func TestInsertOpenerIntoEmptyBuffer(t *testing.T) {
	m := NewMatcher(DefaultTable())

	for open, shut := range DefaultPairs {
		buf := buffer.NewBuffer()
		action := m.OnInsert(buf, 0, open)
		if action.Kind != InsertPair {
			t.Fatalf("typing %q: kind = %v, want InsertPair", open, action.Kind)
		}

		caret, err := action.Apply(buf)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if buf.Text() != open+shut {
			t.Errorf("typing %q: buffer = %q, want %q", open, buf.Text(), open+shut)
		}
		if caret != 1 {
			t.Errorf("typing %q: caret = %d, want 1", open, caret)
		}
	}
}

func TestRetypeCloser(t *testing.T) {
	m := NewMatcher(DefaultTable())
	buf := buffer.NewBufferFromString("(x)")

	action := m.OnInsert(buf, 2, ")")
	if action.Kind != MoveCaretPast {
		t.Fatalf("kind = %v, want MoveCaretPast", action.Kind)
	}

	caret, err := action.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "(x)" {
		t.Errorf("buffer changed to %q", buf.Text())
	}
	if caret != 3 {
		t.Errorf("caret = %d, want 3", caret)
	}
}

func TestOnInsertDecisions(t *testing.T) {
	m := NewMatcher(DefaultTable())

	tests := []struct {
		name       string
		text       string
		caret      int
		typed      string
		kind       Kind
		caretAfter int
	}{
		{"closer with nothing to the right", "(x", 2, ")", PassThrough, 2},
		{"closer before different char", "(x]", 2, ")", PassThrough, 2},
		{"plain letter before closer", "()", 1, "a", PassThrough, 1},
		{"letter matching next char", "ab", 0, "a", PassThrough, 0},
		{"quote retypes matching quote", `""`, 1, `"`, MoveCaretPast, 2},
		{"quote opens when next differs", `a`, 0, `"`, InsertPair, 1},
		{"opener before same opener", "(", 0, "(", InsertPair, 1},
		{"multi character input", "", 0, "()", PassThrough, 0},
		{"empty input", "", 0, "", PassThrough, 0},
		{"caret beyond end", "ab", 5, ")", PassThrough, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewSnapshot(tt.text)
			action := m.OnInsert(buf, tt.caret, tt.typed)
			if action.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", action.Kind, tt.kind)
			}
			if action.Caret != tt.caretAfter {
				t.Errorf("caret = %d, want %d", action.Caret, tt.caretAfter)
			}
			if action.Handled() != (tt.kind != PassThrough) {
				t.Errorf("Handled() = %v", action.Handled())
			}
		})
	}
}

func TestRetypeRequiresKnownCloser(t *testing.T) {
	m := NewMatcher(MustTable(map[string]string{"(": ")"}))
	buf := buffer.NewSnapshot("]")

	if a := m.OnInsert(buf, 0, "]"); a.Kind != PassThrough {
		t.Errorf("kind = %v, want PassThrough for unconfigured closer", a.Kind)
	}
}

func TestBackspaceDeletesPair(t *testing.T) {
	m := NewMatcher(DefaultTable())
	buf := buffer.NewBufferFromString("()")

	action := m.OnBackspace(buf, cursor.NewCursorSelection(1))
	if action.Kind != DeleteRange {
		t.Fatalf("kind = %v, want DeleteRange", action.Kind)
	}
	if action.Edit.Range != buffer.NewRange(0, 2) {
		t.Errorf("range = %v, want [0:2)", action.Edit.Range)
	}

	caret, err := action.Apply(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "" {
		t.Errorf("buffer = %q, want empty", buf.Text())
	}
	if caret != 0 {
		t.Errorf("caret = %d, want 0", caret)
	}
}

func TestBackspacePassThrough(t *testing.T) {
	m := NewMatcher(DefaultTable())

	tests := []struct {
		name string
		text string
		sel  cursor.Selection
	}{
		{"next char is not the closer", "(x", cursor.NewCursorSelection(2)},
		{"non adjacent pair", "(x)", cursor.NewCursorSelection(2)},
		{"caret at start", "()", cursor.NewCursorSelection(0)},
		{"caret at end", "(", cursor.NewCursorSelection(1)},
		{"wrong closer", "(]", cursor.NewCursorSelection(1)},
		{"closer before opener", ")(", cursor.NewCursorSelection(1)},
		{"selection not collapsed", "()", cursor.NewSelection(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := m.OnBackspace(buffer.NewSnapshot(tt.text), tt.sel)
			if action.Kind != PassThrough {
				t.Errorf("kind = %v, want PassThrough", action.Kind)
			}
			if action.Handled() {
				t.Error("pass-through must not be handled")
			}
		})
	}
}

func TestBackspaceNonPairUsesDefault(t *testing.T) {
	m := NewMatcher(DefaultTable())
	buf := buffer.NewBufferFromString("(x")
	sel := cursor.NewCursorSelection(2)

	if a := m.OnBackspace(buf, sel); a.Handled() {
		t.Fatalf("unexpected action %v", a)
	}
	// Host default: delete one character before the caret.
	if err := buf.Delete(1, 2); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "(" {
		t.Errorf("buffer = %q, want %q", buf.Text(), "(")
	}
}

func TestMatcherWithSelfClosingQuote(t *testing.T) {
	m := NewMatcher(MustTable(map[string]string{"'": "'"}))
	buf := buffer.NewBuffer()

	caret, err := m.OnInsert(buf, 0, "'").Apply(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "''" || caret != 1 {
		t.Fatalf("after open: %q caret %d", buf.Text(), caret)
	}

	if _, err := buf.Insert(caret, "x"); err != nil {
		t.Fatal(err)
	}
	caret++

	action := m.OnInsert(buf, caret, "'")
	if action.Kind != MoveCaretPast || action.Caret != 3 {
		t.Errorf("retype quote: %v", action)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		PassThrough:   "pass-through",
		InsertPair:    "insert-pair",
		MoveCaretPast: "move-caret-past",
		DeleteRange:   "delete-range",
		Kind(99):      "unknown",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
