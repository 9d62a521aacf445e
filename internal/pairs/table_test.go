package pairs

import (
	"errors"
	"slices"
	"testing"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable(map[string]string{"(": ")", "<": ">", "«": "»"})
	if err != nil {
		t.Fatalf("NewTable error = %v", err)
	}

	if c, ok := table.Closer('«'); !ok || c != '»' {
		t.Errorf("Closer('«') = %q, %v", c, ok)
	}
	if !table.IsOpener('<') || table.IsOpener('>') {
		t.Error("IsOpener mismatch")
	}
	if !table.IsCloser('>') || table.IsCloser('<') {
		t.Error("IsCloser mismatch")
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
}

func TestNewTableRejectsMultiCharacter(t *testing.T) {
	tests := []map[string]string{
		{"((": ")"},
		{"(": "))"},
		{"": ")"},
		{"(": ""},
	}
	for _, pairs := range tests {
		if _, err := NewTable(pairs); !errors.Is(err, ErrInvalidPair) {
			t.Errorf("NewTable(%v) error = %v, want ErrInvalidPair", pairs, err)
		}
	}
}

func TestTableSharedCloser(t *testing.T) {
	table := MustTable(map[string]string{"(": ")", "[": ")"})

	for _, o := range []rune{'(', '['} {
		if c, _ := table.Closer(o); c != ')' {
			t.Errorf("Closer(%q) = %q", o, c)
		}
	}
}

func TestTableWithWithout(t *testing.T) {
	base := DefaultTable()

	added := base.With('<', '>')
	if !added.IsOpener('<') {
		t.Error("With should add the pair")
	}
	if base.IsOpener('<') {
		t.Error("With must not modify the receiver")
	}

	removed := added.Without('"')
	if removed.IsOpener('"') || removed.IsCloser('"') {
		t.Error("Without should drop the opener and its closer")
	}
}

func TestTableOpenersSorted(t *testing.T) {
	got := DefaultTable().Openers()
	want := []rune{'"', '(', '[', '{'}
	if !slices.Equal(got, want) {
		t.Errorf("Openers() = %q, want %q", got, want)
	}
}
