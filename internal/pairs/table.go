package pairs

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"
)

// ErrInvalidPair is returned when a pair is not two single characters.
var ErrInvalidPair = errors.New("invalid delimiter pair")

// Table maps opening delimiters to closing delimiters.
// Each opener has exactly one closer; several openers may share a closer.
type Table struct {
	closers map[rune]rune
	// closerSet holds every rune that is the closer of some opener.
	closerSet map[rune]struct{}
}

// DefaultPairs is the table used when none is configured.
var DefaultPairs = map[string]string{
	"(":  ")",
	"[":  "]",
	"{":  "}",
	"\"": "\"",
}

// NewTable builds a Table from opener -> closer strings.
// Every key and value must be exactly one character.
func NewTable(pairs map[string]string) (Table, error) {
	t := Table{
		closers:   make(map[rune]rune, len(pairs)),
		closerSet: make(map[rune]struct{}, len(pairs)),
	}
	for open, shut := range pairs {
		o, err := single(open)
		if err != nil {
			return Table{}, fmt.Errorf("opener %q: %w", open, err)
		}
		c, err := single(shut)
		if err != nil {
			return Table{}, fmt.Errorf("closer %q for %q: %w", shut, open, err)
		}
		t.closers[o] = c
		t.closerSet[c] = struct{}{}
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
// Use only for literal tables in initialization code.
func MustTable(pairs map[string]string) Table {
	t, err := NewTable(pairs)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns a Table built from DefaultPairs.
func DefaultTable() Table {
	return MustTable(DefaultPairs)
}

func single(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, ErrInvalidPair
	}
	return r, nil
}

// Closer returns the closer for opener.
func (t Table) Closer(opener rune) (rune, bool) {
	c, ok := t.closers[opener]
	return c, ok
}

// IsOpener reports whether r opens a pair.
func (t Table) IsOpener(r rune) bool {
	_, ok := t.closers[r]
	return ok
}

// IsCloser reports whether r closes some pair.
func (t Table) IsCloser(r rune) bool {
	_, ok := t.closerSet[r]
	return ok
}

// Len returns the number of pairs.
func (t Table) Len() int {
	return len(t.closers)
}

// With returns a copy of t with opener mapped to closer.
func (t Table) With(opener, closer rune) Table {
	m := t.Map()
	m[string(opener)] = string(closer)
	return MustTable(m)
}

// Without returns a copy of t with opener removed.
func (t Table) Without(opener rune) Table {
	m := t.Map()
	delete(m, string(opener))
	return MustTable(m)
}

// Map returns the table as opener -> closer strings.
func (t Table) Map() map[string]string {
	m := make(map[string]string, len(t.closers))
	for o, c := range t.closers {
		m[string(o)] = string(c)
	}
	return m
}

// Openers returns the openers in sorted order.
func (t Table) Openers() []rune {
	return slices.Sorted(maps.Keys(t.closers))
}
