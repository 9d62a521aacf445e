package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent returns a press of the character r.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent returns a press of a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified reports whether a command modifier is held. Shift alone does
// not count for character presses since it is folded into the rune.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers.Without(ModShift) != ModNone
	}
	return e.Modifiers != ModNone
}

// IsChar reports whether e would insert a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// Is reports whether e is an unmodified press of k.
func (e Event) Is(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// Matches reports whether e is a press of chord. Shift is ignored for
// character presses, and letters compare case-insensitively when a command
// modifier is held, so a terminal's Ctrl+g matches "Ctrl+G".
func (e Event) Matches(chord Event) bool {
	if e.Key != chord.Key {
		return false
	}
	if e.Key != KeyRune {
		return e.Modifiers == chord.Modifiers
	}
	if e.Modifiers.Without(ModShift) != chord.Modifiers.Without(ModShift) {
		return false
	}
	if e.IsModified() {
		return unicode.ToLower(e.Rune) == unicode.ToLower(chord.Rune)
	}
	return e.Rune == chord.Rune
}

// String renders e in modifier style, e.g. "Ctrl+G", "Enter", "a".
func (e Event) String() string {
	mods := e.Modifiers
	var name string
	switch {
	case e.IsRune():
		mods = mods.Without(ModShift)
		switch {
		case e.Rune == ' ':
			name = "Space"
		case mods != ModNone:
			name = string(unicode.ToUpper(e.Rune))
		default:
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}
	if mods == ModNone {
		return name
	}
	return strings.Join([]string{mods.String(), name}, "+")
}
