// Package key describes key presses and the chord specifications used to
// bind them.
//
// Chords can be written in either of two notations:
//
//   - Modifier style: "Ctrl+G", "Alt+L", "Ctrl+Shift+P", "F5"
//   - Bracket style: "<C-g>", "<A-l>", "<CR>", "<Esc>"
//
// Parse turns a specification into an Event; Event.Matches compares a
// live press against a parsed chord.
package key
