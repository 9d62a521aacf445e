// Package cursor provides the selection model used by the host widget and
// the plugins.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current caret position (where typing would occur)
//
// When Anchor == Head the selection is collapsed: a caret with no selected
// text. Start and End always return the normalized bounds.
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
