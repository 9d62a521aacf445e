// Package history provides undo/redo for a text area.
//
// Every applied edit is recorded as an Operation holding the replaced range,
// the old and new text, and the selection before and after:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//	h.Push(history.NewOperation(res, inserted, before, after))
//
//	sel, err := h.Undo(buf) // restores the text and returns the selection
//	sel, err = h.Redo(buf)
//
// Consecutive single character insertions made while typing merge into one
// entry, so one undo removes a typed word rather than a letter.
package history
