// Package buffer provides the text buffer the editor plugins operate on.
//
// Positions are character offsets: an Offset counts runes from the start of
// the buffer, not bytes. Lines are split on '\n' and numbered from 0
// internally; callers that present 1-based line numbers convert at their
// own boundary.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Delete(0, 7)            // "Beautiful World!"
//
//	snap := buf.Snapshot()
//	first := snap.LineText(0)
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Edits never modify the
// backing slice in place, so a Snapshot shares storage with the buffer and
// stays valid after later edits.
package buffer
