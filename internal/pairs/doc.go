// Package pairs decides how typed characters interact with delimiter pairs.
//
// A Matcher is configured with a Table mapping opening delimiters to closing
// delimiters. For each typed character or backspace it returns an Action
// describing what the host should do:
//
//   - InsertPair: an opener was typed; insert opener+closer and place the
//     caret between them.
//   - MoveCaretPast: the closer already to the right of the caret was
//     retyped; move over it instead of inserting a second one.
//   - DeleteRange: backspace between an opener and its closer removes both.
//   - PassThrough: nothing special; the host performs its default behaviour.
//
// Matching is purely positional over a flat buffer. It does not know about
// strings, comments or nesting.
package pairs
