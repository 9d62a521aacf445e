// Package location translates 1-based line/column addresses into buffer
// offsets and computes the viewport scroll that brings the target line
// into view.
//
// Column 0 is a sentinel meaning "first non-whitespace character of the
// line". Resolution is a pure function of its inputs: resolving the same
// address twice on an unmodified buffer yields the same Location.
package location
