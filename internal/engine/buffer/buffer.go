package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style used when the buffer is written out.
// Text inside the buffer always uses '\n'.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is an editable text buffer addressed by character offsets.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	content    content
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		content:    newContent(""),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.content = newContent(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
// The line ending style is detected from the content.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	text := string(data)
	opts = append([]Option{WithDetectedLineEnding(text)}, opts...)
	return NewBufferFromString(text, opts...), nil
}

// ErrInvalidUTF8 is returned when reader content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.text()
}

// TextRange returns text in the given range.
func (b *Buffer) TextRange(start, end Offset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 || start > end || end > b.content.length() {
		return "", ErrRangeInvalid
	}
	return b.content.slice(start, end), nil
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.length()
}

// RuneAt returns the character at offset; false when offset is outside the buffer.
func (b *Buffer) RuneAt(offset Offset) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.runeAt(offset)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineCount()
}

// LineText returns the text of a 0-based line without its newline.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineText(line)
}

// LineStart returns the offset of the first character of a 0-based line.
func (b *Buffer) LineStart(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineStart(line)
}

// LineLen returns the number of characters in a 0-based line, excluding the newline.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineLen(line)
}

// OffsetToPoint converts an offset to a line/column point.
func (b *Buffer) OffsetToPoint(offset Offset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.offsetToPoint(offset)
}

// PointToOffset converts a line/column point to an offset, clamping the
// column to the line.
func (b *Buffer) PointToOffset(p Point) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.pointToOffset(p)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the offset just past the inserted text.
func (b *Buffer) Insert(offset Offset, text string) (Offset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		if errors.Is(err, ErrRangeInvalid) {
			return 0, ErrOffsetOutOfRange
		}
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end Offset) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces text in the given range.
// Returns the offset just past the replacement text.
func (b *Buffer) Replace(start, end Offset, text string) (Offset, error) {
	res, err := b.ApplyEdit(NewEdit(NewRange(start, end), text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := edit.Range
	if r.Start < 0 || r.Start > r.End || r.End > b.content.length() {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.content.slice(r.Start, r.End)
	text := normalizeLineEndings(edit.NewText)
	b.content = b.content.replace(r.Start, r.End, text)
	b.revisionID = NewRevisionID()

	n := utf8.RuneCountInString(text)
	return EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: r.Start + n},
		OldText:  oldText,
		Delta:    n - r.Len(),
	}, nil
}

// SetText replaces the whole buffer content.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = newContent(normalizeLineEndings(s))
	b.revisionID = NewRevisionID()
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.length() == 0
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// WriteTo writes the buffer content using the buffer's line ending style.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	text := b.content.text()
	le := b.lineEnding
	b.mu.RUnlock()

	if le != LineEndingLF {
		text = strings.ReplaceAll(text, "\n", le.Sequence())
	}
	n, err := io.WriteString(w, text)
	return int64(n), err
}

// Snapshot returns a read-only view of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{
		content:    b.content,
		revisionID: b.revisionID,
	}
}
