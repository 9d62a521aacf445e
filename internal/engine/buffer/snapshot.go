package buffer

// Snapshot is a read-only view of a buffer at one revision.
// It does not change when the buffer is edited afterwards.
type Snapshot struct {
	content    content
	revisionID RevisionID
}

// NewSnapshot creates a standalone snapshot of s, mainly for tests and
// callers that have text but no Buffer.
func NewSnapshot(s string) *Snapshot {
	return &Snapshot{content: newContent(normalizeLineEndings(s)), revisionID: NewRevisionID()}
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string { return s.content.text() }

// Len returns the number of characters.
func (s *Snapshot) Len() int { return s.content.length() }

// RuneAt returns the character at offset; false when offset is outside the text.
func (s *Snapshot) RuneAt(offset Offset) (rune, bool) { return s.content.runeAt(offset) }

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int { return s.content.lineCount() }

// LineText returns the text of a 0-based line without its newline.
func (s *Snapshot) LineText(line int) string { return s.content.lineText(line) }

// LineStart returns the offset of the first character of a 0-based line.
func (s *Snapshot) LineStart(line int) Offset { return s.content.lineStart(line) }

// LineLen returns the number of characters in a 0-based line.
func (s *Snapshot) LineLen(line int) int { return s.content.lineLen(line) }

// OffsetToPoint converts an offset to a line/column point.
func (s *Snapshot) OffsetToPoint(offset Offset) Point { return s.content.offsetToPoint(offset) }

// PointToOffset converts a line/column point to an offset.
func (s *Snapshot) PointToOffset(p Point) Offset { return s.content.pointToOffset(p) }

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID { return s.revisionID }
