package buffer

// Reader is the read-only view of buffer content shared by Buffer and
// Snapshot. Components that only inspect text accept a Reader.
type Reader interface {
	Text() string
	Len() int
	RuneAt(offset Offset) (rune, bool)
	LineCount() int
	LineText(line int) string
	LineStart(line int) Offset
	LineLen(line int) int
}
