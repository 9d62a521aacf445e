package location

import (
	"fmt"
	"unicode"

	"github.com/dshills/caretkit/internal/engine/buffer"
)

// ContextLines is how many lines are kept visible above the target line.
const ContextLines = 3

// Metrics are the text metrics of the rendering surface, in the same unit
// as the viewport scroll offset (pixels in a browser, cells in a terminal).
type Metrics struct {
	FontSize   float64
	LineHeight float64
}

// Location is a resolved go-to-line target.
type Location struct {
	Line         int // 1-based line that was resolved
	Column       int // 1-based column, or 0 for "first non-whitespace"
	Offset       buffer.Offset
	ScrollOffset float64
}

// String returns a human-readable representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d@%d scroll=%g", l.Line, l.Column, l.Offset, l.ScrollOffset)
}

// Resolve computes the offset of line:column in buf and the scroll offset
// that shows it with ContextLines lines of leading context.
//
// line is 1-based. column is 1-based, with 0 selecting the first
// non-whitespace character; on a line made only of whitespace that is the
// end of the line. Resolve fails closed: on error the Location is zero.
func Resolve(buf buffer.Reader, line, column int, m Metrics) (Location, error) {
	if line < 1 || line > buf.LineCount() {
		return Location{}, fmt.Errorf("%w: %d of %d", ErrLineOutOfRange, line, buf.LineCount())
	}
	if column < 0 {
		return Location{}, fmt.Errorf("%w: %d", ErrColumnOutOfRange, column)
	}

	idx := line - 1
	start := buf.LineStart(idx)
	n := buf.LineLen(idx)

	var offset buffer.Offset
	if column == 0 {
		offset = firstNonSpace(buf, start, start+n)
	} else {
		if column > n {
			return Location{}, fmt.Errorf("%w: %d exceeds line %d length %d", ErrColumnOutOfRange, column, line, n)
		}
		offset = start + column - 1
	}

	return Location{
		Line:         line,
		Column:       column,
		Offset:       offset,
		ScrollOffset: ScrollOffset(line, m),
	}, nil
}

// firstNonSpace scans [start, end) and returns the first offset holding a
// non-whitespace character, or end when there is none.
func firstNonSpace(buf buffer.Reader, start, end buffer.Offset) buffer.Offset {
	for off := start; off < end; off++ {
		r, ok := buf.RuneAt(off)
		if !ok || !unicode.IsSpace(r) {
			return off
		}
	}
	return end
}

// ScrollOffset returns the vertical scroll position for a 1-based line:
// max(1, line-ContextLines) lines down, less half the line's vertical
// padding so the text sits centred in its line box.
func ScrollOffset(line int, m Metrics) float64 {
	top := max(1, line-ContextLines)
	return float64(top)*m.LineHeight - (m.LineHeight-m.FontSize)/2
}
