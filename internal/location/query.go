package location

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/caretkit/internal/engine/buffer"
)

var queryPattern = regexp.MustCompile(`^[0-9]*(:[0-9]*)?$`)

// Query is a parsed "line[:column]" go-to-line request.
type Query struct {
	Line      int
	Column    int  // 0 when absent or empty
	HasColumn bool // a ':' was present
	Empty     bool // the query text was empty
}

// ParseQuery parses go-to-line input text.
//
//	""      -> empty query
//	"12"    -> line 12, column 0
//	"12:5"  -> line 12, column 5
//	"12:"   -> line 12, column 0
//
// Anything not matching ^[0-9]*(:[0-9]*)?$ is ErrMalformedQuery.
// Empty digit runs parse as 0.
func ParseQuery(text string) (Query, error) {
	if text == "" {
		return Query{Empty: true}, nil
	}
	if !queryPattern.MatchString(text) {
		return Query{}, fmt.Errorf("%w: %q", ErrMalformedQuery, text)
	}

	linePart, colPart, hasColumn := strings.Cut(text, ":")
	line, err := atoi(linePart)
	if err != nil {
		return Query{}, fmt.Errorf("%w: line: %v", ErrMalformedQuery, err)
	}
	col, err := atoi(colPart)
	if err != nil {
		return Query{}, fmt.Errorf("%w: column: %v", ErrMalformedQuery, err)
	}
	return Query{Line: line, Column: col, HasColumn: hasColumn}, nil
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Validate checks the query against buf: the line must exist and an
// explicit column must not exceed the line's length. An empty query is
// always valid.
func (q Query) Validate(buf buffer.Reader) error {
	if q.Empty {
		return nil
	}
	if q.Line < 1 || q.Line > buf.LineCount() {
		return fmt.Errorf("%w: %d of %d", ErrLineOutOfRange, q.Line, buf.LineCount())
	}
	if q.HasColumn {
		if n := buf.LineLen(q.Line - 1); q.Column > n {
			return fmt.Errorf("%w: %d exceeds line %d length %d", ErrColumnOutOfRange, q.Column, q.Line, n)
		}
	}
	return nil
}

// Resolve resolves the query against buf.
func (q Query) Resolve(buf buffer.Reader, m Metrics) (Location, error) {
	if q.Empty {
		return Location{}, fmt.Errorf("%w: empty query", ErrLineOutOfRange)
	}
	return Resolve(buf, q.Line, q.Column, m)
}

// String formats the query back to its text form.
func (q Query) String() string {
	switch {
	case q.Empty:
		return ""
	case q.HasColumn:
		return fmt.Sprintf("%d:%d", q.Line, q.Column)
	default:
		return strconv.Itoa(q.Line)
	}
}
