package location

import (
	"errors"
	"fmt"
)

// Resolution and query errors.
var (
	// ErrOutOfRange is returned when a line or column lies outside the buffer.
	ErrOutOfRange = errors.New("position out of range")

	// ErrLineOutOfRange is returned for line < 1 or line > line count.
	ErrLineOutOfRange = fmt.Errorf("line %w", ErrOutOfRange)

	// ErrColumnOutOfRange is returned when a column exceeds the line length.
	ErrColumnOutOfRange = fmt.Errorf("column %w", ErrOutOfRange)

	// ErrMalformedQuery is returned when query text is not "line[:column]".
	ErrMalformedQuery = errors.New("malformed go-to-line query")
)
