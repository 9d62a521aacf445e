package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past the state's timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotBound is raised by caret functions whose target was not bound.
	ErrNotBound = errors.New("caret module not bound")
)
