package plugin

import "errors"

var (
	// ErrAlreadyAttached is returned when a plugin of the same name is
	// already attached to the host.
	ErrAlreadyAttached = errors.New("plugin already attached")

	// ErrAttachFailed wraps an error returned by a plugin's Attach hook.
	ErrAttachFailed = errors.New("plugin attach failed")

	ErrNilPlugin = errors.New("plugin is nil")
	ErrNilHost   = errors.New("host is nil")
)
