package plugin

// State is the attachment state of a plugin on one host.
type State int

const (
	// StateDetached: the plugin has never been attached to the host.
	StateDetached State = iota

	// StateAttached: Attach succeeded and the plugin is live.
	StateAttached

	// StateError: Attach returned an error. The host may be left with
	// partial subscriptions; a retry is allowed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateAttached:
		return "attached"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
