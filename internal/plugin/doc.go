// Package plugin defines the contract between a text-area host and the
// behaviours attached to it.
//
// A Plugin has a single lifecycle hook, Attach, invoked once the host
// exists. Inside Attach a plugin subscribes to the host's before-input and
// key-down notifications and keeps whatever per-host state it needs.
// There is no global registry: hosts attach plugins explicitly, either
// directly or through a Manager that tracks which plugins are attached
// where.
//
//	area := host.NewTextArea(buf)
//	mgr := plugin.NewManager(logger)
//	if err := mgr.Attach(area, autoclose.New()); err != nil {
//		return err
//	}
//
// Notifications are delivered synchronously on the caller's goroutine. A
// listener that handles an event calls PreventDefault so the host skips its
// own default behaviour for it.
package plugin
