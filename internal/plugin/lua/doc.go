// Package lua runs user scripts against a host and its plugins.
//
// Scripts execute in a sandboxed gopher-lua state: the io, os and debug
// libraries are never opened, the loaders that read files or compile
// strings are removed, require only resolves whitelisted modules and print
// goes to the logger. Every top-level execution runs under a timeout.
//
// The caret module exposes the host and the plugins to scripts:
//
//	state, err := lua.NewState(lua.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	state.OpenCaret(lua.Bindings{Host: area, AutoClose: ac, GoToLine: gl})
//	if err := state.DoFile("init.lua"); err != nil {
//	    return err
//	}
//
// From Lua:
//
//	local caret = require("caret")
//	caret.pair("<", ">")
//	caret.unpair('"')
//	caret.goto_chord("Alt+L")
//	caret.go_to(10, 3)
//
// goto is a reserved word in the Lua grammar gopher-lua implements, so the
// jump function is exported as go_to and reachable as caret["goto"].
package lua
