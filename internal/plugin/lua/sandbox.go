package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caretkit/internal/logging"
)

// removedGlobals load code from files or strings, or change function
// environments; none of them is reachable from scripts.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
	"getfenv",
	"setfenv",
	"newproxy",
	"_printregs",
}

// builtinModules may be required by name; they are already open.
var builtinModules = map[string]bool{
	"_G":        true,
	"string":    true,
	"table":     true,
	"math":      true,
	"coroutine": true,
}

// installSandbox strips L down to what scripts may use.
func installSandbox(L *lua.LState, logger *logging.Logger) {
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))

	installSafeRequire(L)
}

// installSafeRequire clears the search paths and replaces require with a
// version that resolves only built-in and preloaded modules.
func installSafeRequire(L *lua.LState) {
	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	L.SetField(pkg, "path", lua.LString(""))
	L.SetField(pkg, "cpath", lua.LString(""))
	L.SetField(pkg, "loadlib", lua.LNil)
	L.SetField(pkg, "seeall", lua.LNil)

	preload, _ := L.GetField(pkg, "preload").(*lua.LTable)
	original := L.GetGlobal("require")

	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)

		allowed := builtinModules[name]
		if !allowed && preload != nil {
			allowed = preload.RawGetString(name) != lua.LNil
		}
		if !allowed {
			L.RaiseError("module %q is not available", name)
			return 0
		}

		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
