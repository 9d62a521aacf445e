package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/pairs"
	"github.com/dshills/caretkit/internal/plugin"
	"github.com/dshills/caretkit/internal/plugin/autoclose"
	"github.com/dshills/caretkit/internal/plugin/gotoline"
)

// CaretModule is the name scripts pass to require.
const CaretModule = "caret"

// Bindings are the objects the caret module operates on. Functions whose
// target is nil raise ErrNotBound when called.
type Bindings struct {
	Host      plugin.Host
	AutoClose *autoclose.Plugin
	GoToLine  *gotoline.Plugin
}

// OpenCaret makes the caret module available to require. Calling it
// again rebinds the module for scripts that require it afterwards.
func (s *State) OpenCaret(b Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	c := &caret{b: b}
	s.L.PreloadModule(CaretModule, func(L *lua.LState) int {
		mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
			"text":          c.text,
			"selection":     c.selection,
			"set_selection": c.setSelection,
			"go_to":         c.goTo,
			"goto":          c.goTo,
			"prompt":        c.prompt,
			"pair":          c.pair,
			"unpair":        c.unpair,
			"pairs":         c.pairs,
			"set_pairs":     c.setPairs,
			"goto_chord":    c.gotoChord,
		})
		L.Push(mod)
		return 1
	})
	if loaded, ok := s.L.GetField(s.L.GetGlobal("package"), "loaded").(*lua.LTable); ok {
		loaded.RawSetString(CaretModule, lua.LNil)
	}
}

type caret struct {
	b Bindings
}

func (c *caret) host(L *lua.LState) plugin.Host {
	if c.b.Host == nil {
		L.RaiseError("%s: host", ErrNotBound)
	}
	return c.b.Host
}

func (c *caret) autoClose(L *lua.LState) *autoclose.Plugin {
	if c.b.AutoClose == nil {
		L.RaiseError("%s: %s", ErrNotBound, autoclose.Name)
	}
	return c.b.AutoClose
}

func (c *caret) goToLine(L *lua.LState) *gotoline.Plugin {
	if c.b.GoToLine == nil {
		L.RaiseError("%s: %s", ErrNotBound, gotoline.Name)
	}
	return c.b.GoToLine
}

// text() -> string
func (c *caret) text(L *lua.LState) int {
	L.Push(lua.LString(c.host(L).Snapshot().Text()))
	return 1
}

// selection() -> anchor, head as 0-based character offsets
func (c *caret) selection(L *lua.LState) int {
	sel := c.host(L).Selection()
	L.Push(lua.LNumber(sel.Anchor))
	L.Push(lua.LNumber(sel.Head))
	return 2
}

// set_selection(anchor[, head]); a missing head collapses the selection.
func (c *caret) setSelection(L *lua.LState) int {
	anchor := L.CheckInt(1)
	head := L.OptInt(2, anchor)
	c.host(L).SetSelection(cursor.NewSelection(anchor, head))
	return 0
}

// go_to(line[, column]) -> bool. Column 0 or omitted selects the first
// non-whitespace character.
func (c *caret) goTo(L *lua.LState) int {
	line := L.CheckInt(1)
	column := L.OptInt(2, 0)
	ok := c.goToLine(L).GoTo(c.host(L), line, column)
	L.Push(lua.LBool(ok))
	return 1
}

// prompt() opens the go-to-line dialog.
func (c *caret) prompt(L *lua.LState) int {
	c.goToLine(L).ShowPrompt(c.host(L))
	return 0
}

// pair(open, close) adds or replaces a pair.
func (c *caret) pair(L *lua.LState) int {
	open := L.CheckString(1)
	shut := L.CheckString(2)
	ac := c.autoClose(L)

	m := ac.Table().Map()
	m[open] = shut
	c.replaceTable(L, ac, m)
	return 0
}

// unpair(open) removes a pair; unknown openers are ignored.
func (c *caret) unpair(L *lua.LState) int {
	open := L.CheckString(1)
	ac := c.autoClose(L)

	m := ac.Table().Map()
	if _, ok := m[open]; !ok {
		return 0
	}
	delete(m, open)
	c.replaceTable(L, ac, m)
	return 0
}

// pairs() -> {open = close, ...}
func (c *caret) pairs(L *lua.LState) int {
	L.Push(stringMapToTable(L, c.autoClose(L).Table().Map()))
	return 1
}

// set_pairs(tbl) replaces the whole table.
func (c *caret) setPairs(L *lua.LState) int {
	tbl := L.CheckTable(1)
	ac := c.autoClose(L)

	m, err := tableToStringMap(tbl)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	c.replaceTable(L, ac, m)
	return 0
}

func (c *caret) replaceTable(L *lua.LState, ac *autoclose.Plugin, m map[string]string) {
	t, err := pairs.NewTable(m)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return
	}
	ac.SetTable(t)
}

// goto_chord(spec[, enabled]) rebinds the dialog chord; goto_chord(false)
// disables it.
func (c *caret) gotoChord(L *lua.LState) int {
	gl := c.goToLine(L)

	if b, ok := L.Get(1).(lua.LBool); ok {
		gl.SetChordEnabled(bool(b))
		return 0
	}

	spec := L.CheckString(1)
	if err := gl.SetChord(spec); err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	gl.SetChordEnabled(L.OptBool(2, true))
	return 0
}
