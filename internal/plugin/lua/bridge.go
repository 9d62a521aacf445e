package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// stringMapToTable converts m to a Lua table with string keys and values.
func stringMapToTable(L *lua.LState, m map[string]string) *lua.LTable {
	t := L.CreateTable(0, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.RawSetString(k, lua.LString(m[k]))
	}
	return t
}

// tableToStringMap converts a Lua table whose keys and values are all
// strings. Any other entry is an error naming the offending key.
func tableToStringMap(t *lua.LTable) (map[string]string, error) {
	m := make(map[string]string)
	var err error
	t.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		ks, ok := k.(lua.LString)
		if !ok {
			err = fmt.Errorf("key %s: expected string, got %s", k.String(), k.Type())
			return
		}
		vs, ok := v.(lua.LString)
		if !ok {
			err = fmt.Errorf("key %q: expected string, got %s", string(ks), v.Type())
			return
		}
		m[string(ks)] = string(vs)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
