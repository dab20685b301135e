// Implements the bidirectional mapping between sim.Value (the JSON object
// model) and gopher-lua's LValue model. A Lua table is classified as an
// array iff its integer keys form a contiguous 1..n prefix with no other
// keys; otherwise it is an object, with numeric keys written as strings.
// Lua has a single number type, so a whole-valued float comes back as an
// integer.

package script

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/vivarium-sim/vivarium/sim"
)

// toLua converts a Value into a gopher-lua value. Acyclic by construction:
// sim.Value has no pointer-based self-reference, so this direction cannot
// fail on a cycle.
func toLua(L *lua.LState, v sim.Value) (lua.LValue, error) {
	switch v.Kind {
	case sim.ValueKindNull:
		return lua.LNil, nil
	case sim.ValueKindString:
		return lua.LString(v.Str), nil
	case sim.ValueKindInt:
		return lua.LNumber(v.Int), nil
	case sim.ValueKindFloat:
		return lua.LNumber(v.Float), nil
	case sim.ValueKindBool:
		return lua.LBool(v.Bool), nil
	case sim.ValueKindArray:
		tbl := L.NewTable()
		for i, elem := range v.Array {
			lv, err := toLua(L, elem)
			if err != nil {
				return nil, err
			}
			tbl.RawSetInt(i+1, lv)
		}
		return tbl, nil
	case sim.ValueKindObject:
		tbl := L.NewTable()
		for _, k := range sortedKeys(v.Object) {
			lv, err := toLua(L, v.Object[k])
			if err != nil {
				return nil, err
			}
			tbl.RawSetString(k, lv)
		}
		return tbl, nil
	}
	return lua.LNil, nil
}

// fromLua converts a gopher-lua value back into the JSON object model.
func fromLua(lv lua.LValue) (sim.Value, error) {
	return fromLuaVisit(lv, map[*lua.LTable]bool{})
}

func fromLuaVisit(lv lua.LValue, visiting map[*lua.LTable]bool) (sim.Value, error) {
	switch lv.Type() {
	case lua.LTNil:
		return sim.Null, nil
	case lua.LTString:
		return sim.NewString(string(lv.(lua.LString))), nil
	case lua.LTNumber:
		f := float64(lv.(lua.LNumber))
		if f == float64(int64(f)) {
			return sim.NewInt(int64(f)), nil
		}
		return sim.NewFloat(f), nil
	case lua.LTBool:
		return sim.NewBool(bool(lv.(lua.LBool))), nil
	case lua.LTTable:
		return fromLuaTable(lv.(*lua.LTable), visiting)
	default:
		// functions, userdata, channels, threads have no JSON representation.
		return sim.Null, nil
	}
}

func fromLuaTable(t *lua.LTable, visiting map[*lua.LTable]bool) (sim.Value, error) {
	if visiting[t] {
		return sim.Value{}, sim.ErrValueCycle
	}
	visiting[t] = true
	defer delete(visiting, t)

	n := t.Len()
	totalKeys := 0
	t.ForEach(func(lua.LValue, lua.LValue) { totalKeys++ })

	if n > 0 && n == totalKeys {
		items := make([]sim.Value, 0, n)
		for i := 1; i <= n; i++ {
			elem, err := fromLuaVisit(t.RawGetInt(i), visiting)
			if err != nil {
				return sim.Value{}, err
			}
			items = append(items, elem)
		}
		return sim.NewArray(items), nil
	}

	fields := make(map[string]sim.Value, totalKeys)
	var walkErr error
	t.ForEach(func(k, v lua.LValue) {
		if walkErr != nil {
			return
		}
		var key string
		switch kk := k.(type) {
		case lua.LString:
			key = string(kk)
		case lua.LNumber:
			key = kk.String()
		default:
			walkErr = fmt.Errorf("script: table key %v of type %s cannot convert to object field", k, k.Type())
			return
		}
		elem, err := fromLuaVisit(v, visiting)
		if err != nil {
			walkErr = err
			return
		}
		fields[key] = elem
	})
	if walkErr != nil {
		return sim.Value{}, walkErr
	}
	return sim.NewObject(fields), nil
}

func sortedKeys(m map[string]sim.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
