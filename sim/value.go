// sim/value.go
package sim

import "sort"

// Value is the JSON object model used for message payloads, entity state, and
// snapshot content. It is a closed sum type; exactly one field class applies
// to any given Value, discriminated by Kind.
type Value struct {
	Kind ValueKind

	Object map[string]Value
	Array  []Value
	Str    string
	Int    int64
	Float  float64
	Bool   bool
}

// ValueKind discriminates the Value union.
type ValueKind int

const (
	ValueKindNull ValueKind = iota
	ValueKindObject
	ValueKindArray
	ValueKindString
	ValueKindInt
	ValueKindFloat
	ValueKindBool
)

// Null is the shared nil/absent value.
var Null = Value{Kind: ValueKindNull}

func NewObject(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{Kind: ValueKindObject, Object: fields}
}

func NewArray(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: ValueKindArray, Array: items}
}

func NewString(s string) Value { return Value{Kind: ValueKindString, Str: s} }
func NewInt(i int64) Value     { return Value{Kind: ValueKindInt, Int: i} }
func NewFloat(f float64) Value { return Value{Kind: ValueKindFloat, Float: f} }
func NewBool(b bool) Value     { return Value{Kind: ValueKindBool, Bool: b} }

// IsNull reports whether v is the null/absent value.
func (v Value) IsNull() bool { return v.Kind == ValueKindNull }

// Equal performs a deep structural comparison, used by snapshot round-trip tests.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueKindNull:
		return true
	case ValueKindString:
		return v.Str == other.Str
	case ValueKindInt:
		return v.Int == other.Int
	case ValueKindFloat:
		return v.Float == other.Float
	case ValueKindBool:
		return v.Bool == other.Bool
	case ValueKindArray:
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	case ValueKindObject:
		if len(v.Object) != len(other.Object) {
			return false
		}
		for k, vv := range v.Object {
			ov, ok := other.Object[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// objectKeysSorted returns an object's keys in deterministic order, used
// wherever object iteration must be stable (conversion, snapshotting).
func objectKeysSorted(o map[string]Value) []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToGo converts a Value into plain Go values (map[string]any, []any, string,
// int64, float64, bool, nil) suitable for yaml/json marshaling.
func (v Value) ToGo() any {
	switch v.Kind {
	case ValueKindNull:
		return nil
	case ValueKindString:
		return v.Str
	case ValueKindInt:
		return v.Int
	case ValueKindFloat:
		return v.Float
	case ValueKindBool:
		return v.Bool
	case ValueKindArray:
		out := make([]any, len(v.Array))
		for i, e := range v.Array {
			out[i] = e.ToGo()
		}
		return out
	case ValueKindObject:
		out := make(map[string]any, len(v.Object))
		for _, k := range objectKeysSorted(v.Object) {
			out[k] = v.Object[k].ToGo()
		}
		return out
	}
	return nil
}

// ValueFromGo converts plain Go values (as produced by yaml.v3 / encoding/json
// unmarshaling into `any`) into the Value model.
func ValueFromGo(in any) Value {
	switch t := in.(type) {
	case nil:
		return Null
	case Value:
		return t
	case string:
		return NewString(t)
	case bool:
		return NewBool(t)
	case int:
		return NewInt(int64(t))
	case int64:
		return NewInt(t)
	case float64:
		if t == float64(int64(t)) {
			return NewFloat(t) // preserve float kind; caller's schema decides int vs float
		}
		return NewFloat(t)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = ValueFromGo(e)
		}
		return NewArray(items)
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			fields[k] = ValueFromGo(e)
		}
		return NewObject(fields)
	case map[any]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			if ks, ok := k.(string); ok {
				fields[ks] = ValueFromGo(e)
			}
		}
		return NewObject(fields)
	default:
		return Null
	}
}
