package value

import (
	"encoding/json"
	"reflect"
	"slices"
)

// FromAny converts plain Go data, as produced by encoding/json or yaml.v3
// unmarshalling into `any`, into a Value.
//
// Go maps carry no order, so map keys are sorted to keep the result
// deterministic. Values that are neither containers, strings nor nil are
// wrapped as scalars untouched.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case string:
		return String(t)
	case []any:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = FromAny(item)
		}
		return seq
	case []string:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = String(item)
		}
		return seq
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, FromAny(t[k]))
		}
		return m
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, String(t[k]))
		}
		return m
	default:
		return Scalar{raw: v}
	}
}

// ToAny converts a Value into plain Go data: *Map becomes map[string]any,
// Sequence becomes []any, String becomes string and Null becomes nil.
func ToAny(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(t)
	case Scalar:
		return t.raw
	case Sequence:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToAny(item)
		}
		return out
	case *Map:
		out := make(map[string]any, t.Len())
		t.Range(func(k string, item Value) bool {
			out[k] = ToAny(item)
			return true
		})
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same tree, including map key order.
// Numbers compare by their literal text.
func Equal(a, b Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch x := a.(type) {
	case nil, Null:
		return true
	case String:
		return x == b.(String)
	case Scalar:
		y := b.(Scalar)
		xn, xok := x.raw.(json.Number)
		yn, yok := y.raw.(json.Number)
		if xok && yok {
			return xn == yn
		}
		return reflect.DeepEqual(x.raw, y.raw)
	case Sequence:
		y := b.(Sequence)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Map:
		y := b.(*Map)
		if x.Len() != y.Len() {
			return false
		}
		xe, ye := x.Entries(), y.Entries()
		for i := range xe {
			if xe[i].Key != ye[i].Key || !Equal(xe[i].Value, ye[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
