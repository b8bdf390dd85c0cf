package sanitizer

import "github.com/dmitrymomot/reqguard/pkg/value"

// Walk applies fn to every string leaf of v and returns the rewritten tree.
//
// Null and scalar nodes are returned as they are. Sequences keep their length
// and element order; maps keep their key set and key order. The input is not
// modified. Trees must not contain cycles, which holds for anything produced by
// decoding a request payload.
func Walk(v value.Value, fn func(string) string) value.Value {
	switch n := v.(type) {
	case value.String:
		return value.String(fn(string(n)))
	case value.Sequence:
		if n == nil {
			return n
		}
		out := make(value.Sequence, len(n))
		for i, item := range n {
			out[i] = Walk(item, fn)
		}
		return out
	case *value.Map:
		if n == nil {
			return n
		}
		out := value.NewMap()
		n.Range(func(key string, item value.Value) bool {
			out.Set(key, Walk(item, fn))
			return true
		})
		return out
	case value.Null, value.Scalar:
		return v
	default:
		return v
	}
}

// WalkAny applies fn to every string inside map[string]any and []any trees.
// Any other value, including typed slices, maps and structs, is returned as is.
func WalkAny(v any, fn func(string) string) any {
	switch t := v.(type) {
	case string:
		return fn(t)
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = WalkAny(item, fn)
		}
		return out
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = WalkAny(item, fn)
		}
		return out
	case value.Value:
		return Walk(t, fn)
	default:
		return v
	}
}
