package value

import "encoding/json"

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindString
	KindSequence
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a node of a structural tree.
// Implementations are Null, Scalar, String, Sequence and *Map; the set is closed.
type Value interface {
	Kind() Kind
	sealed()
}

// Null represents an explicit null.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) sealed()    {}

// Scalar holds a non-string leaf: a bool or a number.
type Scalar struct {
	raw any
}

// NewScalar wraps a bool or numeric value.
func NewScalar(v any) Scalar {
	return Scalar{raw: v}
}

// Number wraps a JSON number literal.
func Number(n string) Scalar {
	return Scalar{raw: json.Number(n)}
}

// Bool wraps a boolean.
func Bool(b bool) Scalar {
	return Scalar{raw: b}
}

// Any returns the wrapped Go value.
func (s Scalar) Any() any { return s.raw }

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) sealed()    {}

// String is a string leaf.
type String string

func (String) Kind() Kind { return KindString }
func (String) sealed()    {}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) sealed()    {}

// KindOf returns the kind of v, treating a nil interface as Null.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}
