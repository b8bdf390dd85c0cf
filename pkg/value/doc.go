// Package value models request-shaped data as a closed tagged variant.
//
// Deserialized request payloads are trees of objects, arrays and scalars. Instead
// of walking them as untyped `any` values, the package represents every node as
// one of exactly five kinds:
//
//   - Null      – JSON null / missing YAML value
//   - Scalar    – booleans and numbers (numbers are kept as json.Number)
//   - String    – a string leaf, the only node kind sanitizers rewrite
//   - Sequence  – an ordered list of values
//   - *Map      – an object whose key order is preserved
//
// The Value interface is sealed, so a type switch over these five types is
// exhaustive.
//
// # Decoding
//
// Go maps do not keep insertion order, which makes encoding/json unsuitable when
// the key order of a client payload must survive a round trip. Parse and Decode
// read JSON token by token and build ordered maps; DecodeYAML does the same for
// YAML documents using yaml.v3 nodes.
//
//	v, err := value.Parse([]byte(`{"b":1,"a":"x"}`))
//	if err != nil {
//	    return err
//	}
//	out, _ := value.Marshal(v) // {"b":1,"a":"x"}
//
// FromAny and ToAny convert between Value and plain Go data, for example to hand
// a tree to a schema validator.
//
// # Error Handling
//
// Decoding errors wrap ErrInvalidJSON, ErrInvalidYAML or ErrTrailingData and can
// be checked with errors.Is.
package value
