package validator

import "fmt"

// Location names the part of a request a schema applies to.
type Location string

const (
	LocationBody   Location = "body"
	LocationQuery  Location = "query"
	LocationParams Location = "params"
)

// locations is the fixed dispatch order.
var locations = [...]Location{LocationBody, LocationQuery, LocationParams}

// Locations returns every location in dispatch order.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations[:])
	return out
}

// ParseLocation converts a location name into a Location.
func ParseLocation(s string) (Location, error) {
	for _, loc := range locations {
		if string(loc) == s {
			return loc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocation, s)
}

func (l Location) String() string { return string(l) }

// Schemas holds an optional JSON Schema document per location. A nil field
// leaves the location unvalidated.
type Schemas struct {
	Body   any `json:"body,omitempty" yaml:"body,omitempty"`
	Query  any `json:"query,omitempty" yaml:"query,omitempty"`
	Params any `json:"params,omitempty" yaml:"params,omitempty"`
}

func (s Schemas) get(loc Location) any {
	switch loc {
	case LocationBody:
		return s.Body
	case LocationQuery:
		return s.Query
	case LocationParams:
		return s.Params
	default:
		return nil
	}
}

// Compiler turns a schema document into a reusable Schema.
type Compiler interface {
	Compile(schema any) (Schema, error)
}

// Schema validates instance data. Implementations must be safe for concurrent use.
type Schema interface {
	Validate(data any) Result
}

// Result is the outcome of validating one value against one Schema.
type Result struct {
	Valid  bool
	Errors []RawError
}

// RawError is a single engine error before formatting.
// InstancePath is a JSON pointer; the empty string denotes the root value.
type RawError struct {
	InstancePath string
	Message      string
	Keyword      string
	Params       map[string]any
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(schema any) (Schema, error)

func (f CompilerFunc) Compile(schema any) (Schema, error) { return f(schema) }

// SchemaFunc adapts a function to the Schema interface.
type SchemaFunc func(data any) Result

func (f SchemaFunc) Validate(data any) Result { return f(data) }
