package validator

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/reqguard/pkg/value"
)

// Input carries the sanitized request values to validate.
// A nil field is validated as JSON null.
type Input struct {
	Body   value.Value
	Query  value.Value
	Params value.Value
}

func (in Input) get(loc Location) value.Value {
	var v value.Value
	switch loc {
	case LocationBody:
		v = in.Body
	case LocationQuery:
		v = in.Query
	case LocationParams:
		v = in.Params
	}
	if v == nil {
		return value.Null{}
	}
	return v
}

// Outcome is the result of a dispatch. A failed outcome names the first
// failing location and every error reported for it.
type Outcome struct {
	Location Location
	Errors   ValidationErrors
}

// Passed reports whether every bound location validated.
func (o Outcome) Passed() bool {
	return o.Location == ""
}

// Err returns nil for a passing outcome and a *LocationError otherwise.
func (o Outcome) Err() error {
	if o.Passed() {
		return nil
	}
	return &LocationError{Location: o.Location, Errors: o.Errors}
}

// FailureMessage is the error text of the failure response body.
const FailureMessage = "Invalid request"

// Failure is the JSON body returned to clients for a failed outcome.
type Failure struct {
	Error    string           `json:"error"`
	Location Location         `json:"location"`
	Details  ValidationErrors `json:"details"`
}

// Failure returns the response body for a failed outcome, or nil when it passed.
func (o Outcome) Failure() *Failure {
	if o.Passed() {
		return nil
	}
	details := o.Errors
	if details == nil {
		details = ValidationErrors{}
	}
	return &Failure{
		Error:    FailureMessage,
		Location: o.Location,
		Details:  details,
	}
}

// Dispatcher validates request locations against schemas compiled once at
// construction. It is immutable and safe for concurrent use.
type Dispatcher struct {
	schemas [len(locations)]Schema
}

// NewDispatcher compiles every schema present in s with c.
// Compilation failures are joined into one error wrapping ErrSchemaCompile
// that names each failing location.
func NewDispatcher(c Compiler, s Schemas) (*Dispatcher, error) {
	d := &Dispatcher{}

	var errs []error
	for i, loc := range locations {
		doc := s.get(loc)
		if doc == nil {
			continue
		}
		if c == nil {
			return nil, ErrNilCompiler
		}

		schema, err := c.Compile(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s schema: %w", loc, err))
			continue
		}
		d.schemas[i] = schema
	}

	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrSchemaCompile}, errs...)...)
	}

	return d, nil
}

// MustNewDispatcher is like NewDispatcher but panics on error.
func MustNewDispatcher(c Compiler, s Schemas) *Dispatcher {
	d, err := NewDispatcher(c, s)
	if err != nil {
		panic(err)
	}
	return d
}

// Bound reports whether a schema is attached to loc.
func (d *Dispatcher) Bound(loc Location) bool {
	for i, l := range locations {
		if l == loc {
			return d.schemas[i] != nil
		}
	}
	return false
}

// Dispatch validates body, query and params in that order, skipping locations
// without a schema. It stops at the first failing location and returns all of
// its errors in the order the engine reported them.
func (d *Dispatcher) Dispatch(in Input) Outcome {
	for i, loc := range locations {
		schema := d.schemas[i]
		if schema == nil {
			continue
		}

		res := schema.Validate(in.get(loc))
		if !res.Valid {
			return Outcome{
				Location: loc,
				Errors:   FormatErrors(res.Errors),
			}
		}
	}

	return Outcome{}
}
