package value

import "errors"

var (
	// ErrInvalidJSON is returned when the input is not a valid JSON document.
	ErrInvalidJSON = errors.New("invalid JSON document")

	// ErrTrailingData is returned when a JSON document is followed by more data.
	ErrTrailingData = errors.New("unexpected data after JSON document")

	// ErrInvalidYAML is returned when the input is not a valid YAML document.
	ErrInvalidYAML = errors.New("invalid YAML document")

	// ErrUnsupportedKey is returned for YAML mapping keys that are not scalars.
	ErrUnsupportedKey = errors.New("unsupported mapping key")
)
