package validator

import "errors"

var (
	// ErrSchemaCompile is returned when a schema document cannot be compiled.
	// It is a setup-time error and should abort initialisation.
	ErrSchemaCompile = errors.New("schema compilation failed")

	// ErrUnknownKeyword is returned when a schema uses a keyword its draft does not define.
	ErrUnknownKeyword = errors.New("unknown schema keyword")

	// ErrNilCompiler is returned by NewDispatcher when schemas are given without a compiler.
	ErrNilCompiler = errors.New("schema compiler is required")

	// ErrInvalidSchemaDocument is returned when a schemas file cannot be decoded.
	ErrInvalidSchemaDocument = errors.New("invalid schemas document")

	// ErrUnknownLocation is returned when a location name is not body, query or params.
	ErrUnknownLocation = errors.New("unknown validation location")
)
