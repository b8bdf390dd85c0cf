// Package validator checks sanitized request values against JSON Schemas,
// one optional schema per request location (body, query and params).
//
// Schemas are compiled once by a Compiler when the Dispatcher is built. A
// schema that does not compile is a programming error: NewDispatcher returns
// an error wrapping ErrSchemaCompile and MustNewDispatcher panics. Per-request
// failures are never errors; Dispatch returns an Outcome instead.
//
// # Dispatch rules
//
// Locations are visited in the fixed order Body, Query, Params. Locations
// without a schema are skipped. Dispatch stops at the first location that
// fails and reports every error the engine produced for it, in engine order.
//
// # Usage
//
//	schemas, err := validator.LoadSchemas("schemas.yaml")
//	if err != nil {
//	    return err
//	}
//
//	d, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), schemas)
//	if err != nil {
//	    return err
//	}
//
//	out := d.Dispatch(validator.Input{Body: body, Query: query})
//	if !out.Passed() {
//	    render(http.StatusBadRequest, out.Failure())
//	}
//
// # Errors
//
// Each failure is a ValidationError whose Field is a JSON pointer such as
// "/items/0/name", or RootField when the error concerns the value as a whole
// (for example a missing required property). TranslationKey holds
// "validation.<keyword>" and TranslationValues the keyword parameters, so
// messages can be localised. ValidationErrors implements error and can be
// recovered from Outcome.Err with ExtractValidationErrors.
//
// The bundled JSONSchemaCompiler is backed by github.com/xeipuuv/gojsonschema.
// Any other engine can be plugged in through the Compiler and Schema
// interfaces.
package validator
