// Package guard connects the sanitizer and validator packages to net/http.
//
// A Carrier holds the three request locations as ordered value trees: the
// decoded JSON body, the query string and the chi route params. Sanitize
// cleans the carrier with a sanitizer.Pipeline and writes it back into the
// request; Validate runs a validator.Dispatcher over it and answers 400 with
// the failure body when a location does not match its schema.
//
//	p := sanitizer.NewPipeline(cfg.Sanitize)
//	d := validator.MustNewDispatcher(validator.NewJSONSchemaCompiler(), schemas)
//
//	r := chi.NewRouter()
//	r.With(
//		guard.Sanitize(p, guard.WithLogger(log)),
//		guard.Validate(d, guard.WithLogger(log)),
//	).Post("/items/{id}", handler)
//
// Bodies that are not JSON pass through untouched and are validated as null.
// Bodies over the size limit are answered with 413 and malformed JSON with 400.
package guard
