// Package requestid attaches a correlation id to every HTTP request.
//
// The middleware reuses a client-supplied X-Request-ID header when it is a
// short token of letters, digits, '-' and '_' (after trimming and removing
// line breaks) and generates a UUIDv4 otherwise. The id is stored in the
// request context and echoed in the response header.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// The package does not return errors: invalid ids are replaced silently.
package requestid
