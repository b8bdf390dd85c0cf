// Package logger builds *slog.Logger instances for reqguard binaries and
// middleware.
//
// New returns a logger configured by Option functions: output format (text or
// json), minimum level, static attributes, ContextExtractor callbacks that pull
// request-scoped values such as the request id out of context.Context, and an
// optional value sanitizer applied to messages and string attributes.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "reqguard"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	    logger.WithValueSanitizer(sanitizer.RemoveCRLF),
//	)
//
//	log.WarnContext(ctx, "request validation failed",
//	    logger.Location("body"),
//	    logger.ErrorCount(len(errs)),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check.
package logger
