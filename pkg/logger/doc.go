// Package logger builds *slog.Logger values from functional options and
// provides attribute constructors with consistent keys.
//
// New picks a text or JSON handler, attaches static attributes, and wraps the
// handler so that registered ContextExtractor callbacks add request-scoped
// attributes (such as a request id) to every record.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "mesto"),
//		logger.WithContextExtractors(requestid.Extractor),
//	)
//	log.ErrorContext(ctx, "request failed", logger.Operation("add card"), logger.Error(err))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check.
package logger
