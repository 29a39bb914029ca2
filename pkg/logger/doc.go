// Package logger builds slog loggers with functional options and provides
// attribute helpers so log keys stay consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(os.Getenv("APP_ENV")), "toastd"),
//	    logger.WithContextExtractors(requestIDExtractor),
//	)
//	log.DebugContext(ctx, "notification shown",
//	    logger.NotificationID(id),
//	    logger.Category("success"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
