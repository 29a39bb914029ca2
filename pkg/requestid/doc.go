// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware honours a client supplied X-Request-ID header when it is at
// most 128 characters of letters, digits, '-' and '_'. Anything else is
// replaced by a fresh UUID. The id is echoed in the response header and
// stored in the request context, where LoggerExtractor picks it up for
// structured logs:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
