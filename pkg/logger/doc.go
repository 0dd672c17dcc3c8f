// Package logger provides the structured logging used across this
// library.
//
// It is a thin wrapper around Uber's Zap configured for JSON output with
// ISO8601 timestamps. Log calls take a message, an optional error, and
// optional maps of structured fields:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       "info",
//		ServiceName: "checkout",
//	})
//
//	log.Info("span handler registered", nil, map[string]interface{}{
//		"handlers": 3,
//	})
//
// The tracing packages never depend on this package directly; they
// declare their own narrow Logger interfaces which *Logger satisfies, so
// applications may substitute any logger with the same shape.
package logger
