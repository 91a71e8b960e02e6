// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development and production
// encodings and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry,
// so every line produced while serving one request can be correlated. WithJob does the
// same for background sync jobs, which outlive the request that submitted them.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
