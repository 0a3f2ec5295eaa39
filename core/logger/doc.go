// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID attaches the request id set by the rayid middleware, and WithStream tags
// entries with the stream a synchronisation pass belongs to, so every line of a pass
// can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithStream(logger.WithRayID(log, c), stream)
//	l.Error("Pass failed", zap.Error(err))
package logger
