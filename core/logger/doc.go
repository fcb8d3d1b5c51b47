// Package logger builds the application's zap logger.
//
// Level and Format come from configuration. The debug level selects zap's
// development preset, every other level the production preset with the
// requested minimum level applied.
//
// # Request and Record Fields
//
// WithRayID tags a logger with the ray_id stored by the rayid middleware so
// every line of a request can be correlated. WithRecord tags a logger with
// the id, name and set of a source record, which is how catalog loads report
// per-record problems.
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
