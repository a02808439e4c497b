// Package log provides a simple, leveled logging interface for the SmartBorrow
// retrieval engine.
//
// The retrieval components (corpus loading, numerical/knowledge/hybrid retrievers,
// result stores) log through this package so that callers can swap the destination
// and verbosity in one place.
//
// # Log Levels
//
// Five levels, in order of increasing severity:
//
//   - LevelDebug: detailed debugging information
//   - LevelInfo: general informational messages about normal operation
//   - LevelWarn: potentially problematic situations (missing corpus files, degraded channels)
//   - LevelError: failures that need attention
//   - LevelNone: disables all logging output
//
// # Usage
//
//	logger := log.NewDefaultLogger(log.LevelInfo)
//	logger.Info("loaded %d numerical facts", n)
//
// A package-level default logger is available for components constructed without an
// explicit logger:
//
//	log.SetLevel(log.LevelWarn)
//	log.Warn("complaint categories file missing, intent classification disabled")
//
// # golog Integration
//
// For callers standardized on github.com/kataras/golog, NewGologLogger wraps an
// existing golog.Logger in the same interface:
//
//	glogger := golog.New()
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LevelDebug)
package log
