package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldPass      = "pass"

	// Files and paths
	FieldFile = "file"
	FieldLine = "line"
	FieldRoot = "root"

	// Declaration passes
	FieldMajor    = "major"
	FieldCategory = "category"
	FieldCount    = "count"
	FieldChanged  = "changed"
	FieldWritten  = "written"

	// Version sync
	FieldPackage  = "package"
	FieldVersion  = "version"
	FieldPrevious = "previous"

	// Errors and timing
	FieldError      = "error"
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	p := &Pipeline{log: logger.ComponentLogger("pipeline")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	runLog := logger.ChildLogger(base, logger.FieldRunID, id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
