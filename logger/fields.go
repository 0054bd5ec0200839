package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across crunch.
const (
	// Identity
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Generation
	FieldMode    = "mode"
	FieldLength  = "length"
	FieldPattern = "pattern"
	FieldWords   = "words"
	FieldStart   = "start"
	FieldEnd     = "end"

	// Artifacts
	FieldPath   = "path"
	FieldFirst  = "first"
	FieldLast   = "last"
	FieldBytes  = "bytes"
	FieldCodec  = "codec"
	FieldRemote = "remote"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Split struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewSplit() *Split {
//	    return &Split{logger: logger.ComponentLogger("sink.split")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
