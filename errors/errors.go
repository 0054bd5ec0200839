// Package errors provides error handling for crunch.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Wrap with context
//	if err := sink.Accept(word); err != nil {
//	    return errors.Wrap(err, "failed to write word")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "pattern length must equal the word length")
//
//	// Check errors
//	if errors.Is(err, errors.ErrConfigMismatch) {
//	    // skip this length
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	CombineErrors = crdb.CombineErrors
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors for the generation pipeline.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrConfigMismatch indicates the pattern length differs from the word
	// length being generated. Recoverable: that length is skipped.
	ErrConfigMismatch = New("pattern length does not match word length")

	// ErrEmptyCandidateSet indicates a compiled pattern has no positions.
	// Recoverable: that length is skipped silently.
	ErrEmptyCandidateSet = New("empty candidate set")

	// ErrMalformedSizeSpec indicates an unparseable split size string
	ErrMalformedSizeSpec = New("malformed size spec")

	// ErrInvalidConfig indicates a configuration value is out of range
	ErrInvalidConfig = New("invalid configuration")

	// ErrUnknownCodec indicates an unsupported compression name
	ErrUnknownCodec = New("unknown compression codec")

	// ErrInsufficientSpace indicates the estimated output exceeds free disk space
	ErrInsufficientSpace = New("insufficient disk space")

	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = New("not found")
)

// IsRecoverable reports whether err only affects a single length pass.
func IsRecoverable(err error) bool {
	return err != nil && IsAny(err, ErrConfigMismatch, ErrEmptyCandidateSet)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
