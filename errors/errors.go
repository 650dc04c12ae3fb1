// Package errors provides error handling for the post-processor.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Details and hints that the CLI prints under a failure
//
// Usage:
//
//	// Declare a kind once, at package level
//	var ErrLostOverloads = errors.New("lost overloads")
//
//	// Wrap it with the file that failed
//	return errors.Wrapf(ErrLostOverloads, "reordering use() in %s", path)
//
//	// Attach the offending line and a fix
//	err = errors.WithDetail(err, line)
//	err = errors.WithHint(err, "update the generator tables")
//
//	// Check kinds
//	if errors.Is(err, overload.ErrLostOverloads) {
//	    // ...
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"strings"

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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
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

// Assertions
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// ErrOutOfDate indicates a check found files that a write run would change.
// Check-mode commands wrap it with the list of stale paths.
var ErrOutOfDate = New("out of date")

// IsOutOfDate checks if an error is or wraps ErrOutOfDate
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewOutOfDate builds an ErrOutOfDate naming every stale path, with a hint
// telling the reader which command regenerates them.
func NewOutOfDate(hint string, paths ...string) error {
	err := Wrapf(ErrOutOfDate, "%s", strings.Join(paths, ", "))
	if hint != "" {
		err = WithHint(err, hint)
	}
	return err
}

// Report renders an error the way the CLI prints it: the message, then any
// attached details and hints, one per line.
func Report(err error) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(err.Error())
	for _, d := range GetAllDetails(err) {
		sb.WriteString("\n  detail: ")
		sb.WriteString(d)
	}
	for _, h := range GetAllHints(err) {
		sb.WriteString("\n  hint: ")
		sb.WriteString(h)
	}
	return sb.String()
}
