package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the binding lifecycle the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // shared-library acquisition
	PhaseResolve  Phase = "resolve"  // symbol resolution
	PhaseTrace    Phase = "trace"    // diagnostics initialization
	PhaseNode     Phase = "node"     // node creation
	PhaseCall     Phase = "call"     // listen/dial operations
	PhaseShutdown Phase = "shutdown" // node destruction and library release
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindMissingSymbol   Kind = "missing_symbol"
	KindNullPointer     Kind = "null_pointer"
	KindInvalidArgument Kind = "invalid_argument"
	KindInternal        Kind = "internal"
	KindClosed          Kind = "closed"
	KindUnsupported     Kind = "unsupported"
	KindInstantiation   Kind = "instantiation"
	KindUnknownStatus   Kind = "unknown_status"
)

// Error is the structured error type used throughout the binding layer
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Library string
	Symbols []string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Library != "" {
		b.WriteString(": library ")
		b.WriteString(e.Library)
	}

	if len(e.Symbols) > 0 {
		b.WriteString(": symbols ")
		b.WriteString(strings.Join(e.Symbols, ", "))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NotFound creates a library-acquisition failure error
func NotFound(library string, cause error) *Error {
	return &Error{
		Phase:   PhaseLoad,
		Kind:    KindNotFound,
		Library: library,
		Cause:   cause,
	}
}

// MissingSymbols creates a resolution error naming every absent symbol.
// A single missing symbol invalidates the entire table, so the full set is
// reported at once.
func MissingSymbols(symbols []string) *Error {
	return &Error{
		Phase:   PhaseResolve,
		Kind:    KindMissingSymbol,
		Symbols: symbols,
		Detail:  fmt.Sprintf("%d required export(s) missing", len(symbols)),
	}
}

// NullPointer creates a null pointer error
func NullPointer(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullPointer,
		Detail: "null pointer",
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// Internal creates an internal library fault error
func Internal(phase Phase, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Cause:  cause,
		Detail: detail,
	}
}

// Closed creates an error for operations on an already released resource
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: what + " is closed",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Instantiation creates a wasm module instantiation error
func Instantiation(cause error, detail string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Cause:  cause,
		Detail: detail,
	}
}

// UnknownStatus creates an error for a status code outside the ABI table
func UnknownStatus(phase Phase, code int32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownStatus,
		Detail: fmt.Sprintf("status code %d is not part of the ABI", code),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Cause:  cause,
		Detail: detail,
	}
}
