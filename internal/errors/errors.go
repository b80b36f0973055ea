// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure produced while talking to the password store process carries a
// machine-readable Kind, so callers can tell a rejected path from a process
// that could not be spawned or from a diagnostic printed by the store itself.
//
// The package supports wrapping underlying errors while maintaining error kind
// information. Errors of kind Pass render as the store's own diagnostic text,
// unaltered.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// InvalidInput indicates an empty or whitespace-only entry path.
	InvalidInput Kind = "invalid_input"
	// InvalidOutput indicates a response whose shape does not match the operation.
	InvalidOutput Kind = "invalid_output"
	// Pass indicates the store program reported a failure on its error stream.
	Pass Kind = "pass"
	// IO indicates the process could not be spawned or its streams failed.
	IO Kind = "io"
	// FromUtf8 indicates captured process output was not valid UTF-8.
	FromUtf8 Kind = "from_utf8"
	// JSON indicates the response payload could not be parsed.
	JSON Kind = "json"
	// Unsupported indicates the operation does not exist on the selected backend.
	Unsupported Kind = "unsupported"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Kind == Pass {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
