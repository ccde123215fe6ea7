// Package apperr classifies failures surfaced to callers of the generators:
// user-correctable validation problems, counter overflow, malformed input
// payloads and missing runtime capabilities.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a class of failure.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"  // 400
	KindOverflow    Kind = "OVERFLOW"    // 422
	KindFormat      Kind = "FORMAT"      // 502
	KindEnvironment Kind = "ENVIRONMENT" // 500
	KindInternal    Kind = "INTERNAL"    // 500
)

// Error is a classified failure. Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a user-correctable input error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// WrapValidation classifies err as a validation failure, keeping its message.
func WrapValidation(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

// Overflow reports a sequence that ran out of encodable values.
func Overflow(err error, start string, generated int) *Error {
	return &Error{
		Kind:    KindOverflow,
		Message: err.Error(),
		Details: map[string]any{"start": start, "generated": generated},
		Err:     err,
	}
}

// Format reports a malformed payload from an external source.
func Format(msg string, err error) *Error {
	return &Error{Kind: KindFormat, Message: msg, Err: err}
}

// Environment reports a missing or failing runtime capability.
func Environment(msg string, err error) *Error {
	return &Error{Kind: KindEnvironment, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindOverflow:
		return http.StatusUnprocessableEntity
	case KindFormat:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body is the HTTP error message for err: the plain message, or message and
// details together when the error carries details.
func Body(err error) any {
	var e *Error
	if errors.As(err, &e) && len(e.Details) > 0 {
		return map[string]any{"message": e.Message, "details": e.Details}
	}
	return err.Error()
}
