package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP layer can map them to statuses
// without string matching.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindInvalidState
	KindUnavailable
)

// Error carries a kind plus a message safe to show to the requester.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func InvalidState(message string) error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Unavailable wraps a storage failure. The cause is logged server-side; the
// requester only ever sees the generic message.
func Unavailable(cause error) error {
	return &Error{Kind: KindUnavailable, Message: "service temporarily unavailable", cause: cause}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PublicMessage returns the requester-safe message for err, or a generic
// fallback for foreign errors.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "something went wrong"
}
