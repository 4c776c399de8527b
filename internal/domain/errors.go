package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindReference
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the only error shape accessors return to callers. Message is safe
// to show to clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(field, message string) error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func ConflictError(message string, cause error) error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

func ReferenceError(field, message string, cause error) error {
	return &Error{Kind: KindReference, Field: field, Message: message, Err: cause}
}

func NotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InternalError(message string, cause error) error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// KindOf reports the kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// PublicMessage returns the client-facing message for err.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return "internal server error"
}
