// Package apperr defines the error taxonomy shared by services and the HTTP
// boundary. Services return *Error values; handlers translate Kind to a
// status code in one place and never leak internal details.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindReservedName
	KindDuplicateName
	KindNotFound
	KindInvalidOperation
	KindExternalStore
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindReservedName:
		return "reserved_name"
	case KindDuplicateName:
		return "duplicate_name"
	case KindNotFound:
		return "not_found"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindExternalStore:
		return "external_store_error"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal_error"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error    { return New(KindValidation, message) }
func NotFound(message string) *Error      { return New(KindNotFound, message) }
func Unauthorized(message string) *Error  { return New(KindUnauthorized, message) }
func ReservedName(message string) *Error  { return New(KindReservedName, message) }
func DuplicateName(message string) *Error { return New(KindDuplicateName, message) }

// KindOf extracts the taxonomy kind from an error chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
