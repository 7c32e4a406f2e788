package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP layer can pick a status code.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
)

// Error is the structured error passed between the store, the policy engine
// and the controllers.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation errors.
	Fields map[string][]string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewValidation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewFieldError is a validation error for a single field.
func NewFieldError(field, message string) *Error {
	return NewValidation("The given data was invalid.", map[string][]string{field: {message}})
}

func NewAuthentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func NewAuthorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
