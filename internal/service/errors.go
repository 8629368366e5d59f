package service

import (
	"errors"
	"fmt"
)

// Kind discriminates expected business failures from infrastructure faults.
// Callers branch on Kind, never on message text.
type Kind int

const (
	// KindInvalidInput is a validation rejection: missing required field,
	// wrong type, empty update payload, malformed email, short password.
	KindInvalidInput Kind = iota + 1

	// KindUnauthorized is a login failure.
	KindUnauthorized

	// KindNotFound means the entity was absent for an id-based lookup,
	// update, or delete.
	KindNotFound

	// KindConflict is a uniqueness violation, e.g. a duplicate email.
	KindConflict

	// KindDependency wraps an unexpected persistence or credential
	// collaborator error.
	KindDependency
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDependency:
		return "dependency_failure"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by every service operation. Message is
// human-readable; Err carries the wrapped collaborator error for
// KindDependency failures.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped collaborator error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or zero if err is not a service
// error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// Constructors. NotFound messages and the dependency-failure pattern are part
// of the API contract and covered by tests; change them deliberately.

func invalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func notFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found."}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func dependency(verb, entity string, err error) *Error {
	return &Error{
		Kind:    KindDependency,
		Message: fmt.Sprintf("Failed to %s %s: %s", verb, entity, err.Error()),
		Err:     err,
	}
}
