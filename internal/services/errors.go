package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned by the auth service.
type ErrorKind int

const (
	// KindInfrastructure covers storage, hashing and signing failures and
	// anything not otherwise classified.
	KindInfrastructure ErrorKind = iota
	KindValidation
	KindConflict
	KindAuthentication
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	default:
		return "infrastructure"
	}
}

// Error is the only error type the auth service returns. Message is safe to
// show to end users; Err holds the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err. Unclassified errors are infrastructure errors.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInfrastructure
}

// PublicMessage returns the message that may be shown to the client for err.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != KindInfrastructure {
		return se.Message
	}
	return msgInternal
}

const (
	msgFieldsRequired      = "All fields are required."
	msgPasswordTooShort    = "Password must be at least 6 characters."
	msgPasswordTooLong     = "Password must be at most 72 bytes."
	msgEmailTaken          = "Email already registered."
	msgLoginFieldsRequired = "Email and password are required."
	msgInvalidCredentials  = "Invalid credentials."
	msgInvalidSession      = "Invalid auth token."
	msgInternal            = "Internal server error."
)

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func infrastructureError(err error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msgInternal, Err: err}
}
