package domain

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindDuplicateEmail
	KindInvalidCredentials
	KindTokenExpired
	KindInvalidToken
	KindAuthenticationFailed
	KindRateLimited
	KindUnavailable
	KindTimeout
)

var kindNames = map[Kind]string{
	KindInternal:             "internal",
	KindInvalidInput:         "invalid_input",
	KindNotFound:             "not_found",
	KindDuplicateEmail:       "duplicate_email",
	KindInvalidCredentials:   "invalid_credentials",
	KindTokenExpired:         "token_expired",
	KindInvalidToken:         "invalid_token",
	KindAuthenticationFailed: "authentication_failed",
	KindRateLimited:          "rate_limited",
	KindUnavailable:          "unavailable",
	KindTimeout:              "timeout",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindInternal]
}

// Error carries a Kind and a client-safe message. Err keeps the cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so sentinels
// still match after being wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg
}

// E builds an ad-hoc error of the given kind.
func E(kind Kind, msg string) error { return &Error{Kind: kind, Msg: msg} }

// Wrap attaches a cause to a sentinel, keeping its kind and message.
func Wrap(sentinel *Error, cause error) error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: cause}
}

// classify finds the *Error behind err. Context errors from a request
// deadline or a gone client are classified too; anything else is nil.
func classify(err error) *Error {
	var de *Error
	switch {
	case errors.As(err, &de):
		return de
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return ErrCanceled
	}
	return nil
}

// KindOf reports the kind of err; unclassified errors are internal.
func KindOf(err error) Kind {
	if de := classify(err); de != nil {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err, or fallback for
// unclassified errors.
func MessageOf(err error, fallback string) string {
	if de := classify(err); de != nil && de.Kind != KindInternal {
		return de.Msg
	}
	return fallback
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Msg: "Invalid credentials"}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Msg: "Email already registered"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Msg: "User not found"}

	ErrNoToken      = &Error{Kind: KindAuthenticationFailed, Msg: "No token provided"}
	ErrTokenExpired = &Error{Kind: KindTokenExpired, Msg: "Token has expired"}
	ErrInvalidToken = &Error{Kind: KindInvalidToken, Msg: "Invalid token"}
	ErrAuthFailed   = &Error{Kind: KindAuthenticationFailed, Msg: "Failed to authenticate"}

	ErrTimeout  = &Error{Kind: KindTimeout, Msg: "Request timed out"}
	ErrCanceled = &Error{Kind: KindUnavailable, Msg: "Request canceled"}

	ErrCustomerNotFound = &Error{Kind: KindNotFound, Msg: "Customer not found"}
	ErrMatterNotFound   = &Error{Kind: KindNotFound, Msg: "Matter not found"}

	ErrInvalidCustomerID  = &Error{Kind: KindInvalidInput, Msg: "Invalid customer ID"}
	ErrInvalidMatterID    = &Error{Kind: KindInvalidInput, Msg: "Invalid matter ID"}
	ErrNameRequired       = &Error{Kind: KindInvalidInput, Msg: "Name is required"}
	ErrDescRequired       = &Error{Kind: KindInvalidInput, Msg: "Description is required"}
	ErrFirmNameRequired   = &Error{Kind: KindInvalidInput, Msg: "Firm name is required"}
	ErrEmailRequired      = &Error{Kind: KindInvalidInput, Msg: "Email is required"}
	ErrInvalidEmail       = &Error{Kind: KindInvalidInput, Msg: "Email must be a valid email address"}
	ErrPasswordLength     = &Error{Kind: KindInvalidInput, Msg: "Password must be between 8 and 72 characters"}
	ErrNoUpdateData       = &Error{Kind: KindInvalidInput, Msg: "No update data provided"}
)
