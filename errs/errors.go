package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an operation failure.
type Kind string

const (
	// KindAuth covers a missing/invalid credential or a 401/403 response.
	KindAuth Kind = "auth"
	// KindNetwork covers transport failures, timeouts, and non-2xx
	// responses not otherwise classified.
	KindNetwork Kind = "network"
	// KindDecode covers response bodies that do not match the expected shape.
	KindDecode Kind = "decode"
	// KindInvalidState covers operations invoked in a state that does not
	// permit them.
	KindInvalidState Kind = "invalid_state"
)

// Error is an application error with a classification.
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

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Auth(message string, err error) *Error    { return New(KindAuth, message, err) }
func Network(message string, err error) *Error { return New(KindNetwork, message, err) }
func Decode(message string, err error) *Error  { return New(KindDecode, message, err) }
func InvalidState(message string) *Error       { return New(KindInvalidState, message, nil) }

// KindOf returns the classification of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromStatus classifies a non-2xx HTTP response. 401 and 403 are auth
// failures; everything else is a network failure.
func FromStatus(statusCode int, body string) *Error {
	msg := fmt.Sprintf("unexpected status %d: %s", statusCode, body)
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return Auth(msg, nil)
	}
	return Network(msg, nil)
}
