// Package apperr defines the error kinds that services return and handlers
// translate into HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindUpstream
	KindConflict
)

// Error is an error with a kind and a client-safe message
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

// ValidationError represents a missing or malformed field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Upstream wraps a failure of a third-party API
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf reports the kind of err, KindInternal when err carries none
func KindOf(err error) Kind {
	var ve ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is of kind k
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Status maps an error to the HTTP status and message a client should see
func Status(err error) (int, string) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, "Internal server error"
	}
	switch ae.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest, ae.Message
	case KindNotFound:
		return http.StatusNotFound, ae.Message
	case KindUnauthorized:
		return http.StatusUnauthorized, ae.Message
	case KindUpstream:
		return http.StatusBadGateway, ae.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
