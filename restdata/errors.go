// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/diffeo/go-cmsrest/repository"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrParse is returned by parsers when a request body is structurally
// invalid: a required element is missing, an element has the wrong
// shape, or a scalar cannot be converted to its typed value.  The
// message names the offending element and the type being parsed.
// No partial result accompanies this error.
type ErrParse struct {
	Message string
}

// ParseErrorf creates an ErrParse with a formatted message.
func ParseErrorf(format string, args ...interface{}) ErrParse {
	return ErrParse{Message: fmt.Sprintf(format, args...)}
}

func (e ErrParse) Error() string {
	return e.Message
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrParse) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrNotRegistered is returned when a registry has nothing registered
// under a requested identifier.  This is a deployment or wiring bug,
// not a client error, and so it maps to 500 Internal Server Error.
type ErrNotRegistered struct {
	// Kind names the registry, e.g. "parser" or "field type
	// processor".
	Kind string

	// Identifier is the key that was looked up.
	Identifier string
}

func (e ErrNotRegistered) Error() string {
	return fmt.Sprintf("No %s registered for '%s'", e.Kind, e.Identifier)
}

// HTTPStatus returns a fixed 500 Internal Server Error code.
func (e ErrNotRegistered) HTTPStatus() int {
	return http.StatusInternalServerError
}

// ErrUnsupportedMediaType is returned from input decoding if the
// provided Content-Type: is unrecognized.  This translates directly
// into the equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrForbidden wraps repository errors caused by a request that is
// well-formed but conflicts with existing state.
type ErrForbidden struct {
	Err error
}

func (e ErrForbidden) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 403 Forbidden HTTP status code.
func (e ErrForbidden) HTTPStatus() int {
	return http.StatusForbidden
}

// StatusOf returns the HTTP status code for an arbitrary error: the
// error's own status if it has one, otherwise a status derived from
// the well-known repository errors, otherwise 500.
func StatusOf(err error) int {
	if errS, hasStatus := err.(ErrorStatus); hasStatus {
		return errS.HTTPStatus()
	}
	switch err.(type) {
	case repository.ErrNoSuchContent, repository.ErrNoSuchContentType,
		repository.ErrNoSuchContentTypeGroup, repository.ErrNoSuchVersion:
		return http.StatusNotFound
	case repository.ErrDuplicateIdentifier:
		return http.StatusForbidden
	}
	switch err {
	case repository.ErrNoIdentifier, repository.ErrNoMainLanguage:
		return http.StatusBadRequest
	case repository.ErrAlreadyPublished:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the last-resort response body when rendering the
// normal error document is itself impossible, generally because
// something panicked.
type ErrorResponse struct {
	// Error is a short description of the failure: "panic" or
	// "error".
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//	 defer func() {
//	     if obj := recover(); obj != nil {
//	         resp := restdata.ErrorResponse{}
//	         resp.FromPanic(obj)
//	         // write resp out as makes sense
//	     }
//	}
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
