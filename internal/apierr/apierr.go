// Package apierr carries an HTTP status and machine-readable code alongside
// an error so transport code can map failures without string matching.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeBadRequest   = "bad_request"
	CodeInvalidSort  = "invalid_sort"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, fmt.Errorf(format, args...))
}

func InvalidSort(key string) *Error {
	return New(http.StatusBadRequest, CodeInvalidSort, fmt.Errorf("unsupported sort key: %s", key))
}

func NotFound(resource string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", resource))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

// IsNotFound reports whether err (anywhere in its chain) is a not_found Error.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeNotFound
}
