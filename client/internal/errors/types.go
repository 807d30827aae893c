// Package errors defines the two failure shapes the client SDK returns.
//
// Calls that surface the transport's own failure return *StatusError, which
// keeps the status code and body. Patient and session calls instead return
// one of the fixed-message sentinels below; they carry no status or body.
package errors

import (
	"errors"
	"fmt"
)

// StatusError is a non-2xx response on a call that surfaces transport
// failures to the caller.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// NewStatusError truncates body to keep errors loggable.
func NewStatusError(operation string, statusCode int, body []byte) *StatusError {
	const maxBody = 512
	s := string(body)
	if len(s) > maxBody {
		s = s[:maxBody] + "..."
	}
	return &StatusError{Operation: operation, StatusCode: statusCode, Body: s}
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == code
	}
	return false
}
