// Package apperr defines the error kinds surfaced by the scrape and detail
// pipelines and how each one maps to an HTTP status.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ValidationError reports bad or missing caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UpstreamTimeoutError means a render or fetch ran past its deadline.
// Callers may retry.
type UpstreamTimeoutError struct {
	Op  string
	Err error
}

func (e *UpstreamTimeoutError) Error() string {
	return fmt.Sprintf("%s: timeout: %v", e.Op, e.Err)
}

func (e *UpstreamTimeoutError) Unwrap() error { return e.Err }

// UpstreamHTTPError carries a non-2xx status returned by the vendor.
type UpstreamHTTPError struct {
	Status int
	URL    string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.Status)
}

// PersistenceError wraps a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError, or returns nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// Timeout wraps err as an UpstreamTimeoutError when it looks like a
// deadline expiry and returns it unchanged otherwise.
func Timeout(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsTimeout(err) {
		return &UpstreamTimeoutError{Op: op, Err: err}
	}
	return err
}

// IsTimeout reports whether err is a deadline expiry of any flavour.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var te *UpstreamTimeoutError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// StatusCode maps err onto the HTTP status the API answers with.
func StatusCode(err error) int {
	var (
		ve *ValidationError
		te *UpstreamTimeoutError
		he *UpstreamHTTPError
		pe *PersistenceError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &te):
		return http.StatusGatewayTimeout
	case errors.As(err, &he):
		if he.Status >= 400 && he.Status <= 599 {
			return he.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &pe):
		return http.StatusInternalServerError
	case IsTimeout(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
