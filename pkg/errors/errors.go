package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound models a device that cannot be reached: an unknown hostname
	// or an unhealthy device answering a healthcheck.
	ErrNotFound         = errors.New("connection error")
	ErrMethodNotAllowed = errors.New("method not allowed")

	ErrUnknownScenario = errors.New("unknown scenario")
	ErrInvalidConfig   = errors.New("invalid configuration")

	ErrUnsupportedFirmware = errors.New("unsupported firmware version")
	ErrLoginFailed         = errors.New("login failed")
	ErrUnexpectedStatus    = errors.New("unexpected status code")
	ErrMalformedBody       = errors.New("malformed response body")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ConnectionError reports that host could not be reached.
func ConnectionError(host string) *AppError {
	return NewAppError("NOT_FOUND", fmt.Sprintf("host %s", host), ErrNotFound)
}
