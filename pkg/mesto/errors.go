package mesto

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig    = errors.New("mesto: invalid client configuration")
	ErrEncodeRequest    = errors.New("mesto: failed to encode request body")
	ErrRequestFailed    = errors.New("mesto: request failed")
	ErrUnexpectedStatus = errors.New("mesto: unexpected response status")
	ErrDecodeResponse   = errors.New("mesto: failed to decode response")
)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the "message" field of the error body, if any.
	Message string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("Ошибка: %d (%s %s)", e.StatusCode, e.Method, e.Path)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// IsStatus reports whether err carries a response with the given status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
