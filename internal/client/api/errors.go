package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned when a call ends in 401 after the
	// refresh path is exhausted, or when no usable refresh token exists.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transport-level failures: network errors,
	// timeouts, anything where no backend response arrived.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedPayload is returned when the backend reported success
	// but the payload does not match any accepted shape. Backend success
	// is necessary, not sufficient.
	ErrMalformedPayload = errors.New("malformed response payload")
)

// APIError is a backend-signaled failure with its message and details
// relayed verbatim, e.g. a duplicate-email validation error on register.
type APIError struct {
	Message string
	Status  int
	Details json.RawMessage
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// envelopeError maps a failed envelope onto the error taxonomy. Returns
// nil for a successful envelope.
func envelopeError(env Envelope) error {
	if env.Success {
		return nil
	}
	info := env.Error
	if info == nil {
		return &APIError{Message: "request failed"}
	}
	switch {
	case info.Status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, info.Message)
	case info.Status == 0:
		return fmt.Errorf("%w: %s", ErrUnavailable, info.Message)
	}
	return &APIError{Message: info.Message, Status: info.Status, Details: info.Details}
}
