package qobuz

import (
	"errors"
	"fmt"
)

// Sentinel errors for the client.
var (
	// ErrNotAuthenticated means the operation needs a user token and the
	// client has none. Call Login or Resume first.
	ErrNotAuthenticated = errors.New("qobuz: user authentication required")

	// ErrNoAppCredentials means no application ID could be supplied,
	// found in the environment, or recovered from the web player bundle.
	ErrNoAppCredentials = errors.New("qobuz: no application credentials")
)

// APIError is a non-2xx response from the Qobuz API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("qobuz: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("qobuz: %s", e.Status)
}
