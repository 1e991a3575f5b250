package auth

import (
	"fmt"
	"strings"
)

// AuthenticationError is returned when the commerce API rejects a login.
// Message carries the backend-provided text verbatim when available.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError is returned when the commerce API rejects fields on
// register or profile update. Fields maps field name to the backend message.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return "validation failed"
		}
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NetworkError is returned when the commerce API could not be reached at
// all. No session state is mutated when it occurs.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("backend unreachable: %v", e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// sessionExpiredError is the sentinel behind ErrSessionExpired.
type sessionExpiredError struct{}

func (sessionExpiredError) Error() string { return "session expired" }

// ErrSessionExpired is returned when the commerce API answers 401 while a
// token is held. It is handled centrally: the session is cleared and the
// caller is sent to the login route.
var ErrSessionExpired error = sessionExpiredError{}
