package curateapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"curate/internal/service"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindUnauthorized is an HTTP 401 that survived the single retry.
	KindUnauthorized Kind = iota + 1
	// KindClientError is any other 4xx.
	KindClientError
	// KindServerError is a 5xx.
	KindServerError
	// KindUnreachable means no response was received (timeout or connection failure).
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindClientError:
		return "client error"
	case KindServerError:
		return "server error"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrUnauthorized = service.ErrUnauthorized
	ErrClientError  = errors.New("client error")
	ErrServerError  = errors.New("server error")
	ErrUnreachable  = service.ErrUnreachable
)

// ErrorPayload is the JSON body the backend sends with 4xx/5xx responses.
type ErrorPayload struct {
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// Error is returned for every failed request once the retry policy is exhausted.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int           // 0 for KindUnreachable
	Payload    *ErrorPayload // nil if the body was empty or not JSON
	Timeout    bool          // KindUnreachable caused by the client timeout
	Err        error         // transport error for KindUnreachable
}

func (e *Error) Error() string {
	if e.Kind == KindUnreachable {
		if e.Timeout {
			return fmt.Sprintf("request timed out: %s %s", e.Method, e.Path)
		}
		return fmt.Sprintf("backend unreachable: %s %s: %v", e.Method, e.Path, e.Err)
	}
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if detail := e.Detail(); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Detail returns the server-supplied message, if any.
func (e *Error) Detail() string {
	if e.Payload == nil {
		return ""
	}
	if e.Payload.Message != "" {
		return e.Payload.Message
	}
	return e.Payload.Error
}

// Unwrap returns the transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels and service.ErrNotFound for 404s.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrClientError:
		return e.Kind == KindClientError
	case ErrServerError:
		return e.Kind == KindServerError
	case ErrUnreachable:
		return e.Kind == KindUnreachable
	case service.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code >= 500:
		return KindServerError
	default:
		return KindClientError
	}
}
