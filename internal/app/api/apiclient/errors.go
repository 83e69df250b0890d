package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinels matched with errors.Is.
var (
	ErrUnauthorized = errors.New("apiclient: unauthorized")
	ErrForbidden    = errors.New("apiclient: forbidden")
	ErrNotFound     = errors.New("apiclient: not found")
)

// DefaultMessage is shown when no error carries a usable message.
const DefaultMessage = "Something went wrong. Please try again."

// APIError describes a failed backend call.
//
// The fields mirror the three places a message can live:
//   - Payload.Message: the backend's envelope message (error.data.message)
//   - Body: a non-envelope error body such as a proxy's text (error.error)
//   - Err: a transport or decode failure (error.message)
type APIError struct {
	Status  int
	Message string
	Payload *Envelope
	Body    string
	Err     error
	kind    error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
	case e.Body != "":
		return fmt.Sprintf("backend %d: %s", e.Status, e.Body)
	case e.Err != nil:
		if e.Status == 0 {
			return "backend unreachable: " + e.Err.Error()
		}
		return fmt.Sprintf("backend %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() []error {
	var errs []error
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *APIError) classify() *APIError {
	switch e.Status {
	case http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case http.StatusForbidden:
		e.kind = ErrForbidden
	case http.StatusNotFound:
		e.kind = ErrNotFound
	}
	return e
}

// ErrorMessage extracts a user-facing message from err, checking in order:
// the backend envelope message, the raw error body, the underlying error's
// text, and finally fallback (or DefaultMessage when fallback is empty).
func ErrorMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = DefaultMessage
	}
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Payload != nil && strings.TrimSpace(apiErr.Payload.Message) != "" {
			return strings.TrimSpace(apiErr.Payload.Message)
		}
		if strings.TrimSpace(apiErr.Message) != "" {
			return strings.TrimSpace(apiErr.Message)
		}
		if apiErr.Body != "" && len(apiErr.Body) <= 200 && !strings.HasPrefix(apiErr.Body, "<") {
			return apiErr.Body
		}
		if apiErr.Err != nil && apiErr.Err.Error() != "" {
			return apiErr.Err.Error()
		}
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
