package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes. Use errors.Is to classify an error returned by Client.
var (
	// ErrNetworkFailure marks requests that never produced a response.
	ErrNetworkFailure = errors.New("network failure")

	// ErrAPIFailure marks responses whose envelope reported success=false
	// or whose HTTP status was 4xx/5xx.
	ErrAPIFailure = errors.New("api failure")

	// ErrCircuitOpen is returned without contacting the backend while the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("backend unavailable")

	// ErrInvalidPost is returned by NewPost.Validate.
	ErrInvalidPost = errors.New("invalid post")
)

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrNetworkFailure and the underlying cause.
func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetworkFailure, e.Err}
}

// APIError is a failed envelope. Message is the backend's user-facing text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

// Is reports ErrAPIFailure as a match.
func (e *APIError) Is(target error) bool {
	return target == ErrAPIFailure
}

// IsServerError reports whether the backend failed with a 5xx status.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// PostError is a failed NewPost check on one field.
type PostError struct {
	Field   string // JSON name, e.g. "body"
	Problem string // e.g. "is required"
}

func (e *PostError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidPost, e.Field, e.Problem)
}

// Is reports ErrInvalidPost as a match.
func (e *PostError) Is(target error) bool {
	return target == ErrInvalidPost
}

// Message is the form-level text, e.g. "Body is required".
func (e *PostError) Message() string {
	label, ok := postFieldLabels[e.Field]
	if !ok {
		label = e.Field
	}
	return label + " " + e.Problem
}

//nolint:gochecknoglobals // static lookup table.
var postFieldLabels = map[string]string{
	"userId": "User",
	"title":  "Title",
	"body":   "Body",
}

// UserMessage converts any client error into the text shown to the user.
// API failures are forwarded verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var postErr *PostError
	if errors.As(err, &postErr) {
		return postErr.Message()
	}

	switch {
	case errors.Is(err, ErrCircuitOpen):
		return "Backend unavailable, try again shortly"
	case errors.Is(err, ErrNetworkFailure):
		return "Network error: could not reach the backend"
	default:
		return err.Error()
	}
}
