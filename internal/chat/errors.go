package chat

import "errors"

// Relay error taxonomy. Each maps to a fixed, non-leaking user-facing
// message in the handler; credential material never reaches a response.
var (
	// ErrEmptyQuery rejects a blank query before any upstream I/O.
	ErrEmptyQuery = errors.New("query is required")

	// ErrNotConfigured covers a missing or rejected credential and an
	// unreachable completion service.
	ErrNotConfigured = errors.New("completion service is not configured")

	// ErrUpstream covers every other completion-service failure.
	ErrUpstream = errors.New("completion request failed")
)
