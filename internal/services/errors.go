package services

import "fmt"

// Custom errors

// ValidationError means the caller supplied insufficient or malformed data.
// Fields maps a request field name to what is wrong with it.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "Validation error"
	}
	return e.Message
}

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// UpstreamError wraps any failure talking to the completion provider. It never
// leaves the CompletionGateway.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }
