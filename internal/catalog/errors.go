package catalog

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable indicates the catalog endpoint is unreachable.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrTimeout indicates the lookup exceeded the configured timeout.
	ErrTimeout = errors.New("catalog request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("catalog retry attempts exhausted")

	// ErrCircuitOpen indicates the breaker is rejecting calls after repeated failures.
	ErrCircuitOpen = errors.New("catalog circuit open")

	// ErrNotFound indicates the category holds no entry with the requested name.
	ErrNotFound = errors.New("catalog entry not found")

	// ErrUnknownCategory indicates the category is not one the catalog serves.
	ErrUnknownCategory = errors.New("unknown catalog category")

	// ErrInvalidResponse indicates the endpoint answered with something unparseable
	// or with GraphQL errors.
	ErrInvalidResponse = errors.New("invalid catalog response")
)

// errorCode maps an error to a short code for the observer.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrCircuitOpen):
		return "CIRCUIT_OPEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnknownCategory):
		return "UNKNOWN_CATEGORY"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
