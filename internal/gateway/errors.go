package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TimeoutError marks a transport attempt that exceeded the provider's
// configured deadline. Retryable.
type TimeoutError struct {
	Provider string
	Endpoint string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timeout fetching %s: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// TransportError marks a connection-level failure (DNS, reset, abort).
// Retryable.
type TransportError struct {
	Provider string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error fetching %s: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError marks a non-2xx upstream status. Retryable only for 5xx and 429.
type HTTPError struct {
	Provider string
	Endpoint string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d from %s: %s", e.Provider, e.Status, e.Endpoint, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d from %s", e.Provider, e.Status, e.Endpoint)
}

// IsRetryable reports whether the error is worth another transport attempt:
// timeouts, connection failures, 5xx responses and 429s.
func IsRetryable(err error) bool {
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status >= 500 || httpErr.Status == http.StatusTooManyRequests
	}
	return false
}

// IsRateLimited reports whether the error is a 429. Rate pressure reflects
// local request volume, not provider health, so the orchestrator keeps it out
// of breaker failure counts.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusTooManyRequests
}

// TrailEntry records one provider's outcome inside an operation.
type TrailEntry struct {
	Provider string
	Skipped  bool // breaker was open; the provider was never tried
	Err      error
}

func (t TrailEntry) String() string {
	if t.Skipped {
		return t.Provider + ": skipped (breaker open)"
	}
	if t.Err != nil {
		return t.Provider + ": " + t.Err.Error()
	}
	return t.Provider + ": ok"
}

// AggregateError is returned when every provider configured for an operation
// failed or was skipped. The trail preserves provider order so operators can
// distinguish "never tried" from "tried and failed" without re-running.
type AggregateError struct {
	Operation string
	Trail     []TrailEntry
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Trail))
	for _, entry := range e.Trail {
		parts = append(parts, entry.String())
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s: no providers configured", e.Operation)
	}
	return fmt.Sprintf("%s: all providers failed: [%s]", e.Operation, strings.Join(parts, "; "))
}

// AsAggregate unwraps err into an AggregateError when possible.
func AsAggregate(err error) (*AggregateError, bool) {
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg, true
	}
	return nil, false
}
