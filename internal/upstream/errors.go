package upstream

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNotAuthenticated is returned by operations that require an armed
// session when none is present or the session has expired.
var ErrNotAuthenticated = errors.New("upstream: not authenticated")

// RateLimitError captures an HTTP 429 from the upstream platform.
type RateLimitError struct {
	Command    string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream rate limited"
	}
	if e.Command != "" {
		msg = fmt.Sprintf("%s (command=%s)", msg, e.Command)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// ServerError captures any other non-2xx upstream response.
type ServerError struct {
	Command    string
	StatusCode int
	Reason     string
}

func (e *ServerError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "upstream request failed"
	}
	return fmt.Sprintf("upstream: %s (command=%s status=%d)", reason, e.Command, e.StatusCode)
}

// AsServerError attempts to unwrap an error into a ServerError.
func AsServerError(err error) (*ServerError, bool) {
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr, true
	}
	return nil, false
}

// NetworkError wraps transport-level failures: timeouts, connection
// resets, DNS errors. The request never produced a classified response.
type NetworkError struct {
	Command string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream: network failure (command=%s): %v", e.Command, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// parseRetryAfter interprets a Retry-After header as delay seconds.
// HTTP-date values are ignored; the upstream only sends the numeric form.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
