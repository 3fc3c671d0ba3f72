package driver

import (
	"errors"
	"fmt"
	"time"
)

// Common fetch errors
var (
	// ErrEmptyEnvelope indicates the backend returned no data section.
	ErrEmptyEnvelope = errors.New("backend returned an empty envelope")
)

// Phase names the step of an upstream operation that failed.
type Phase string

const (
	// PhaseRequest covers transport and backend rejection failures.
	PhaseRequest Phase = "request"
	// PhaseDecode covers unparseable response envelopes.
	PhaseDecode Phase = "decode"
	// PhaseEnvelope covers structurally valid but unusable envelopes.
	PhaseEnvelope Phase = "envelope"
)

// UpstreamError is the single operation-level failure shape: it names
// the failing operation, its input arguments, and the phase that failed,
// and wraps the cause. The pipeline never retries these.
type UpstreamError struct {
	Op    string
	Phase Phase
	Args  map[string]any
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Op, e.Phase, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for UpstreamError.
// This allows errors.Is(err, &UpstreamError{}) to work with wrapped errors.
func (e *UpstreamError) Is(target error) bool {
	_, ok := target.(*UpstreamError)
	return ok
}

// RateLimitError is the rate-limited specialization of an upstream
// failure. It carries the backend's retry-after and remaining-quota
// hints so the boundary can relay actionable guidance; the client never
// retries on its own.
type RateLimitError struct {
	RetryAfter time.Duration
	Remaining  int
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded. Please try again later"
	}
	return e.Message
}

// Is implements errors.Is support for RateLimitError.
// This allows errors.Is(err, &RateLimitError{}) to work with wrapped errors.
func (e *RateLimitError) Is(target error) bool {
	_, ok := target.(*RateLimitError)
	return ok
}

// NewRateLimitError creates a new rate limit error with optional custom message.
func NewRateLimitError(message ...string) *RateLimitError {
	err := &RateLimitError{}
	if len(message) > 0 {
		err.Message = message[0]
	}
	return err
}
