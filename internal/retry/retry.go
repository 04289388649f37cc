// Package retry provides the single bounded-retry primitive used around every
// external capability call (search, reasoning, translation).
package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// sleepFunc is the sleep function used between attempts (injectable for tests)
var sleepFunc = sleep

// Do invokes fn up to maxAttempts times, backing off exponentially from
// baseBackoff between attempts. Non-transient errors abort immediately.
// The last error is returned after exhaustion; callers degrade to their
// stage-specific fallback rather than propagating it.
func Do(ctx context.Context, maxAttempts int, baseBackoff time.Duration, fn func(ctx context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !Transient(err) {
			return err
		}
		if attempt < maxAttempts-1 {
			backoff := baseBackoff << uint(attempt)
			if sleepErr := sleepFunc(ctx, backoff); sleepErr != nil {
				return sleepErr
			}
		}
	}
	return err
}

// Transient reports whether an error is worth retrying: timeouts, rate
// limits, and connection-level failures. Context cancellation is not
// transient - the caller's deadline owns the call.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "timed out") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests") ||
		strings.Contains(s, "429") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "temporarily unavailable") ||
		strings.Contains(s, "503") ||
		strings.Contains(s, "502")
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
