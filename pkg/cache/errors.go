package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks failures talking to a remote cache backend.
var ErrBackend = errors.New("cache backend unavailable")

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is the first retry delay; it doubles per attempt.
var backoff = 100 * time.Millisecond

// RetryWithBackoff runs fn up to 3 times while it returns retryable
// errors, doubling the delay between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := backoff
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
