package cache

import (
	"context"
	"errors"
	"time"
)

// Retry policy for backends that talk to a network service. Local
// backends (memory, file) fail fast and never wrap with Retryable.
const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// RetryableError marks an error as transient: a backend operation that
// failed with it may succeed when repeated.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError. Wrapping nil returns nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn, repeating it with doubling delays while it
// keeps failing with a retryable error. Non-retryable errors return
// immediately; the last error is returned once the attempts are spent.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if i < retryAttempts-1 {
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
