package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a key that is not cached.
	ErrNotFound = errors.New("cache: not found")
	// ErrNetwork wraps every failure to reach a remote backend.
	ErrNetwork = errors.New("cache: backend unreachable")
)

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err for [Backoff.Do]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with doubling delays between attempts.
type Backoff struct {
	Attempts int           // total tries, at least one
	Delay    time.Duration // wait before the second try
}

// connectBackoff governs the initial Redis ping.
var connectBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do runs fn until it succeeds, fails with an error not marked Retryable, or
// uses up its attempts. It returns ctx.Err() if ctx ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
