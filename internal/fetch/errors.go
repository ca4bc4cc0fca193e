package fetch

import (
	"errors"
	"fmt"
	"time"
)

// ErrExhaustedRetries marks a fetch call that spent its whole attempt
// budget. It is matched with errors.Is; the concrete *ExhaustedError
// carries the last underlying failure.
var ErrExhaustedRetries = errors.New("exhausted retries")

// NotFoundError reports a 404 for a specific URL. It is terminal for
// that URL and never retried: the directory returns 404 only for pages
// that genuinely do not exist.
type NotFoundError struct {
	// URL is the page that does not exist.
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("page not found (404): %s", e.URL)
}

// RateLimitError reports an HTTP 429. It carries the wait the server
// suggested (or the configured default when the response had no hint).
type RateLimitError struct {
	// RetryAfter is the server-suggested wait before the next attempt.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (429), retry after %s", e.RetryAfter)
}

// ChallengeError reports an anti-bot block page delivered with HTTP
// 200. The fetcher recovers by rotating its User-Agent and backing off;
// the error surfaces only when the attempt budget runs out.
type ChallengeError struct {
	// URL is the page whose response carried the challenge.
	URL string
}

func (e *ChallengeError) Error() string {
	return fmt.Sprintf("anti-bot challenge detected at %s", e.URL)
}

// StatusError reports an HTTP status that has no dedicated policy.
type StatusError struct {
	// URL is the requested page.
	URL string

	// StatusCode is the HTTP status received.
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// NetworkError reports a transport-level failure (timeout, connection
// reset). It wraps the underlying error for errors.Is/As chains.
type NetworkError struct {
	// URL is the requested page.
	URL string

	// Err is the underlying transport error.
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure for %s: %v", e.URL, e.Err)
}

// Unwrap exposes the transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// ExhaustedError is returned when a fetch call spends its attempt
// budget without a usable response. It satisfies
// errors.Is(err, ErrExhaustedRetries) and unwraps to the last recorded
// failure so callers can still inspect what kept going wrong.
type ExhaustedError struct {
	// URL is the page that could not be fetched.
	URL string

	// Attempts is the number of attempts made.
	Attempts int

	// Last is the last failure recorded before giving up, nil when no
	// attempt produced a classifiable error.
	Last error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("exhausted %d attempts fetching %s", e.Attempts, e.URL)
	}
	return fmt.Sprintf("exhausted %d attempts fetching %s: %v", e.Attempts, e.URL, e.Last)
}

// Unwrap exposes the last recorded failure.
func (e *ExhaustedError) Unwrap() error { return e.Last }

// Is matches the ErrExhaustedRetries sentinel.
func (e *ExhaustedError) Is(target error) bool { return target == ErrExhaustedRetries }
