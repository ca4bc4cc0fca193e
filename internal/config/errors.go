package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: Package-level sentinel errors rather than error
// values created inline, so callers can use errors.Is() while the
// messages stay human-readable. errors.New() suffices because no
// dynamic values are needed.
var (
	// ErrNegativeDelay is returned when either bound of the politeness
	// delay window is negative.
	ErrNegativeDelay = errors.New("invalid request delay: must be non-negative")

	// ErrInvertedDelayWindow is returned when the delay maximum is below
	// the minimum.
	ErrInvertedDelayWindow = errors.New("invalid request delay window: max must be >= min")

	// ErrInvalidMaxRetries is returned when the retry budget is not
	// positive. Zero retries would mean no fetch attempts at all.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be positive")

	// ErrInvalidBackoffBase is returned when the backoff base is not
	// positive.
	ErrInvalidBackoffBase = errors.New("invalid backoff base: must be positive")

	// ErrInvalidTimeout is returned when the HTTP timeout is not
	// positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidResultsPerPage is returned when the page size is not
	// positive; it divides the result total, so zero would be a panic
	// waiting to happen.
	ErrInvalidResultsPerPage = errors.New("invalid results per page: must be positive")

	// ErrInvalidSaveEvery is returned when the incremental-save interval
	// is negative. Zero disables incremental saves and is valid.
	ErrInvalidSaveEvery = errors.New("invalid save interval: must be non-negative")

	// ErrMissingUserAgent is returned when either crawler identity is
	// empty. The site gates access by User-Agent, so an empty identity
	// can only produce block pages.
	ErrMissingUserAgent = errors.New("missing user agent: both primary and fallback identities are required")
)
