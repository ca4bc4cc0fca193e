package fetch

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vicentfs/leadscan/internal/config"
)

// maxBodySize limits how much of a response body is read. Listing and
// detail pages are well under 1MB; anything larger is not a page this
// tool understands.
const maxBodySize = 5 * 1024 * 1024 // 5MB

// SleepFunc blocks for the given duration or until the context is
// cancelled. Tests inject a recording implementation so retry timing
// can be asserted without real waiting.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Fetcher downloads pages with retries, backoff, and politeness
// delays. It owns one HTTP session whose active User-Agent mutates
// when a challenge is detected, so a single Fetcher must not be shared
// across concurrent crawls; independent crawls in one process each get
// their own Fetcher.
type Fetcher struct {
	// client is the HTTP session used for every request.
	client *http.Client

	// userAgent is the currently active crawler identity. It starts as
	// the configured primary identity and switches to the fallback the
	// first time a challenge page is detected.
	userAgent string

	// fallbackUserAgent is the identity adopted after a challenge.
	fallbackUserAgent string

	// maxRetries is the attempt budget per Fetch call.
	maxRetries int

	// backoffBase is the base duration for exponential backoff.
	backoffBase time.Duration

	// delayMin and delayMax bound the randomized politeness delay.
	delayMin time.Duration
	delayMax time.Duration

	// challengePhrases are lowercase block-page markers.
	challengePhrases []string

	// requestCount is the number of responses received on this session.
	// The politeness delay applies only once it is positive: the very
	// first request of a session goes out immediately.
	requestCount int

	// sleep implements all waiting (politeness delay and backoff).
	sleep SleepFunc

	// random yields values in [0, 1) for the politeness delay jitter.
	random func() float64

	// logger records retry decisions at debug level.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
// Useful for tests and for callers that need custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithSleep replaces the sleep function used for politeness delays and
// retry backoff.
func WithSleep(sleep SleepFunc) Option {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

// WithRandom replaces the jitter source. The function must return
// values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(f *Fetcher) {
		f.random = random
	}
}

// WithLogger sets the logger for retry decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher from the configuration.
func New(cfg *config.Config, opts ...Option) *Fetcher {
	phrases := make([]string, 0, len(cfg.ChallengePhrases))
	for _, p := range cfg.ChallengePhrases {
		phrases = append(phrases, strings.ToLower(p))
	}

	f := &Fetcher{
		client:            &http.Client{Timeout: cfg.Timeout},
		userAgent:         cfg.UserAgent,
		fallbackUserAgent: cfg.FallbackUserAgent,
		maxRetries:        cfg.MaxRetries,
		backoffBase:       cfg.BackoffBase,
		delayMin:          cfg.RequestDelayMin,
		delayMax:          cfg.RequestDelayMax,
		challengePhrases:  phrases,
		sleep:             sleepContext,
		random:            rand.Float64,
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// UserAgent returns the currently active crawler identity.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// RequestCount returns how many responses this session has received.
func (f *Fetcher) RequestCount() int {
	return f.requestCount
}

// Close releases the session's idle connections.
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}

// Fetch downloads a page and returns its markup.
// It blocks for the duration of network I/O and any retry backoff;
// cancel the context to abort a call mid-wait.
//
// Every failure mode has its own retry policy (see the package doc).
// When the attempt budget runs out the returned error matches
// ErrExhaustedRetries and unwraps to the last recorded failure.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if f.requestCount > 0 {
			if err := f.politenessDelay(ctx); err != nil {
				return "", err
			}
		}

		f.logger.Debug("fetching page",
			"url", pageURL,
			"attempt", attempt+1,
			"maxRetries", f.maxRetries,
		)

		body, status, header, err := f.doRequest(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = &NetworkError{URL: pageURL, Err: err}
			f.logger.Warn("network failure, backing off", "url", pageURL, "error", err)
			if err := f.backoff(ctx, f.backoffBase, attempt); err != nil {
				return "", err
			}
			continue
		}
		f.requestCount++

		switch {
		case status == http.StatusOK:
			if f.challenged(body) {
				// The site flagged this identity; switch to the
				// fallback before retrying.
				f.userAgent = f.fallbackUserAgent
				lastErr = &ChallengeError{URL: pageURL}
				f.logger.Warn("challenge page detected, rotating user agent", "url", pageURL)
				if err := f.backoff(ctx, f.backoffBase, attempt); err != nil {
					return "", err
				}
				continue
			}
			return body, nil

		case status == http.StatusTooManyRequests:
			hint := retryAfterHint(header, f.backoffBase)
			lastErr = &RateLimitError{RetryAfter: hint}
			f.logger.Warn("rate limited, backing off", "url", pageURL, "retryAfter", hint)
			if err := f.backoff(ctx, hint, attempt); err != nil {
				return "", err
			}
			continue

		case status == http.StatusNotFound:
			return "", &NotFoundError{URL: pageURL}

		default:
			lastErr = &StatusError{URL: pageURL, StatusCode: status}
			f.logger.Warn("unexpected status, backing off", "url", pageURL, "status", status)
			if err := f.backoff(ctx, f.backoffBase, attempt); err != nil {
				return "", err
			}
		}
	}

	return "", &ExhaustedError{URL: pageURL, Attempts: f.maxRetries, Last: lastErr}
}

// doRequest performs one HTTP request with the session headers and
// returns the body, status code, and headers.
func (f *Fetcher) doRequest(ctx context.Context, pageURL string) (string, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", 0, nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", 0, nil, err
	}

	return string(body), resp.StatusCode, resp.Header, nil
}

// challenged reports whether the body contains a known block-page
// phrase, case-insensitively.
func (f *Fetcher) challenged(body string) bool {
	lower := strings.ToLower(body)
	for _, phrase := range f.challengePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// politenessDelay sleeps a random duration within the configured
// window. It is a politeness mechanism, not a correctness requirement.
func (f *Fetcher) politenessDelay(ctx context.Context) error {
	window := f.delayMax - f.delayMin
	d := f.delayMin
	if window > 0 {
		d += time.Duration(f.random() * float64(window))
	}
	return f.sleep(ctx, d)
}

// backoff sleeps base * 2^attempt.
func (f *Fetcher) backoff(ctx context.Context, base time.Duration, attempt int) error {
	return f.sleep(ctx, base<<uint(attempt))
}

// retryAfterHint reads the Retry-After header as integer seconds,
// falling back to the given default. The directory only ever sends the
// seconds form, not an HTTP date.
func retryAfterHint(header http.Header, fallback time.Duration) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// sleepContext is the default SleepFunc: a real wait that aborts on
// context cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
