package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the pacing the directory tolerates in practice; tighter
// values trigger rate limiting and block pages.
const (
	// BaseURL is the directory this tool targets. The URL and markup
	// conventions of the site are isolated in the siteurl and extract
	// packages; everything else is site-agnostic.
	BaseURL = "https://empresite.eleconomista.es"

	// DefaultRequestDelayMin is the lower bound of the randomized
	// politeness delay between consecutive requests. Five seconds is
	// deliberately conservative: the goal is a crawl the site never
	// notices, not throughput.
	DefaultRequestDelayMin = 5 * time.Second

	// DefaultRequestDelayMax is the upper bound of the politeness delay.
	// Randomizing within [min, max] avoids the fixed-interval signature
	// that naive bot detection keys on.
	DefaultRequestDelayMax = 10 * time.Second

	// DefaultMaxRetries is the attempt budget per fetch call.
	// Four attempts with exponential backoff covers transient 429 bursts
	// without keeping a dead URL alive for minutes.
	DefaultMaxRetries = 4

	// DefaultBackoffBase is the base wait for exponential backoff:
	// attempt N sleeps base * 2^N. The site's rate limiter cools down on
	// the order of half a minute, so 30s is the useful starting point.
	DefaultBackoffBase = 30 * time.Second

	// DefaultResultsPerPage is how many company cards a listing page
	// carries. Used to compute how many pages a traversal must visit.
	DefaultResultsPerPage = 30

	// DefaultSaveEvery is the incremental-save interval: accumulated
	// successes are flushed to disk every N companies so an interrupted
	// run keeps partial output.
	DefaultSaveEvery = 10

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "leadscan"
)

// Default User-Agent identities.
//
// The directory's robots.txt blocks generic crawlers but allows the
// OpenAI crawler identities. Self-identifying as a permitted crawler is
// what lets this tool use plain HTTP requests instead of a headless
// browser; the secondary identity is the fallback after a challenge
// page is detected.
const (
	// DefaultUserAgent is the primary crawler identity (GPTBot).
	DefaultUserAgent = "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; GPTBot/1.2; +https://openai.com/gptbot)"

	// DefaultFallbackUserAgent is the secondary identity (ChatGPT-User),
	// switched to when a 200 response carries a challenge page.
	DefaultFallbackUserAgent = "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; ChatGPT-User/1.0; +https://openai.com/bot)"
)

// DefaultChallengePhrases are substrings that identify an anti-bot block
// page delivered with HTTP 200. Matching is case-insensitive. The site
// serves these in Spanish or English depending on request headers, so
// both wordings are listed.
//
// This list is data, not logic: the site's block-page wording is the
// actual contract being matched, and drift here is handled by editing
// the list (or overriding it in the config file), not the code.
func DefaultChallengePhrases() []string {
	return []string{
		"demasiadas peticiones detectadas",
		"verificar que no es un robot",
		"resuelva el captcha",
		"too many requests detected",
	}
}

// DefaultPlaceholderPhrases are substrings that mark an extracted value
// as a placeholder rather than real data (e.g. "Añadir teléfono"
// invitations on fields the company never filled in). Matching is
// case-insensitive. Like the challenge phrases, this is site wording
// kept as configuration data.
func DefaultPlaceholderPhrases() []string {
	return []string{
		"añadir",
		"agregar",
		"no disponible",
		"no consta",
	}
}

// Config holds all options for a scrape run.
// It is populated from defaults, optionally overridden by the YAML
// config file, then by CLI flags, and passed through the application by
// dependency injection rather than global state.
//
// Design decision: One flat struct instead of nested sub-structs; the
// option count is manageable and nesting would add indirection without
// benefit.
type Config struct {
	// RequestDelayMin is the lower bound of the inter-request delay.
	RequestDelayMin time.Duration

	// RequestDelayMax is the upper bound of the inter-request delay.
	RequestDelayMax time.Duration

	// MaxRetries is the attempt budget per fetch call.
	MaxRetries int

	// BackoffBase is the base duration for exponential retry backoff.
	BackoffBase time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// ResultsPerPage is the number of company cards per listing page.
	ResultsPerPage int

	// SaveEvery is the incremental-save interval in companies.
	// Zero disables incremental saving (a final save still happens).
	SaveEvery int

	// UserAgent is the primary crawler identity.
	UserAgent string

	// FallbackUserAgent is the identity adopted after challenge
	// detection.
	FallbackUserAgent string

	// ChallengePhrases are the block-page markers (case-insensitive
	// substrings).
	ChallengePhrases []string

	// PlaceholderPhrases are the placeholder-value markers
	// (case-insensitive substrings).
	PlaceholderPhrases []string

	// OutputDir is where JSON/CSV output and the summary are written.
	OutputDir string

	// DBDir is the directory for the SQLite crawl database.
	// Empty disables persistence.
	DBDir string

	// Resume skips company URLs that already have a stored record for
	// the same filter set in the crawl database.
	Resume bool

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
// Many defaults are non-zero, so relying on zero values would be wrong;
// the constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		RequestDelayMin:    DefaultRequestDelayMin,
		RequestDelayMax:    DefaultRequestDelayMax,
		MaxRetries:         DefaultMaxRetries,
		BackoffBase:        DefaultBackoffBase,
		Timeout:            DefaultTimeout,
		ResultsPerPage:     DefaultResultsPerPage,
		SaveEvery:          DefaultSaveEvery,
		UserAgent:          DefaultUserAgent,
		FallbackUserAgent:  DefaultFallbackUserAgent,
		ChallengePhrases:   DefaultChallengePhrases(),
		PlaceholderPhrases: DefaultPlaceholderPhrases(),
		OutputDir:          "output",
		DBDir:              XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for leadscan.
// On Linux: ~/.local/share/leadscan
// On macOS: ~/Library/Application Support/leadscan
// On Windows: %LOCALAPPDATA%\leadscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for leadscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration is usable.
// It is called once after flag parsing, before any network activity, so
// misconfiguration fails fast with a specific error.
// The first error found is returned; fixing it often makes the rest
// irrelevant.
func (c *Config) Validate() error {
	if c.RequestDelayMin < 0 || c.RequestDelayMax < 0 {
		return ErrNegativeDelay
	}
	if c.RequestDelayMax < c.RequestDelayMin {
		return ErrInvertedDelayWindow
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxRetries
	}
	if c.BackoffBase <= 0 {
		return ErrInvalidBackoffBase
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ResultsPerPage <= 0 {
		return ErrInvalidResultsPerPage
	}
	if c.SaveEvery < 0 {
		return ErrInvalidSaveEvery
	}
	if c.UserAgent == "" || c.FallbackUserAgent == "" {
		return ErrMissingUserAgent
	}
	return nil
}
