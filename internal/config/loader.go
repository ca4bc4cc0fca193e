package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".leadscan.yaml"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that is fatal based on whether the path
// was given explicitly by the user.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML override file structure. Every field is optional;
// zero values mean "keep the default". Durations are expressed in
// seconds to match how the site's pacing is usually discussed.
//
// The phrase lists replace the defaults entirely when present rather
// than merging, so an override file fully owns the wording it matches.
type File struct {
	// RequestDelayMinSeconds overrides the politeness delay lower bound.
	RequestDelayMinSeconds float64 `yaml:"requestDelayMinSeconds,omitempty"`

	// RequestDelayMaxSeconds overrides the politeness delay upper bound.
	RequestDelayMaxSeconds float64 `yaml:"requestDelayMaxSeconds,omitempty"`

	// MaxRetries overrides the per-fetch attempt budget.
	MaxRetries int `yaml:"maxRetries,omitempty"`

	// BackoffBaseSeconds overrides the exponential backoff base.
	BackoffBaseSeconds float64 `yaml:"backoffBaseSeconds,omitempty"`

	// ResultsPerPage overrides the listing page size.
	ResultsPerPage int `yaml:"resultsPerPage,omitempty"`

	// SaveEvery overrides the incremental-save interval.
	SaveEvery int `yaml:"saveEvery,omitempty"`

	// UserAgent overrides the primary crawler identity.
	UserAgent string `yaml:"userAgent,omitempty"`

	// FallbackUserAgent overrides the secondary crawler identity.
	FallbackUserAgent string `yaml:"fallbackUserAgent,omitempty"`

	// ChallengePhrases replaces the block-page marker list.
	ChallengePhrases []string `yaml:"challengePhrases,omitempty"`

	// PlaceholderPhrases replaces the placeholder marker list.
	PlaceholderPhrases []string `yaml:"placeholderPhrases,omitempty"`
}

// LoadConfigFile reads overrides from a YAML file.
// It returns ErrConfigNotFound when the file does not exist.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in order:
// 1. the explicit path, if given
// 2. .leadscan.yaml in the current directory
// 3. .leadscan.yaml in the user's home directory
//
// Returns the path if found, or empty string if not.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges the file's non-zero overrides into the config.
func (f *File) Apply(cfg *Config) {
	if f.RequestDelayMinSeconds > 0 {
		cfg.RequestDelayMin = secondsToDuration(f.RequestDelayMinSeconds)
	}
	if f.RequestDelayMaxSeconds > 0 {
		cfg.RequestDelayMax = secondsToDuration(f.RequestDelayMaxSeconds)
	}
	if f.MaxRetries > 0 {
		cfg.MaxRetries = f.MaxRetries
	}
	if f.BackoffBaseSeconds > 0 {
		cfg.BackoffBase = secondsToDuration(f.BackoffBaseSeconds)
	}
	if f.ResultsPerPage > 0 {
		cfg.ResultsPerPage = f.ResultsPerPage
	}
	if f.SaveEvery > 0 {
		cfg.SaveEvery = f.SaveEvery
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.FallbackUserAgent != "" {
		cfg.FallbackUserAgent = f.FallbackUserAgent
	}
	if len(f.ChallengePhrases) > 0 {
		cfg.ChallengePhrases = f.ChallengePhrases
	}
	if len(f.PlaceholderPhrases) > 0 {
		cfg.PlaceholderPhrases = f.PlaceholderPhrases
	}
}

// secondsToDuration converts a fractional seconds value to a Duration.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
