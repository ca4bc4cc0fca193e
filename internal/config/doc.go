// Package config provides configuration for leadscan.
// It defines the fetch/retry defaults, the anti-bot phrase lists that
// drive challenge and placeholder detection, the province/activity
// catalogs, and an optional YAML override file.
package config
