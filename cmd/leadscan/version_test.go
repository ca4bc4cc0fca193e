package main

import (
	"strings"
	"testing"
)

// TestBuildDetails tests version-triple resolution. It mutates the
// package-level ldflags variables, so it must not run in parallel with
// the command tests.
func TestBuildDetails(t *testing.T) {
	restore := func(v, c, d string) {
		version, commit, date = v, c, d
	}
	defer restore(version, commit, date)

	t.Run("ldflags values win", func(t *testing.T) {
		version, commit, date = "v1.2.3", "abcdef0", "2026-08-31"

		ver, rev, when := buildDetails()
		if ver != "v1.2.3" {
			t.Errorf("got %q, expected v1.2.3", ver)
		}
		if rev != "abcdef0" {
			t.Errorf("got %q, expected abcdef0", rev)
		}
		if when != "2026-08-31" {
			t.Errorf("got %q, expected 2026-08-31", when)
		}
	})

	t.Run("long commit hashes are shortened", func(t *testing.T) {
		version, commit, date = "v1.2.3", "abcdef0123456789", "2026-08-31"

		_, rev, _ := buildDetails()
		if rev != "abcdef0" {
			t.Errorf("got %q, expected the 7-character prefix", rev)
		}
	})

	t.Run("unset values resolve to a non-empty fallback", func(t *testing.T) {
		version, commit, date = "", "", ""

		ver, rev, when := buildDetails()
		if ver == "" || rev == "" || when == "" {
			t.Errorf("got (%q, %q, %q), expected non-empty fallbacks", ver, rev, when)
		}
		if strings.Contains(rev, " ") {
			t.Errorf("got %q, expected a bare revision", rev)
		}
	})
}
