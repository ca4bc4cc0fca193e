package log

import (
	"log/slog"
	"strings"
	"testing"
)

// TestTrim tests value flattening and truncation.
func TestTrim(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace runs", func(t *testing.T) {
		t.Parallel()

		got := Trim("  <html>\n\t<body>   hola  </body>\n</html>  ")
		want := "<html> <body> hola </body> </html>"
		if got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})

	t.Run("short values pass through", func(t *testing.T) {
		t.Parallel()

		if got := Trim("page not found: 404"); got != "page not found: 404" {
			t.Errorf("got %q, expected the input unchanged", got)
		}
	})

	t.Run("long values are truncated with a marker", func(t *testing.T) {
		t.Parallel()

		got := Trim(strings.Repeat("a", maxValueLength*2))
		if len(got) != maxValueLength+len(ellipsis) {
			t.Errorf("got length %d, expected %d", len(got), maxValueLength+len(ellipsis))
		}
		if !strings.HasSuffix(got, ellipsis) {
			t.Errorf("got %q, expected the ellipsis suffix", got)
		}
	})

	t.Run("truncation never splits a rune", func(t *testing.T) {
		t.Parallel()

		got := Trim(strings.Repeat("ñ", maxValueLength))
		trimmed := strings.TrimSuffix(got, ellipsis)
		for _, r := range trimmed {
			if r == '�' {
				t.Fatalf("got a replacement character in %q", got)
			}
		}
	})
}

// TestTrimHandler tests the handler wrapper.
func TestTrimHandler(t *testing.T) {
	t.Parallel()

	t.Run("trims record attributes", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := NewLogger(&buf, true)

		logger.Debug("page fetched",
			"url", "https://empresite.eleconomista.es/ACME.html",
			"body", "<html>\n\n"+strings.Repeat("x", maxValueLength*2)+"\n</html>",
		)

		out := buf.String()
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected a single-line record, got:\n%s", out)
		}
		if !strings.Contains(out, ellipsis) {
			t.Error("expected the body attribute to be truncated")
		}
		if !strings.Contains(out, "ACME.html") {
			t.Error("expected the short url attribute to survive")
		}
	})

	t.Run("trims attributes added via With", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := NewLogger(&buf, true).With("snippet", strings.Repeat("y", maxValueLength*2))

		logger.Info("extracted")

		if !strings.Contains(buf.String(), ellipsis) {
			t.Error("expected the With attribute to be truncated")
		}
	})

	t.Run("respects verbosity", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := NewLogger(&buf, false)

		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected debug output to be suppressed, got %q", buf.String())
		}

		logger.Warn("shown")
		if !strings.Contains(buf.String(), "shown") {
			t.Error("expected warn output")
		}
	})

	t.Run("non-string values pass through", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("counts", "pages", 3, "total", 65)

		out := buf.String()
		if !strings.Contains(out, "pages=3") || !strings.Contains(out, "total=65") {
			t.Errorf("expected numeric attributes unchanged, got %q", out)
		}
	})
}
