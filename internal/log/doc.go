// Package log provides the application's logging setup, built on top
// of the standard slog package.
//
// Scraper logs are dominated by a few very long values: page markup,
// multi-line extracted texts, and HTML-heavy error bodies. The
// TrimHandler flattens and truncates string attributes so that every
// record stays one readable line, even at debug level where fetch and
// extraction internals are logged.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("page fetched",
//	    "url", "https://empresite.eleconomista.es/ACME.html",
//	    "body", markup, // trimmed to a short prefix
//	)
//	slog.SetDefault(logger)
package log
