package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TextWriter renders the summary as plain terminal text.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the summary.
func (w *TextWriter) Write(summary *Summary) (int, error) {
	var b strings.Builder

	b.WriteString(summary.Progress.Summary())
	b.WriteString("\n")

	if summary.Interrupted {
		b.WriteString("\n  Run interrupted: results below are partial.\n")
	}

	if slug := summary.Selector.Slug(); slug != "" {
		fmt.Fprintf(&b, "\n  Search:            %s\n", slug)
	}
	if !summary.Started.IsZero() && !summary.Finished.IsZero() {
		fmt.Fprintf(&b, "  Duration:          %s\n", summary.Duration().Round(time.Second))
	}
	if summary.JSONPath != "" {
		fmt.Fprintf(&b, "  JSON output:       %s\n", summary.JSONPath)
	}
	if summary.CSVPath != "" {
		fmt.Fprintf(&b, "  CSV output:        %s\n", summary.CSVPath)
	}

	return io.WriteString(w.output, b.String())
}
