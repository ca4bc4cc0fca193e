package report

import (
	"io"
	"time"

	"github.com/vicentfs/leadscan/internal/model"
)

// Summary is everything a writer needs to render the end of a run.
type Summary struct {
	// Selector is the filter set the run crawled.
	Selector model.Selector

	// Progress is the final ledger, read-only by the time it gets here.
	Progress *model.Progress

	// Started and Finished bound the run.
	Started  time.Time
	Finished time.Time

	// JSONPath and CSVPath locate the output files, empty when no
	// sink was configured.
	JSONPath string
	CSVPath  string

	// Interrupted marks a run cut short by a signal or cancellation.
	Interrupted bool
}

// Duration returns the run's wall-clock duration.
func (s *Summary) Duration() time.Duration {
	return s.Finished.Sub(s.Started)
}

// Writer defines the interface for summary output.
//
// Design decision: We use an interface to allow different output
// formats and destinations. This enables writing to files, stdout, or
// both with the same API.
type Writer interface {
	// Write renders the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *Summary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the summary through every configured Writer.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(summary *Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
