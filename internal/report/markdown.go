package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/vicentfs/leadscan/internal/model"
)

// markdownFailureLimit caps how many failures the Markdown report
// lists before collapsing the rest into a count, matching the text
// summary.
const markdownFailureLimit = 10

// MarkdownWriter renders the summary as Markdown.
// This format is meant for files shared outside the terminal.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the summary.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeCounts(md, summary.Progress)
	w.writeFailures(md, summary.Progress)
	w.writeOutputs(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *Summary) {
	md.H1("Scrape Summary")
	md.PlainText("")

	status := "Complete"
	if summary.Interrupted {
		status = "Interrupted (partial results)"
	}

	rows := [][]string{
		{"Search", "`" + summary.Selector.Slug() + "`"},
		{"Status", status},
	}
	if !summary.Started.IsZero() {
		rows = append(rows, []string{"Date", summary.Started.Format("2006-01-02 15:04:05 MST")})
		rows = append(rows, []string{"Duration", summary.Duration().String()})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCounts writes the results table.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, p *model.Progress) {
	md.H2("Results")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Companies found", strconv.Itoa(p.ExpectedTotal)},
			{"Pages processed", strconv.Itoa(p.Processed())},
			{"Succeeded", strconv.Itoa(len(p.Companies))},
			{"Failed", strconv.Itoa(len(p.Failures))},
			{"Success rate", fmt.Sprintf("%.1f%%", p.SuccessRate())},
		},
	})
	md.PlainText("")
}

// writeFailures lists failed URLs, capped like the text summary.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, p *model.Progress) {
	if len(p.Failures) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")

	items := make([]string, 0, markdownFailureLimit+1)
	for i, f := range p.Failures {
		if i == markdownFailureLimit {
			items = append(items, fmt.Sprintf("... and %d more", len(p.Failures)-markdownFailureLimit))
			break
		}
		items = append(items, fmt.Sprintf("`%s`: %s", f.URL, f.Err))
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeOutputs lists the data files when a sink was configured.
func (w *MarkdownWriter) writeOutputs(md *markdown.Markdown, summary *Summary) {
	if summary.JSONPath == "" && summary.CSVPath == "" {
		return
	}

	md.H2("Output Files")
	md.PlainText("")

	items := make([]string, 0, 2)
	if summary.JSONPath != "" {
		items = append(items, "JSON: `"+summary.JSONPath+"`")
	}
	if summary.CSVPath != "" {
		items = append(items, "CSV: `"+summary.CSVPath+"`")
	}
	md.BulletList(items...)
}
