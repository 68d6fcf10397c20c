// Package report builds the Markdown summary of one pipeline run and
// renders it to HTML for archival alongside the exported tree.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/marlowe/exhume/internal/pipeline"
)

// Markdown builds the run summary. failures carries the per-item failure
// messages recorded by the export engine, in occurrence order.
func Markdown(r *pipeline.Report, failures []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Export run %s\n\n", r.RunID)
	fmt.Fprintf(&b, "Started: %s\n\n", r.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "Overall status: **%s**\n\n", r.Status)

	b.WriteString("## Modules\n\n")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "- %s %s: %s (%s)\n",
			res.Identity.Name, res.Identity.Version, res.Status,
			res.Duration.Round(time.Millisecond))
	}

	if len(failures) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, f := range failures {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	return b.String()
}

// RenderHTML converts a Markdown summary to HTML.
func RenderHTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
