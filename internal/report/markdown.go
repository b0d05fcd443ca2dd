package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const duration100ms = 100 * time.Millisecond

// BuildMarkdown renders the run summary as a markdown document. The table
// layout keeps one row per test so the HTML and PDF renderings stay
// scannable.
func BuildMarkdown(summary *RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Test Run %s\n\n", summary.RunID)
	fmt.Fprintf(&b, "- Started: %s\n", summary.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	if summary.Target != "" {
		fmt.Fprintf(&b, "- Target: %s\n", summary.Target)
	}
	fmt.Fprintf(&b, "- Tests: %d total, %d passed, %d failed, %d skipped\n\n",
		len(summary.Results), summary.Passed(), summary.Failed(), summary.Skipped())

	if len(summary.Results) == 0 {
		b.WriteString("No tests were recorded for this run.\n")
		return b.String()
	}

	b.WriteString("## Results\n\n")
	b.WriteString("| Test | Status | Duration | Job Code |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, result := range summary.Results {
		jobCode := result.JobCode
		if jobCode == "" {
			jobCode = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			result.Name, result.Status, result.Duration.Round(duration100ms), jobCode)
	}

	failures := false
	for _, result := range summary.Results {
		if result.Status != StatusFail {
			continue
		}
		if !failures {
			b.WriteString("\n## Failures\n")
			failures = true
		}
		fmt.Fprintf(&b, "\n### %s\n\n```\n%s\n```\n", result.Name, result.Error)
	}

	return b.String()
}

// RenderHTML converts the markdown report to a standalone HTML document.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>Test Run Report</title>\n")
	page.WriteString("<style>\nbody { font-family: sans-serif; margin: 2em; }\n")
	page.WriteString("table { border-collapse: collapse; }\n")
	page.WriteString("th, td { border: 1px solid #ccc; padding: 4px 8px; }\n</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.String(), nil
}
