// Package report renders a test run's outcome as markdown, HTML and PDF
// under the configured reports directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/common"
)

// TestStatus is the outcome of one test in a run.
type TestStatus string

const (
	StatusPass TestStatus = "PASS"
	StatusFail TestStatus = "FAIL"
	StatusSkip TestStatus = "SKIP"
)

// TestResult is one test's line in the run report.
type TestResult struct {
	Name     string
	Status   TestStatus
	Duration time.Duration
	JobCode  string
	Error    string
}

// RunSummary collects everything one run produced.
type RunSummary struct {
	RunID     string
	StartedAt time.Time
	Target    string
	Results   []TestResult
}

// Passed counts tests that ended in PASS.
func (s *RunSummary) Passed() int { return s.countStatus(StatusPass) }

// Failed counts tests that ended in FAIL.
func (s *RunSummary) Failed() int { return s.countStatus(StatusFail) }

// Skipped counts tests that were skipped.
func (s *RunSummary) Skipped() int { return s.countStatus(StatusSkip) }

func (s *RunSummary) countStatus(status TestStatus) int {
	n := 0
	for _, result := range s.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Generator writes run reports in all three formats.
type Generator struct {
	dir string
	log arbor.ILogger
}

// NewGenerator creates a generator writing into the given reports
// directory.
func NewGenerator(reportsDir string) *Generator {
	return &Generator{
		dir: reportsDir,
		log: common.GetLogger(),
	}
}

// Write renders the summary as summary.md, report.html and report.pdf and
// returns the paths written.
func (g *Generator) Write(summary *RunSummary) ([]string, error) {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	markdown := BuildMarkdown(summary)

	mdPath := filepath.Join(g.dir, "summary.md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		return nil, fmt.Errorf("failed to write markdown report: %w", err)
	}

	html, err := RenderHTML(markdown)
	if err != nil {
		return nil, err
	}
	htmlPath := filepath.Join(g.dir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("failed to write HTML report: %w", err)
	}

	pdf, err := RenderPDF(markdown)
	if err != nil {
		return nil, err
	}
	pdfPath := filepath.Join(g.dir, "report.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return nil, fmt.Errorf("failed to write PDF report: %w", err)
	}

	g.log.Info().
		Str("run_id", summary.RunID).
		Int("passed", summary.Passed()).
		Int("failed", summary.Failed()).
		Str("dir", g.dir).
		Msg("Run report written")

	return []string{mdPath, htmlPath, pdfPath}, nil
}
