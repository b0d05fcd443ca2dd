package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *RunSummary {
	return &RunSummary{
		RunID:     "run_8f14e45f",
		StartedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Target:    "https://qa.platform.leucinetech.com",
		Results: []TestResult{
			{Name: "TestAllParameterTypes", Status: StatusPass, Duration: 92 * time.Second, JobCode: "CLN001-123-45"},
			{Name: "TestPeerVerification", Status: StatusFail, Duration: 41 * time.Second, JobCode: "CLN001-123-46", Error: "peer verification: select reviewer: reviewer checkbox not found"},
			{Name: "TestOntologyAuthoring", Status: StatusSkip, Duration: 0},
		},
	}
}

func TestRunSummaryCounts(t *testing.T) {
	summary := sampleSummary()

	assert.Equal(t, 1, summary.Passed())
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 1, summary.Skipped())
}

func TestBuildMarkdown(t *testing.T) {
	markdown := BuildMarkdown(sampleSummary())

	assert.Contains(t, markdown, "# Test Run run_8f14e45f")
	assert.Contains(t, markdown, "Started: 2026-03-14 09:30:00 UTC")
	assert.Contains(t, markdown, "3 total, 1 passed, 1 failed, 1 skipped")
	assert.Contains(t, markdown, "| TestAllParameterTypes | PASS | 1m32s | CLN001-123-45 |")
	assert.Contains(t, markdown, "| TestOntologyAuthoring | SKIP | 0s | - |")
	assert.Contains(t, markdown, "## Failures")
	assert.Contains(t, markdown, "### TestPeerVerification")
	assert.Contains(t, markdown, "reviewer checkbox not found")
}

func TestBuildMarkdownEmptyRun(t *testing.T) {
	markdown := BuildMarkdown(&RunSummary{RunID: "run_empty", StartedAt: time.Now()})

	assert.Contains(t, markdown, "No tests were recorded")
	assert.NotContains(t, markdown, "## Results")
	assert.NotContains(t, markdown, "## Failures")
}

func TestBuildMarkdownNoFailuresSection(t *testing.T) {
	summary := sampleSummary()
	summary.Results = summary.Results[:1]

	markdown := BuildMarkdown(summary)

	assert.NotContains(t, markdown, "## Failures")
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(BuildMarkdown(sampleSummary()))
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "TestAllParameterTypes")
	assert.Contains(t, html, "reviewer checkbox not found")
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(BuildMarkdown(sampleSummary()))
	require.NoError(t, err)

	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGeneratorWritesAllFormats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	paths, err := NewGenerator(dir).Write(sampleSummary())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}
	assert.Equal(t, filepath.Join(dir, "summary.md"), paths[0])
	assert.Equal(t, filepath.Join(dir, "report.html"), paths[1])
	assert.Equal(t, filepath.Join(dir, "report.pdf"), paths[2])
}
