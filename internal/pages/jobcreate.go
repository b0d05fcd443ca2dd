package pages

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ternarybob/dwitest/internal/browser"
)

// JobCreationPage instantiates a process into a job.
type JobCreationPage struct {
	drv         *Driver
	processName string
}

var jobCodePattern = regexp.MustCompile(`[A-Z]{3}[0-9]*-[0-9]+-[0-9]+|JOB-[A-Za-z0-9-]+`)

// CreateJob clicks through job creation and returns the execution page
// along with the platform-generated job code.
func (p *JobCreationPage) CreateJob(ctx context.Context) (*JobExecutionPage, string, error) {
	const flow = "job creation"

	if !p.drv.Session.ClickButtonByText(ctx, "Create Job", p.drv.Timeout) {
		return nil, "", browser.NewFlowError(flow, "create job button", fmt.Errorf("Create Job control not found"))
	}

	// Creation modals sometimes ask for confirmation before cutting over.
	p.drv.Session.ClickButtonByText(ctx, "Confirm", p.drv.Timeout/4)

	if !p.drv.Session.WaitForURLContains(ctx, "/jobs", p.drv.Timeout) &&
		!p.drv.Session.WaitForURLContains(ctx, "/inbox", p.drv.Timeout) {
		return nil, "", browser.NewFlowError(flow, "job page", fmt.Errorf("job page never loaded"))
	}

	code := p.readJobCode(ctx)
	if code == "" {
		p.drv.log.Warn().Str("process", p.processName).Msg("Job created but no job code found on page")
	} else {
		p.drv.log.Info().Str("process", p.processName).Str("job_code", code).Msg("Job created")
	}

	return &JobExecutionPage{drv: p.drv, jobCode: code}, code, nil
}

// readJobCode extracts the generated code from the job header.
func (p *JobCreationPage) readJobCode(ctx context.Context) string {
	headerCandidates := []browser.Candidate{
		{Selector: "[class*='job-code']", Description: "job code by class"},
		{Selector: "[class*='job-header'] span", Description: "job header span"},
		{Selector: "h1, h2", Description: "page heading"},
	}
	for _, candidate := range headerCandidates {
		sel, err := p.drv.Resolver.Resolve(ctx, "job code", []browser.Candidate{candidate})
		if err != nil {
			continue
		}
		if match := jobCodePattern.FindString(p.drv.Session.GetText(ctx, sel)); match != "" {
			return match
		}
	}
	return ""
}
