package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/models"
)

// JobExecutionPage drives a job through its lifecycle: UNASSIGNED ->
// IN_PROGRESS -> COMPLETED. The page never tracks state locally; every
// transition method re-derives the current state from the DOM first, since
// the platform can move the page under us.
type JobExecutionPage struct {
	drv     *Driver
	jobCode string
}

// JobCode returns the platform-generated code for this job.
func (p *JobExecutionPage) JobCode() string {
	return p.jobCode
}

// InferJobState maps what the page shows to a lifecycle state: the
// indicator text wins when present; otherwise a visible Start Job button
// means the job is still unassigned; otherwise the state is unknown.
func InferJobState(indicatorText string, startButtonVisible bool) models.JobState {
	text := strings.ToUpper(strings.TrimSpace(indicatorText))
	switch {
	case strings.Contains(text, string(models.JobInProgress)):
		return models.JobInProgress
	case strings.Contains(text, string(models.JobCompleted)):
		return models.JobCompleted
	case strings.Contains(text, string(models.JobUnassigned)):
		return models.JobUnassigned
	case startButtonVisible:
		return models.JobUnassigned
	default:
		return models.JobUnknown
	}
}

// State reads the job's current lifecycle state from the page.
func (p *JobExecutionPage) State(ctx context.Context) models.JobState {
	indicatorCandidates := []browser.Candidate{
		{Selector: "[class*='job-state']", Description: "job state by class"},
		{Selector: "[class*='status-tag']", Description: "status tag"},
		{Selector: "[data-testid='job-state']", Description: "job state by testid"},
	}

	var indicator string
	if sel, err := p.drv.Resolver.Resolve(ctx, "job state indicator", indicatorCandidates); err == nil {
		indicator = p.drv.Session.GetText(ctx, sel)
	}

	startVisible := p.startJobButtonVisible(ctx)
	return InferJobState(indicator, startVisible)
}

func (p *JobExecutionPage) startJobButtonVisible(ctx context.Context) bool {
	startCandidates := withText([]browser.Candidate{
		{Selector: "button", Description: "Start Job button"},
	}, "Start Job")
	_, err := p.drv.Resolver.Resolve(ctx, "Start Job button", startCandidates)
	return err == nil
}

// StartJob moves an unassigned job into progress.
func (p *JobExecutionPage) StartJob(ctx context.Context) error {
	const flow = "job start"

	switch state := p.State(ctx); state {
	case models.JobInProgress:
		return nil
	case models.JobCompleted:
		return browser.NewFlowError(flow, "state check", fmt.Errorf("job %s is already completed", p.jobCode))
	}

	if !p.drv.Session.ClickButtonByText(ctx, "Start Job", p.drv.Timeout) {
		return browser.NewFlowError(flow, "start button", fmt.Errorf("Start Job control not found"))
	}

	// Some processes confirm the start in a modal.
	p.drv.Session.ClickButtonByText(ctx, "Confirm", p.drv.Timeout/4)

	started := false
	_ = p.drv.Session.PollUntil(ctx, browser.PollOptions{
		Timeout:  p.drv.Timeout,
		Interval: 500 * time.Millisecond,
	}, func(pollCtx context.Context) (bool, error) {
		if p.State(pollCtx) == models.JobInProgress {
			started = true
			return true, nil
		}
		return false, nil
	})
	if !started {
		return browser.NewFlowError(flow, "state transition", fmt.Errorf("job %s never reached IN_PROGRESS", p.jobCode))
	}

	p.drv.log.Info().Str("job_code", p.jobCode).Msg("Job started")
	return nil
}

// Tasks returns the navigation panel for this job's stages and tasks.
func (p *JobExecutionPage) Tasks() *TaskNavigationPanel {
	return &TaskNavigationPanel{drv: p.drv}
}

// Parameters returns the parameter panel for the currently selected task.
func (p *JobExecutionPage) Parameters() *ParameterPanel {
	return &ParameterPanel{drv: p.drv}
}

// EnsureOnTask detects unexpected navigation away from the task view and
// recovers by navigating back. A resource-dropdown selection is known to
// trigger this.
func (p *JobExecutionPage) EnsureOnTask(ctx context.Context) error {
	url := p.drv.Session.CurrentURL(ctx)
	if strings.Contains(url, "/inbox/") || strings.Contains(url, "/jobs/") {
		return nil
	}

	p.drv.log.Warn().Str("url", url).Msg("Unexpected navigation away from task, recovering")
	if err := p.drv.Session.NavigateBack(ctx, p.drv.Timeout); err != nil {
		return browser.NewFlowError("task recovery", "navigate back", err)
	}
	if !p.drv.Session.WaitVisible(ctx, "#task-wrapper", p.drv.Timeout) {
		return browser.NewFlowError("task recovery", "re-render", fmt.Errorf("task view never re-rendered"))
	}
	return nil
}

// CompleteTask finishes the currently selected task.
func (p *JobExecutionPage) CompleteTask(ctx context.Context) error {
	const flow = "task completion"

	if !p.drv.Session.ClickButtonByText(ctx, "Complete Task", p.drv.Timeout) {
		return browser.NewFlowError(flow, "complete button", fmt.Errorf("Complete Task control not found"))
	}
	p.drv.Session.ClickButtonByText(ctx, "Confirm", p.drv.Timeout/4)
	return nil
}

// CompleteJob finishes the job once all tasks are done.
func (p *JobExecutionPage) CompleteJob(ctx context.Context) error {
	const flow = "job completion"

	if !p.drv.Session.ClickButtonByText(ctx, "Complete Job", p.drv.Timeout) {
		return browser.NewFlowError(flow, "complete button", fmt.Errorf("Complete Job control not found"))
	}
	p.drv.Session.ClickButtonByText(ctx, "Confirm", p.drv.Timeout/4)

	completed := false
	_ = p.drv.Session.PollUntil(ctx, browser.PollOptions{
		Timeout:  p.drv.Timeout,
		Interval: 500 * time.Millisecond,
	}, func(pollCtx context.Context) (bool, error) {
		if p.State(pollCtx) == models.JobCompleted {
			completed = true
			return true, nil
		}
		return false, nil
	})
	if !completed {
		return browser.NewFlowError(flow, "state transition", fmt.Errorf("job %s never reached COMPLETED", p.jobCode))
	}

	p.drv.log.Info().Str("job_code", p.jobCode).Msg("Job completed")
	return nil
}
