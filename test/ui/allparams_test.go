package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ternarybob/dwitest/internal/models"
	"github.com/ternarybob/dwitest/internal/params"
)

// processName returns the seeded QA process the job tests run against.
func processName() string {
	if name := os.Getenv("DWITEST_PROCESS"); name != "" {
		return name
	}
	return "Equipment Cleaning Validation"
}

// TestAllParameterTypes runs a job end to end, filling one parameter of
// every supported type as the tasks present them.
func TestAllParameterTypes(t *testing.T) {
	utc := NewUITestContext(t, MaxUITestTimeout)
	defer utc.Cleanup()

	home := utc.LoginAs(models.RoleOperator)
	creation := utc.OpenProcess(home, processName())
	execution := utc.CreateJob(creation)

	timeout := utc.Env.Config.ElementTimeout()
	number := params.NewNumber(utc.Session, timeout)
	singleLine := params.NewSingleLine(utc.Session, timeout)
	date := params.NewDate(utc.Session, timeout)
	resource := params.NewResource(utc.Session, timeout)
	singleSelect := params.NewSingleSelect(utc.Session, timeout)
	yesNo := params.NewYesNo(utc.Session, timeout)
	media := params.NewMedia(utc.Session, timeout)

	evidence := writeEvidenceFile(t, utc.Env.ResultsDir)

	fillers := map[string]func(label string) error{
		"Batch Number": func(label string) error {
			if err := number.Fill(utc.Ctx, label, "42"); err != nil {
				return err
			}
			if !number.Verify(utc.Ctx, label, "42") {
				utc.Log("Number %s did not read back as 42", label)
			}
			return nil
		},
		"Remarks": func(label string) error {
			return singleLine.Fill(utc.Ctx, label, "Automated cleaning run")
		},
		"Cleaning Date": func(label string) error {
			return date.Fill(utc.Ctx, label, time.Now().Format("2006-01-02"))
		},
		"Equipment": func(label string) error {
			if err := resource.SelectFirst(utc.Ctx, label); err != nil {
				return err
			}
			// Resource selection occasionally navigates away from the task.
			return execution.EnsureOnTask(utc.Ctx)
		},
		"Cleaning Agent": func(label string) error {
			err := singleSelect.SelectFirst(utc.Ctx, label)
			// The menu can stay open over the next parameter's controls.
			singleSelect.Close(utc.Ctx)
			return err
		},
		"Area Cleaned": func(label string) error {
			return yesNo.Fill(utc.Ctx, label, "Yes")
		},
		"Evidence": func(label string) error {
			return media.UploadFile(utc.Ctx, label, evidence)
		},
	}

	tasks := execution.Tasks()
	panel := execution.Parameters()
	taskNames := tasks.TaskNames(utc.Ctx)
	if len(taskNames) == 0 {
		utc.Fail(nil, "No tasks found in job %s", execution.JobCode())
	}
	utc.Log("Job %s has %d tasks", execution.JobCode(), len(taskNames))

	for _, taskName := range taskNames {
		if err := tasks.SelectTask(utc.Ctx, taskName); err != nil {
			utc.Fail(err, "Failed to select task %s", taskName)
		}
		utc.Screenshot("task_" + taskName)

		for _, label := range panel.Labels(utc.Ctx) {
			fill, ok := fillers[label]
			if !ok {
				utc.Log("No filler for parameter %q, skipping", label)
				continue
			}
			panel.ScrollToLabel(utc.Ctx, label)
			if err := fill(label); err != nil {
				utc.Fail(err, "Failed to fill parameter %q in task %s", label, taskName)
			}
			utc.Log("Filled parameter %q", label)
		}

		utc.Screenshot("task_filled_" + taskName)
		if err := execution.CompleteTask(utc.Ctx); err != nil {
			utc.Fail(err, "Failed to complete task %s", taskName)
		}
	}

	if err := execution.CompleteJob(utc.Ctx); err != nil {
		utc.Fail(err, "Failed to complete job %s", execution.JobCode())
	}
	utc.Screenshot("job_completed")

	if state := execution.State(utc.Ctx); state != models.JobCompleted {
		utc.Fail(nil, "Job %s ended in state %s", execution.JobCode(), state)
	}
}

// TestJobStateTransitions checks the unassigned -> in progress transition
// in isolation.
func TestJobStateTransitions(t *testing.T) {
	utc := NewUITestContext(t, MaxUITestTimeout)
	defer utc.Cleanup()

	home := utc.LoginAs(models.RoleOperator)
	creation := utc.OpenProcess(home, processName())

	execution, jobCode, err := creation.CreateJob(utc.Ctx)
	if err != nil {
		utc.Fail(err, "Failed to create job")
	}
	if jobCode != "" {
		utc.Registry.Register(jobCode, t.Name(), "state transition check")
	}

	if state := execution.State(utc.Ctx); state != models.JobUnassigned {
		utc.Log("Fresh job reported state %s", state)
	}

	if err := execution.StartJob(utc.Ctx); err != nil {
		utc.Fail(err, "Failed to start job %s", jobCode)
	}

	if state := execution.State(utc.Ctx); state != models.JobInProgress {
		utc.Fail(nil, "Job %s should be IN_PROGRESS after start, got %s", jobCode, state)
	}
	utc.Screenshot("in_progress")

	// Starting an already started job must be a no-op.
	if err := execution.StartJob(utc.Ctx); err != nil {
		utc.Fail(err, "Re-starting an in-progress job should not error")
	}
}

func writeEvidenceFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "evidence.png")
	// Minimal 1x1 PNG.
	png := []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		t.Fatalf("Failed to write evidence file: %v", err)
	}
	return path
}
