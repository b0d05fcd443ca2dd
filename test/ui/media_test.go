package ui

import (
	"testing"

	"github.com/ternarybob/dwitest/internal/models"
	"github.com/ternarybob/dwitest/internal/params"
)

// TestMediaCameraCapture exercises the camera path of a media parameter:
// the session launches with a fake video device, so the live feed becomes
// ready without hardware.
func TestMediaCameraCapture(t *testing.T) {
	utc := NewUITestContext(t, MaxUITestTimeout)
	defer utc.Cleanup()

	home := utc.LoginAs(models.RoleOperator)
	creation := utc.OpenProcess(home, processName())
	execution := utc.CreateJob(creation)

	panel := execution.Parameters()
	const label = "Evidence"
	if !hasLabel(panel.Labels(utc.Ctx), label) {
		t.Skipf("Process has no %q parameter, skipping camera capture", label)
	}

	media := params.NewMedia(utc.Session, utc.Env.Config.ElementTimeout())
	if err := media.CameraCapture(utc.Ctx, label, "Automated capture", "Captured by the UI suite"); err != nil {
		utc.Fail(err, "Camera capture failed")
	}
	utc.Screenshot("camera_capture")

	if !media.Verify(utc.Ctx, label, "Automated capture") {
		utc.Fail(nil, "Captured photo not attached to %q", label)
	}
}

// TestDateTodayShortcut fills a date parameter through the calendar's
// Today shortcut instead of typing.
func TestDateTodayShortcut(t *testing.T) {
	utc := NewUITestContext(t, MaxUITestTimeout)
	defer utc.Cleanup()

	home := utc.LoginAs(models.RoleOperator)
	creation := utc.OpenProcess(home, processName())
	execution := utc.CreateJob(creation)

	panel := execution.Parameters()
	const label = "Cleaning Date"
	if !hasLabel(panel.Labels(utc.Ctx), label) {
		t.Skipf("Process has no %q parameter, skipping date picker", label)
	}

	date := params.NewDate(utc.Session, utc.Env.Config.ElementTimeout())
	if err := date.PickToday(utc.Ctx, label); err != nil {
		utc.Fail(err, "Today shortcut failed")
	}
	utc.Screenshot("date_today")
}
