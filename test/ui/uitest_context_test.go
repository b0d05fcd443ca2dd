// uitest_context.go - Shared UI test context and helpers.
// NOTE: This is NOT a test file - it contains shared test infrastructure.

package ui

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/jobs"
	"github.com/ternarybob/dwitest/internal/models"
	"github.com/ternarybob/dwitest/internal/pages"
	"github.com/ternarybob/dwitest/test/common"
)

const (
	// MaxUITestTimeout bounds every UI test end to end.
	MaxUITestTimeout = 10 * time.Minute
)

// UITestContext holds shared state for UI tests: the environment, a browser
// session of its own, the page driver and artifact helpers.
type UITestContext struct {
	T        *testing.T
	Env      *common.TestEnvironment
	Ctx      context.Context
	Session  *browser.Session
	Driver   *pages.Driver
	Shooter  *browser.Shooter
	Registry *jobs.Registry

	cleanup []func()
	failErr error
	started time.Time
	jobCode string
}

// NewUITestContext sets up the environment and launches a browser session.
// Skips the test when the target platform is unreachable.
func NewUITestContext(t *testing.T, timeout time.Duration) *UITestContext {
	env, err := common.SetupTestEnvironment(t.Name())
	if err != nil {
		t.Fatalf("Failed to setup test environment: %v", err)
	}

	if err := common.CheckTargetReachable(env.BaseURL()); err != nil {
		env.Cleanup()
		t.Skipf("Skipping UI test: %v", err)
	}

	ctx, cancelTimeout := context.WithTimeout(context.Background(), timeout)

	session, err := browser.NewSession(ctx, env.BrowserConfig)
	if err != nil {
		cancelTimeout()
		env.Cleanup()
		t.Fatalf("Failed to launch browser: %v", err)
	}

	registry, err := jobs.NewRegistry(env.Config.Output.ResultsDir)
	if err != nil {
		session.Close()
		cancelTimeout()
		env.Cleanup()
		t.Fatalf("Failed to open job registry: %v", err)
	}

	shooter, err := browser.NewShooter(env.ResultsDir)
	if err != nil {
		session.Close()
		cancelTimeout()
		env.Cleanup()
		t.Fatalf("Failed to create screenshot directory: %v", err)
	}

	utc := &UITestContext{
		T:        t,
		Env:      env,
		Ctx:      session.Ctx,
		Session:  session,
		Driver:   pages.NewDriver(session, env.BaseURL(), env.Config.ElementTimeout()),
		Shooter:  shooter,
		Registry: registry,
		started:  time.Now(),
	}

	if err := session.EnableDownloads(session.Ctx, env.ResultsDir); err != nil {
		utc.Log("Could not route downloads into results dir: %v", err)
	}

	// Cleanup runs in reverse order.
	utc.cleanup = append(utc.cleanup, env.Cleanup)
	utc.cleanup = append(utc.cleanup, cancelTimeout)
	utc.cleanup = append(utc.cleanup, session.Close)

	return utc
}

// Cleanup records the test outcome, captures failure artifacts, and
// releases all resources. Call this with defer.
func (utc *UITestContext) Cleanup() {
	if utc.T.Failed() {
		utc.Log("=== TEST RESULT: FAIL ===")
		utc.Session.CaptureFailure(utc.Ctx, utc.Shooter, utc.T.Name(), utc.failErr)
	} else {
		utc.Log("=== TEST RESULT: PASS ===")
	}

	recordResult(utc.T, utc.started, utc.jobCode, utc.failErr)

	for i := len(utc.cleanup) - 1; i >= 0; i-- {
		utc.cleanup[i]()
	}
}

// Log writes a message to the test log.
func (utc *UITestContext) Log(format string, args ...interface{}) {
	utc.Env.LogTest(utc.T, format, args...)
}

// Fail marks the test failed and keeps the causing error for the failure
// artifacts.
func (utc *UITestContext) Fail(err error, format string, args ...interface{}) {
	utc.failErr = err
	utc.Log(format, args...)
	utc.T.Fatalf(format+": %v", append(args, err)...)
}

// Screenshot takes a sequentially numbered full-page screenshot.
func (utc *UITestContext) Screenshot(name string) {
	utc.Shooter.Capture(utc.Ctx, name)
}

// LoginAs signs in with the stored credentials for a role and selects the
// configured facility, landing on home.
func (utc *UITestContext) LoginAs(role models.Role) *pages.HomePage {
	creds := utc.Env.CredentialsFor(utc.T, role)

	login := pages.NewLoginPage(utc.Driver)
	if err := login.Open(utc.Ctx); err != nil {
		utc.Fail(err, "Failed to open login page")
	}
	utc.Screenshot("login")

	facility, err := login.Login(utc.Ctx, creds)
	if err != nil {
		utc.Fail(err, "Failed to log in as %s", role)
	}

	home, err := facility.SelectFacility(utc.Ctx, utc.Env.Config.Target.Facility)
	if err != nil {
		utc.Fail(err, "Failed to select facility %s", utc.Env.Config.Target.Facility)
	}
	utc.Screenshot("home")

	utc.Log("Logged in as %s", role)
	return home
}

// OpenProcess navigates home -> use case -> process list -> the named
// process, ready for job creation.
func (utc *UITestContext) OpenProcess(home *pages.HomePage, processName string) *pages.JobCreationPage {
	processList, err := home.SelectUseCase(utc.Ctx, utc.Env.Config.Target.UseCase)
	if err != nil {
		utc.Fail(err, "Failed to select use case %s", utc.Env.Config.Target.UseCase)
	}

	if err := processList.SearchProcess(utc.Ctx, processName); err != nil {
		utc.Fail(err, "Failed to search for process %s", processName)
	}
	utc.Screenshot("process_list")

	creation, err := processList.OpenProcess(utc.Ctx, processName)
	if err != nil {
		utc.Fail(err, "Failed to open process %s", processName)
	}
	return creation
}

// CreateJob creates a job from the process, registers its code and starts
// it.
func (utc *UITestContext) CreateJob(creation *pages.JobCreationPage) *pages.JobExecutionPage {
	execution, jobCode, err := creation.CreateJob(utc.Ctx)
	if err != nil {
		utc.Fail(err, "Failed to create job")
	}
	utc.Screenshot("job_created")

	if jobCode != "" {
		utc.jobCode = jobCode
		if err := utc.Registry.Register(jobCode, utc.T.Name(), ""); err != nil {
			utc.Log("Could not register job %s: %v", jobCode, err)
		}
	}

	if err := execution.StartJob(utc.Ctx); err != nil {
		utc.Fail(err, "Failed to start job %s", jobCode)
	}
	utc.Screenshot("job_started")

	return execution
}
