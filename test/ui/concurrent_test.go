package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/models"
	"github.com/ternarybob/dwitest/internal/pages"
	"github.com/ternarybob/dwitest/test/common"
)

// TestConcurrentSessions logs two roles in through two isolated browser
// sessions at the same time. Sessions share nothing, so neither side may
// see the other's state, and no goroutines may outlive the test.
func TestConcurrentSessions(t *testing.T) {
	defer goleak.VerifyNone(t,
		// chromedp keeps browser-lifecycle goroutines until process exit.
		goleak.IgnoreTopFunction("github.com/chromedp/chromedp.(*Browser).run"),
		goleak.IgnoreTopFunction("github.com/chromedp/chromedp/internal/goroutine.init.0.func1"),
	)

	env, err := common.SetupTestEnvironment("TestConcurrentSessions")
	if err != nil {
		t.Fatalf("Failed to setup test environment: %v", err)
	}
	defer env.Cleanup()

	if err := common.CheckTargetReachable(env.BaseURL()); err != nil {
		t.Skipf("Skipping UI test: %v", err)
	}

	roles := []models.Role{models.RoleOperator, models.RoleSupervisor}
	errs := make([]error, len(roles))
	var wg sync.WaitGroup

	for i, role := range roles {
		wg.Add(1)
		go func(i int, role models.Role) {
			defer wg.Done()
			errs[i] = loginFlow(env, role)
		}(i, role)
	}
	wg.Wait()

	for i, role := range roles {
		if errs[i] != nil {
			t.Errorf("Session for %s failed: %v", role, errs[i])
		} else {
			env.LogTest(t, "Session for %s reached home", role)
		}
	}
}

// loginFlow drives one role through login and facility selection in its
// own session.
func loginFlow(env *common.TestEnvironment, role models.Role) error {
	creds, ok := env.Credentials.For(role)
	if !ok {
		return fmt.Errorf("no credentials stored for role %s", role)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	session, err := browser.NewSession(ctx, env.BrowserConfig)
	if err != nil {
		return err
	}
	defer session.Close()

	drv := pages.NewDriver(session, env.BaseURL(), env.Config.ElementTimeout())
	login := pages.NewLoginPage(drv)
	if err := login.Open(session.Ctx); err != nil {
		return err
	}
	facility, err := login.Login(session.Ctx, creds)
	if err != nil {
		return err
	}
	_, err = facility.SelectFacility(session.Ctx, env.Config.Target.Facility)
	return err
}
