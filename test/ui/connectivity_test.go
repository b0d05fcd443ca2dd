package ui

import (
	"net/http"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ternarybob/dwitest/test/common"
)

// TestTargetConnectivity verifies the platform is reachable before the
// browser suites run. All other UI tests skip themselves when this fails.
func TestTargetConnectivity(t *testing.T) {
	env, err := common.SetupTestEnvironment("TestTargetConnectivity")
	if err != nil {
		t.Fatalf("Failed to setup test environment: %v", err)
	}
	defer env.Cleanup()

	baseURL := env.BaseURL()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL)
	if err != nil {
		t.Skipf("Target not accessible at %s: %v - browser tests will be skipped", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		t.Fatalf("Target returned status %d at %s", resp.StatusCode, baseURL)
	}
	env.LogTest(t, "Target reachable at %s (status %d)", baseURL, resp.StatusCode)

	utc := NewUITestContext(t, 2*time.Minute)
	defer utc.Cleanup()

	var title string
	if err := chromedp.Run(utc.Ctx,
		chromedp.Navigate(baseURL+"/auth/login"),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Title(&title),
	); err != nil {
		utc.Fail(err, "Login page failed to load in browser")
	}
	utc.Screenshot("login_page")
	utc.Log("Login page loaded (title: %s)", title)
}
