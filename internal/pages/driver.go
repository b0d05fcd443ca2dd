// Package pages holds the page objects for the DWI platform. Each page
// object encapsulates the locators and interaction sequences for one
// screen, and transition methods return the next page object, so a test
// script can only reach job-execution calls through the pages that lead
// there: Login -> FacilitySelection -> Home -> {ProcessList -> JobCreation
// -> JobExecution; Sidebar -> Ontology}.
package pages

import (
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/common"
)

// Driver bundles what every page object needs: the browser session, the
// selector resolver, the target base URL and the element-wait budget.
type Driver struct {
	Session  *browser.Session
	Resolver *browser.Resolver
	BaseURL  string
	Timeout  time.Duration

	log arbor.ILogger
}

// NewDriver creates the shared page-object driver.
func NewDriver(session *browser.Session, baseURL string, timeout time.Duration) *Driver {
	return &Driver{
		Session:  session,
		Resolver: browser.NewResolver(session),
		BaseURL:  baseURL,
		Timeout:  timeout,
		log:      common.GetLogger(),
	}
}
