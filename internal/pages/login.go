package pages

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/models"
)

// LoginPage is the entry state of the navigation machine.
type LoginPage struct {
	drv *Driver
}

// NewLoginPage creates the login page object.
func NewLoginPage(drv *Driver) *LoginPage {
	return &LoginPage{drv: drv}
}

// Open navigates to the login screen.
func (p *LoginPage) Open(ctx context.Context) error {
	url := p.drv.BaseURL + "/auth/login"
	if err := p.drv.Session.Navigate(ctx, url, p.drv.Timeout); err != nil {
		return browser.NewFlowError("login", "open", err)
	}
	if !p.drv.Session.WaitVisible(ctx, "#username", p.drv.Timeout) {
		return browser.NewFlowError("login", "open", fmt.Errorf("username field never rendered"))
	}
	return nil
}

// Login signs in with the given credentials and lands on facility
// selection.
func (p *LoginPage) Login(ctx context.Context, creds models.Credentials) (*FacilitySelectionPage, error) {
	const flow = "login"

	if !p.drv.Session.Fill(ctx, "#username", creds.Username, p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "username", fmt.Errorf("username field did not accept input"))
	}
	if !p.drv.Session.Fill(ctx, "#password", creds.Password, p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "password", fmt.Errorf("password field did not accept input"))
	}
	if !p.drv.Session.ClickButtonByText(ctx, "Continue", p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "continue", fmt.Errorf("Continue control not found"))
	}

	p.drv.log.Info().Str("username", creds.Username).Msg("Logged in")
	return &FacilitySelectionPage{drv: p.drv}, nil
}
