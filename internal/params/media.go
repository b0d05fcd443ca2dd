package params

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ternarybob/dwitest/internal/browser"
)

// Media drives MEDIA parameters. Two independent flows: uploading a file
// from disk through the native file input, and driving the in-page camera
// capture. Camera capture is the most stateful handler: readiness is polled
// before the shutter is pressed, and the post-capture modal is located
// through an ordered candidate list.
type Media struct {
	base
}

// NewMedia creates the MEDIA handler.
func NewMedia(session *browser.Session, timeout time.Duration) *Media {
	return &Media{base: newBase(session, timeout)}
}

var _ Field = (*Media)(nil)

// Fill uploads the file at the given path.
func (m *Media) Fill(ctx context.Context, label, path string) error {
	return m.UploadFile(ctx, label, path)
}

// Verify reports whether an uploaded attachment is rendered.
func (m *Media) Verify(ctx context.Context, label, expected string) bool {
	attachmentCandidates := []browser.Candidate{
		{Selector: "[class*='attachment']", Description: "attachment entry"},
		{Selector: "[class*='media-list'] [class*='item']", Description: "media list item"},
	}
	_, err := m.resolver.Resolve(ctx, "attachment for "+label, attachmentCandidates)
	return err == nil
}

// Enabled reports whether the upload control is present.
func (m *Media) Enabled(ctx context.Context, label string) bool {
	return m.session.IsVisible(ctx, "input[type='file']")
}

// UploadFile hands the file to the parameter's file input.
func (m *Media) UploadFile(ctx context.Context, label, path string) error {
	const flow = "media upload"

	if _, err := os.Stat(path); err != nil {
		return browser.NewFlowError(flow, "source file", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	err := chromedp.Run(opCtx,
		chromedp.SetUploadFiles("input[type='file']", []string{path}, chromedp.ByQuery),
	)
	if err != nil {
		return browser.NewFlowError(flow, "file input", err)
	}

	m.log.Debug().Str("label", label).Str("path", path).Msg("File handed to upload input")
	return nil
}

// CameraCapture runs the camera flow: open, wait for the live feed, press
// the shutter, name the capture in the follow-up modal, save.
func (m *Media) CameraCapture(ctx context.Context, label, name, description string) error {
	const flow = "camera capture"

	openCandidates := []browser.Candidate{
		{Selector: "button[aria-label*='camera']", Description: "camera button by aria label"},
		{Selector: "[class*='camera'] button", Description: "button inside camera widget"},
	}
	openSel, err := m.resolver.ResolveWithin(ctx, "camera control", openCandidates, m.timeout)
	if err != nil {
		if !m.session.ClickButtonByText(ctx, "Open Camera", m.timeout) {
			return browser.NewFlowError(flow, "open camera", err)
		}
	} else if !m.session.Click(ctx, openSel, m.timeout) {
		return browser.NewFlowError(flow, "open camera", fmt.Errorf("camera control did not accept a click"))
	}

	if err := m.waitForLiveFeed(ctx); err != nil {
		return browser.NewFlowError(flow, "live feed", err)
	}

	captureCandidates := []browser.Candidate{
		{Selector: "button[aria-label*='capture']", Description: "capture button by aria label"},
		{Selector: "[class*='capture'] button", Description: "button inside capture widget"},
		{Selector: "[class*='camera'] button[class*='primary']", Description: "primary button in camera widget"},
	}
	captureSel, err := m.resolver.ResolveWithin(ctx, "capture control", captureCandidates, m.timeout)
	if err != nil {
		if !m.session.ClickButtonByText(ctx, "Capture", m.timeout) {
			return browser.NewFlowError(flow, "capture", err)
		}
	} else if !m.session.Click(ctx, captureSel, m.timeout) {
		return browser.NewFlowError(flow, "capture", fmt.Errorf("capture control did not accept a click"))
	}

	if err := m.fillCaptureModal(ctx, name, description); err != nil {
		return err
	}

	if !m.session.ClickButtonByText(ctx, "Save", m.timeout) {
		return browser.NewFlowError(flow, "save", fmt.Errorf("Save control not found"))
	}
	return nil
}

// waitForLiveFeed polls the video element until it reports playable data.
func (m *Media) waitForLiveFeed(ctx context.Context) error {
	return m.session.PollUntil(ctx, browser.PollOptions{
		Timeout:  m.timeout,
		Interval: 500 * time.Millisecond,
	}, func(pollCtx context.Context) (bool, error) {
		var ready bool
		script := `(() => {
			const video = document.querySelector('video');
			return !!video && video.readyState >= 2;
		})()`
		if err := chromedp.Run(pollCtx, chromedp.Evaluate(script, &ready)); err != nil {
			return false, nil
		}
		return ready, nil
	})
}

// fillCaptureModal locates the post-capture modal and fills name and
// description.
func (m *Media) fillCaptureModal(ctx context.Context, name, description string) error {
	const flow = "camera capture"

	modalCandidates := []browser.Candidate{
		{Selector: "[role='dialog'] input", Description: "input inside dialog"},
		{Selector: "[class*='modal'] input[placeholder*='ame']", Description: "name input inside modal"},
		{Selector: "[class*='modal'] input", Description: "first input inside modal"},
	}
	nameSel, err := m.resolver.ResolveWithin(ctx, "capture name input", modalCandidates, m.timeout)
	if err != nil {
		return browser.NewFlowError(flow, "capture modal", err)
	}
	if !m.session.Fill(ctx, nameSel, name, m.timeout) {
		return browser.NewFlowError(flow, "capture name", fmt.Errorf("name field did not accept input"))
	}

	if description != "" {
		descCandidates := []browser.Candidate{
			{Selector: "[role='dialog'] textarea", Description: "textarea inside dialog"},
			{Selector: "[class*='modal'] textarea", Description: "textarea inside modal"},
			{Selector: "[role='dialog'] input", Description: "second input inside dialog", Nth: 1},
		}
		descSel, err := m.resolver.ResolveWithin(ctx, "capture description input", descCandidates, m.timeout)
		if err == nil {
			if !m.session.Fill(ctx, descSel, description, m.timeout) {
				m.log.Warn().Msg("Capture description field did not accept input")
			}
		}
	}
	return nil
}
