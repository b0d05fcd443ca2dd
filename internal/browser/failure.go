package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// CaptureFailure records the artifacts for a failed test: a screenshot, a
// .txt file with the failure context, and a markdown rendition of the page
// body so the state at failure can be read without opening the image.
func (s *Session) CaptureFailure(ctx context.Context, shooter *Shooter, testName string, failErr error) {
	url := s.CurrentURL(ctx)
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	shooter.Capture(ctx, "failure")

	errText := "unknown"
	if failErr != nil {
		errText = failErr.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Test: %s\n", testName)
	fmt.Fprintf(&b, "Timestamp: %s\n", timestamp)
	fmt.Fprintf(&b, "Error: %s\n", errText)
	fmt.Fprintf(&b, "URL: %s\n", url)

	txtPath := filepath.Join(shooter.Dir(), "failure.txt")
	if err := os.WriteFile(txtPath, []byte(b.String()), 0644); err != nil {
		s.log.Warn().Str("path", txtPath).Err(err).Msg("Failure note write failed")
	}

	if page := s.OuterHTML(ctx, "body"); page != "" {
		converter := md.NewConverter(url, true, nil)
		markdown, err := converter.ConvertString(page)
		if err != nil {
			s.log.Warn().Err(err).Msg("Failure page markdown conversion failed")
			return
		}
		mdPath := filepath.Join(shooter.Dir(), "failure_page.md")
		if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
			s.log.Warn().Str("path", mdPath).Err(err).Msg("Failure page write failed")
		}
	}
}
