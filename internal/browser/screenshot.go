package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/common"
)

// Shooter writes sequentially numbered full-page screenshots into one
// test's results directory, so the directory listing reads as a storyboard
// of the run.
type Shooter struct {
	dir string
	log arbor.ILogger

	mu  sync.Mutex
	seq int
}

// NewShooter creates a shooter writing into dir, creating it if needed.
func NewShooter(dir string) (*Shooter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot directory %s: %w", dir, err)
	}
	return &Shooter{dir: dir, log: common.GetLogger()}, nil
}

// Capture takes a full-page screenshot named NN_<name>.png. Failures are
// logged, never fatal: a missing screenshot should not fail the test that
// asked for it.
func (sh *Shooter) Capture(ctx context.Context, name string) string {
	sh.mu.Lock()
	sh.seq++
	filename := fmt.Sprintf("%02d_%s.png", sh.seq, name)
	sh.mu.Unlock()

	path := filepath.Join(sh.dir, filename)

	var buf []byte
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		sh.log.Warn().Str("name", name).Err(err).Msg("Screenshot capture failed")
		return ""
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		sh.log.Warn().Str("path", path).Err(err).Msg("Screenshot write failed")
		return ""
	}

	sh.log.Debug().Str("path", path).Msg("Screenshot saved")
	return path
}

// Dir returns the directory the shooter writes into.
func (sh *Shooter) Dir() string {
	return sh.dir
}
