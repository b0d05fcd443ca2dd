// Package cleaner removes test-run artifacts: screenshots, logs, videos,
// browser cache directories and the job registry. Each step is independent;
// one failing step never stops the others.
package cleaner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/common"
	"github.com/ternarybob/dwitest/internal/jobs"
)

// Options selects which artifact groups to clean. Zero-value Options with
// All false cleans nothing; callers translate "no flags" into All.
type Options struct {
	Screenshots bool
	Logs        bool
	Videos      bool
	Cache       bool
	Jobs        bool
	All         bool

	// MaxAgeDays keeps files newer than this many days. Zero removes
	// everything selected.
	MaxAgeDays int
}

// StepResult records one cleaning step's outcome.
type StepResult struct {
	Step    string
	Removed int
	Err     error
}

// Cleaner walks the configured output directories and removes expired
// artifacts.
type Cleaner struct {
	config *common.Config
	log    arbor.ILogger
}

func New(config *common.Config) *Cleaner {
	return &Cleaner{
		config: config,
		log:    common.GetLogger(),
	}
}

// Run executes the selected steps and returns every step's result. The
// error return is non-nil only when at least one step failed, and it never
// short-circuits the remaining steps.
func (c *Cleaner) Run(opts Options) ([]StepResult, error) {
	cutoff := time.Now().Add(-time.Duration(opts.MaxAgeDays) * 24 * time.Hour)

	var results []StepResult
	add := func(step string, removed int, err error) {
		results = append(results, StepResult{Step: step, Removed: removed, Err: err})
		if err != nil {
			c.log.Warn().Str("step", step).Err(err).Msg("Cleanup step failed")
		} else {
			c.log.Info().Str("step", step).Int("removed", removed).Msg("Cleanup step done")
		}
	}

	if opts.All || opts.Screenshots {
		removed, err := removeFilesOlderThan(c.config.Output.ScreenshotsDir, cutoff)
		add("screenshots", removed, err)
	}
	if opts.All || opts.Logs {
		removed, err := removeFilesOlderThan(c.config.Output.LogsDir, cutoff)
		add("logs", removed, err)
	}
	if opts.All || opts.Videos {
		removed, err := removeFilesOlderThan(c.config.Output.VideosDir, cutoff)
		add("videos", removed, err)
	}
	if opts.All || opts.Cache {
		removed, err := removeCacheDirs(c.config.Output.ResultsDir, cutoff)
		add("cache", removed, err)
	}
	if opts.All || opts.Jobs {
		removed, err := c.pruneJobs(cutoff, opts.MaxAgeDays)
		add("jobs", removed, err)
	}

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d cleanup steps failed", failed, len(results))
	}
	return results, nil
}

func (c *Cleaner) pruneJobs(cutoff time.Time, maxAgeDays int) (int, error) {
	registry, err := jobs.NewRegistry(c.config.Output.ResultsDir)
	if err != nil {
		return 0, err
	}
	if maxAgeDays == 0 {
		records, err := registry.List()
		if err != nil {
			return 0, err
		}
		if err := registry.Clear(); err != nil {
			return 0, err
		}
		return len(records), nil
	}
	return registry.PruneOlderThan(cutoff)
}

// removeFilesOlderThan deletes regular files under dir whose modification
// time is before the cutoff. A missing directory is not an error.
func removeFilesOlderThan(dir string, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	removed := 0
	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}
	return removed, firstErr
}

// removeCacheDirs deletes per-run browser cache directories under the
// results directory. Cache directories are recognized by name prefix.
func removeCacheDirs(resultsDir string, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(resultsDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", resultsDir, err)
	}

	removed := 0
	var firstErr error
	for _, entry := range entries {
		if !entry.IsDir() || !isCacheDirName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(resultsDir, entry.Name())); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}
	return removed, firstErr
}

func isCacheDirName(name string) bool {
	for _, prefix := range []string{"chrome-profile-", "browser-cache-", ".cache"} {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
