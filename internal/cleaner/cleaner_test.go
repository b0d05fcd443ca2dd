package cleaner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dwitest/internal/common"
	"github.com/ternarybob/dwitest/internal/jobs"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	root := t.TempDir()

	config := common.NewDefaultConfig()
	config.Output.ResultsDir = root
	config.Output.ScreenshotsDir = filepath.Join(root, "screenshots")
	config.Output.LogsDir = filepath.Join(root, "logs")
	config.Output.VideosDir = filepath.Join(root, "videos")

	for _, dir := range []string{config.Output.ScreenshotsDir, config.Output.LogsDir, config.Output.VideosDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	return config
}

func writeAgedFile(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestRunRemovesOldFilesKeepsRecent(t *testing.T) {
	config := testConfig(t)
	oldFile := filepath.Join(config.Output.ScreenshotsDir, "01_login.png")
	newFile := filepath.Join(config.Output.ScreenshotsDir, "02_home.png")
	writeAgedFile(t, oldFile, 48*time.Hour)
	writeAgedFile(t, newFile, time.Hour)

	results, err := New(config).Run(Options{Screenshots: true, MaxAgeDays: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "screenshots", results[0].Step)
	assert.Equal(t, 1, results[0].Removed)

	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, newFile)
}

func TestRunDaysZeroRemovesYesterdaysFile(t *testing.T) {
	config := testConfig(t)
	yesterday := filepath.Join(config.Output.LogsDir, "dwitest.log")
	writeAgedFile(t, yesterday, 24*time.Hour)

	_, err := New(config).Run(Options{Logs: true, MaxAgeDays: 0})
	require.NoError(t, err)

	assert.NoFileExists(t, yesterday)
}

func TestRunLargeDaysKeepsEverything(t *testing.T) {
	config := testConfig(t)
	yesterday := filepath.Join(config.Output.VideosDir, "run.webm")
	writeAgedFile(t, yesterday, 24*time.Hour)

	results, err := New(config).Run(Options{Videos: true, MaxAgeDays: 9999})
	require.NoError(t, err)
	assert.Zero(t, results[0].Removed)
	assert.FileExists(t, yesterday)
}

func TestRunAllCoversEveryStep(t *testing.T) {
	config := testConfig(t)

	results, err := New(config).Run(Options{All: true})
	require.NoError(t, err)

	var steps []string
	for _, result := range results {
		steps = append(steps, result.Step)
	}
	assert.Equal(t, []string{"screenshots", "logs", "videos", "cache", "jobs"}, steps)
}

func TestRunClearsJobRegistry(t *testing.T) {
	config := testConfig(t)

	registry, err := jobs.NewRegistry(config.Output.ResultsDir)
	require.NoError(t, err)
	require.NoError(t, registry.Register("JOB-1", "TestOne", ""))

	results, err := New(config).Run(Options{Jobs: true})
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].Removed)

	records, err := registry.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunRemovesCacheDirs(t *testing.T) {
	config := testConfig(t)
	cacheDir := filepath.Join(config.Output.ResultsDir, "chrome-profile-abc")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	stamp := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(cacheDir, stamp, stamp))

	keepDir := filepath.Join(config.Output.ResultsDir, "reports")
	require.NoError(t, os.MkdirAll(keepDir, 0755))
	require.NoError(t, os.Chtimes(keepDir, stamp, stamp))

	_, err := New(config).Run(Options{Cache: true, MaxAgeDays: 1})
	require.NoError(t, err)

	assert.NoDirExists(t, cacheDir)
	assert.DirExists(t, keepDir)
}

func TestRunMissingDirectoriesAreNotErrors(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, os.RemoveAll(config.Output.ScreenshotsDir))

	results, err := New(config).Run(Options{Screenshots: true})
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.Zero(t, results[0].Removed)
}

func TestRunStepFailureDoesNotStopOthers(t *testing.T) {
	config := testConfig(t)
	// A file where the registry expects its directory makes the jobs step
	// fail while the others still run.
	config.Output.ResultsDir = filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(config.Output.ResultsDir, []byte("x"), 0644))

	old := filepath.Join(config.Output.ScreenshotsDir, "01_login.png")
	writeAgedFile(t, old, 48*time.Hour)

	results, err := New(config).Run(Options{Screenshots: true, Jobs: true, MaxAgeDays: 1})
	require.Error(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Removed)
	assert.Error(t, results[1].Err)
	assert.NoFileExists(t, old)
}
