package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "https://qa.platform.leucinetech.com", config.Target.BaseURL)
	assert.Equal(t, "test-results", config.Output.ResultsDir)
	assert.Equal(t, 30*time.Second, config.DefaultTimeout())
	assert.Equal(t, 60*time.Second, config.NavigationTimeout())
	assert.Equal(t, 500*time.Millisecond, config.PollInterval())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[target]
base_url = "https://staging.example.com"
facility = "Melbourne"

[timeouts]
default_seconds = 45
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", config.Target.BaseURL)
	assert.Equal(t, "Melbourne", config.Target.Facility)
	assert.Equal(t, 45*time.Second, config.DefaultTimeout())
	// Untouched sections keep their defaults
	assert.Equal(t, 10*time.Second, config.ElementTimeout())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("DWITEST_BASE_URL", "https://env.example.com")
	t.Setenv("DWITEST_DEFAULT_TIMEOUT_SECONDS", "90")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", config.Target.BaseURL)
	assert.Equal(t, 90*time.Second, config.DefaultTimeout())
}

func TestLoadConfig_InvalidTimeoutRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timeouts]\ndefault_seconds = 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadBrowserConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadBrowserConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.True(t, config.Headless)
	assert.Equal(t, time.Duration(0), config.SlowMo())
	assert.Equal(t, 30000, config.Timeouts.DefaultMs)
}

func TestLoadBrowserConfig_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"headless": false, "slowMo": 100, "timeouts": {"default": 20000, "navigation": 40000, "element": 8000}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadBrowserConfig(path)
	require.NoError(t, err)

	assert.False(t, config.Headless)
	assert.Equal(t, 100*time.Millisecond, config.SlowMo())
	assert.Equal(t, 40000, config.Timeouts.NavigationMs)
}
