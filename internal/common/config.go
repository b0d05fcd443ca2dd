package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the harness configuration loaded from test/config.toml. It
// covers output locations, timeout budgets and logging; everything about
// the target application itself lives in the JSON data files (see
// credentials.go and browser.go).
type Config struct {
	Target  TargetConfig  `toml:"target"`
	Output  OutputConfig  `toml:"output"`
	Timeout TimeoutConfig `toml:"timeouts"`
	Logging LoggingConfig `toml:"logging"`
}

type TargetConfig struct {
	BaseURL  string `toml:"base_url" validate:"required,url"`
	Facility string `toml:"facility"`
	UseCase  string `toml:"use_case"`
}

type OutputConfig struct {
	ResultsDir     string `toml:"results_dir" validate:"required"`
	ScreenshotsDir string `toml:"screenshots_dir"`
	LogsDir        string `toml:"logs_dir"`
	ReportsDir     string `toml:"reports_dir"`
	VideosDir      string `toml:"videos_dir"`
}

type TimeoutConfig struct {
	DefaultSeconds    int `toml:"default_seconds" validate:"gt=0"`
	NavigationSeconds int `toml:"navigation_seconds" validate:"gt=0"`
	ElementSeconds    int `toml:"element_seconds" validate:"gt=0"`
	ShortSeconds      int `toml:"short_seconds" validate:"gt=0"`
	LongSeconds       int `toml:"long_seconds" validate:"gt=0"`
	PollIntervalMs    int `toml:"poll_interval_ms" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`
	Output []string `toml:"output"`
}

// NewDefaultConfig returns the built-in defaults. A missing config file is
// not an error; the defaults match the checked-in test/config.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			BaseURL:  "https://qa.platform.leucinetech.com",
			Facility: "Sydney",
			UseCase:  "Cleaning",
		},
		Output: OutputConfig{
			ResultsDir:     "test-results",
			ScreenshotsDir: "test-results/screenshots",
			LogsDir:        "test-results/logs",
			ReportsDir:     "test-results/reports",
			VideosDir:      "test-results/videos",
		},
		Timeout: TimeoutConfig{
			DefaultSeconds:    30,
			NavigationSeconds: 60,
			ElementSeconds:    10,
			ShortSeconds:      5,
			LongSeconds:       120,
			PollIntervalMs:    500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"console", "file"},
		},
	}
}

// LoadConfig loads configuration with precedence: defaults, then the TOML
// file (when present), then DWITEST_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DWITEST_BASE_URL"); v != "" {
		config.Target.BaseURL = v
	}
	if v := os.Getenv("DWITEST_FACILITY"); v != "" {
		config.Target.Facility = v
	}
	if v := os.Getenv("DWITEST_USE_CASE"); v != "" {
		config.Target.UseCase = v
	}
	if v := os.Getenv("DWITEST_RESULTS_DIR"); v != "" {
		config.Output.ResultsDir = v
	}
	if v := os.Getenv("DWITEST_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("DWITEST_DEFAULT_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.Timeout.DefaultSeconds = secs
		}
	}
}

// DefaultTimeout returns the default per-operation timeout as a duration.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.Timeout.DefaultSeconds) * time.Second
}

// NavigationTimeout returns the page-navigation timeout.
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.Timeout.NavigationSeconds) * time.Second
}

// ElementTimeout returns the element-wait timeout.
func (c *Config) ElementTimeout() time.Duration {
	return time.Duration(c.Timeout.ElementSeconds) * time.Second
}

// ShortTimeout returns the short settle timeout.
func (c *Config) ShortTimeout() time.Duration {
	return time.Duration(c.Timeout.ShortSeconds) * time.Second
}

// LongTimeout returns the long-poll budget used for job monitoring.
func (c *Config) LongTimeout() time.Duration {
	return time.Duration(c.Timeout.LongSeconds) * time.Second
}

// PollInterval returns the DOM polling interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Timeout.PollIntervalMs) * time.Millisecond
}
