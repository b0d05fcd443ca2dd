package common

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// BrowserConfig mirrors data/config.json: browser launch options plus the
// timeout defaults the target-app flows use. Read-only.
type BrowserConfig struct {
	Headless bool `json:"headless"`
	SlowMoMs int  `json:"slowMo"`
	Timeouts struct {
		DefaultMs    int `json:"default"`
		NavigationMs int `json:"navigation"`
		ElementMs    int `json:"element"`
	} `json:"timeouts"`
}

// NewDefaultBrowserConfig returns launch defaults used when data/config.json
// is absent: headless with no slow-motion delay.
func NewDefaultBrowserConfig() *BrowserConfig {
	cfg := &BrowserConfig{Headless: true}
	cfg.Timeouts.DefaultMs = 30000
	cfg.Timeouts.NavigationMs = 60000
	cfg.Timeouts.ElementMs = 10000
	return cfg
}

// LoadBrowserConfig reads browser launch options from a JSON file. A missing
// file yields the defaults.
func LoadBrowserConfig(path string) (*BrowserConfig, error) {
	config := NewDefaultBrowserConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read browser config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse browser config %s: %w", path, err)
	}

	return config, nil
}

// SlowMo returns the per-action delay, zero when disabled.
func (c *BrowserConfig) SlowMo() time.Duration {
	return time.Duration(c.SlowMoMs) * time.Millisecond
}
