// Package config loads the server configuration from a YAML file with sane
// defaults for every field, so running with no config file at all works.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
)

// Config holds all server settings.
type Config struct {
	// Headless controls whether new browser sessions run without a window.
	Headless bool `yaml:"headless"`

	// NavigationTimeoutMS bounds open/navigate, in milliseconds.
	NavigationTimeoutMS int `yaml:"navigation_timeout_ms"`

	// WaitUntil is the navigation completion condition:
	// "load", "domcontentloaded" or "networkidle".
	WaitUntil string `yaml:"wait_until"`

	// Viewport is the browser viewport size.
	Viewport Viewport `yaml:"viewport"`

	// MaxConsoleEntries and MaxNetworkEntries cap the capture buffers.
	// Negative means unbounded.
	MaxConsoleEntries int `yaml:"max_console_entries"`
	MaxNetworkEntries int `yaml:"max_network_entries"`

	// Capture is the initial network capture configuration.
	Capture browser.CaptureConfig `yaml:"capture"`
}

// Viewport mirrors browser.Viewport for YAML.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

var validWaitUntil = map[string]bool{
	"load":             true,
	"domcontentloaded": true,
	"networkidle":      true,
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Headless:            true,
		NavigationTimeoutMS: int(browser.DefaultNavigationTimeout / time.Millisecond),
		WaitUntil:           browser.DefaultWaitUntil,
		Viewport: Viewport{
			Width:  browser.DefaultViewportWidth,
			Height: browser.DefaultViewportHeight,
		},
		MaxConsoleEntries: browser.DefaultMaxConsoleEntries,
		MaxNetworkEntries: browser.DefaultMaxNetworkEntries,
		Capture:           browser.DefaultCaptureConfig(),
	}
}

// DefaultPath returns ~/.playwright-monitoring-mcp/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".playwright-monitoring-mcp", "config.yaml"), nil
}

// Load reads the config at path, layered over defaults. A missing file is
// not an error; a malformed or invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.NavigationTimeoutMS <= 0 {
		return fmt.Errorf("navigation_timeout_ms must be positive, got %d", c.NavigationTimeoutMS)
	}
	if !validWaitUntil[c.WaitUntil] {
		return fmt.Errorf("wait_until must be 'load', 'domcontentloaded' or 'networkidle', got %q", c.WaitUntil)
	}
	if c.Viewport.Width < 100 || c.Viewport.Width > 5000 {
		return fmt.Errorf("viewport width must be between 100 and 5000 pixels, got %d", c.Viewport.Width)
	}
	if c.Viewport.Height < 100 || c.Viewport.Height > 5000 {
		return fmt.Errorf("viewport height must be between 100 and 5000 pixels, got %d", c.Viewport.Height)
	}
	return nil
}

// MonitorOptions translates the config into browser monitor options.
func (c *Config) MonitorOptions() browser.MonitorOptions {
	return browser.MonitorOptions{
		Session: browser.SessionOptions{
			Headless:          c.Headless,
			Viewport:          &browser.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height},
			NavigationTimeout: time.Duration(c.NavigationTimeoutMS) * time.Millisecond,
			WaitUntil:         c.WaitUntil,
		},
		Capture:           c.Capture,
		MaxConsoleEntries: c.MaxConsoleEntries,
		MaxNetworkEntries: c.MaxNetworkEntries,
	}
}
