package browser

import (
	"fmt"
	"sync"

	"github.com/gobwas/glob"
)

// CaptureConfig controls which network requests are recorded. URL patterns
// are glob patterns matched against the full request URL (e.g.
// "*://api.example.com/*"). Resource types are Playwright resource types such
// as "document", "xhr", "fetch", "script", "image".
type CaptureConfig struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	IncludePatterns []string `json:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns" yaml:"exclude_patterns"`
	IncludeTypes    []string `json:"include_types" yaml:"include_types"`
	ExcludeTypes    []string `json:"exclude_types" yaml:"exclude_types"`
	CapturePostData bool     `json:"capture_post_data" yaml:"capture_post_data"`
}

// DefaultCaptureConfig captures everything, post data included.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Enabled:         true,
		CapturePostData: true,
	}
}

// CaptureFilter applies a CaptureConfig to incoming requests. Safe for
// concurrent use: event callbacks read it while tool calls update it.
type CaptureFilter struct {
	mu      sync.RWMutex
	config  CaptureConfig
	include []glob.Glob
	exclude []glob.Glob
}

// NewCaptureFilter compiles the given config into a filter.
func NewCaptureFilter(cfg CaptureConfig) (*CaptureFilter, error) {
	f := &CaptureFilter{}
	if err := f.Update(cfg); err != nil {
		return nil, err
	}
	return f, nil
}

// Update replaces the filter's configuration. Patterns are compiled up front
// so an invalid pattern is rejected without disturbing the current config.
func (f *CaptureFilter) Update(cfg CaptureConfig) error {
	include, err := compilePatterns(cfg.IncludePatterns)
	if err != nil {
		return err
	}
	exclude, err := compilePatterns(cfg.ExcludePatterns)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.config = cfg
	f.include = include
	f.exclude = exclude
	return nil
}

// Config returns a copy of the current configuration.
func (f *CaptureFilter) Config() CaptureConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()

	cfg := f.config
	cfg.IncludePatterns = append([]string(nil), f.config.IncludePatterns...)
	cfg.ExcludePatterns = append([]string(nil), f.config.ExcludePatterns...)
	cfg.IncludeTypes = append([]string(nil), f.config.IncludeTypes...)
	cfg.ExcludeTypes = append([]string(nil), f.config.ExcludeTypes...)
	return cfg
}

// ShouldCapture reports whether a request with the given URL and resource
// type passes the filter.
func (f *CaptureFilter) ShouldCapture(url, resourceType string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.config.Enabled {
		return false
	}

	if len(f.config.IncludeTypes) > 0 && !containsString(f.config.IncludeTypes, resourceType) {
		return false
	}
	if containsString(f.config.ExcludeTypes, resourceType) {
		return false
	}

	if len(f.include) > 0 {
		matched := false
		for _, g := range f.include {
			if g.Match(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, g := range f.exclude {
		if g.Match(url) {
			return false
		}
	}

	return true
}

// CapturePostData reports whether request bodies should be recorded.
func (f *CaptureFilter) CapturePostData() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.config.CapturePostData
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid URL pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
