package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// OpenBrowserTool opens the monitored browser page at a URL and starts
// capturing its console and network activity.
type OpenBrowserTool struct {
	monitor *browser.Monitor
}

// NewOpenBrowserTool creates a new open_browser tool.
func NewOpenBrowserTool(monitor *browser.Monitor) *OpenBrowserTool {
	return &OpenBrowserTool{monitor: monitor}
}

// Name returns the tool name.
func (t *OpenBrowserTool) Name() string {
	return "open_browser"
}

// Description returns the tool description.
func (t *OpenBrowserTool) Description() string {
	return "Open a browser at the given URL and start monitoring console logs and network requests. " +
		"If the browser is already open this navigates in place and previously captured logs are preserved; " +
		"use clear_logs for a fresh start."
}

// Schema returns the tool's JSON schema.
func (t *OpenBrowserTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to open (must include protocol, e.g. https://example.com)",
			},
			"headless": map[string]interface{}{
				"type":        "boolean",
				"description": "Run the browser without a visible window. Defaults to the server configuration.",
			},
		},
		[]string{"url"},
	)
}

// OpenBrowserInput represents the parameters for opening the browser.
type OpenBrowserInput struct {
	URL      string `json:"url"`
	Headless *bool  `json:"headless"`
}

// Execute opens or re-navigates the monitored page.
func (t *OpenBrowserTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input OpenBrowserInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	if input.URL == "" {
		return "", fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(input.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: invalid url %q (must include protocol and host)", browser.ErrNavigation, input.URL)
	}

	result, err := t.monitor.Open(ctx, input.URL, input.Headless)
	if err != nil {
		return "", err
	}

	if result.Navigated {
		return fmt.Sprintf("Navigated existing browser session to %s. Session state: %s. Previously captured logs are preserved.",
			result.URL, result.StateName), nil
	}
	return fmt.Sprintf("Opened %s in a new browser session. Session state: %s. Console and network monitoring is active.",
		result.URL, result.StateName), nil
}
