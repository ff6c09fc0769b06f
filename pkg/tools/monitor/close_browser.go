package monitor

import (
	"context"
	"encoding/json"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// CloseBrowserTool closes the monitored browser session and discards the
// captured buffers. Never fails; closing an already-closed session is a
// no-op, so callers can close defensively.
type CloseBrowserTool struct {
	monitor *browser.Monitor
}

// NewCloseBrowserTool creates a new close_browser tool.
func NewCloseBrowserTool(monitor *browser.Monitor) *CloseBrowserTool {
	return &CloseBrowserTool{monitor: monitor}
}

// Name returns the tool name.
func (t *CloseBrowserTool) Name() string {
	return "close_browser"
}

// Description returns the tool description.
func (t *CloseBrowserTool) Description() string {
	return "Close the browser session and discard captured logs. Safe to call at any time, including when no session is open."
}

// Schema returns the tool's JSON schema.
func (t *CloseBrowserTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute closes the session.
func (t *CloseBrowserTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	wasOpen := t.monitor.State() == browser.StateOpen
	t.monitor.Close()

	if !wasOpen {
		return "No browser session was open; nothing to close.", nil
	}
	return "Browser session closed. Captured logs have been discarded.", nil
}
