package monitor

import (
	"context"
	"encoding/json"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// ClearLogsTool discards the captured console and network history without
// closing the browser. Pairs with open_browser's preserve-on-reopen policy.
type ClearLogsTool struct {
	monitor *browser.Monitor
}

// NewClearLogsTool creates a new clear_logs tool.
func NewClearLogsTool(monitor *browser.Monitor) *ClearLogsTool {
	return &ClearLogsTool{monitor: monitor}
}

// Name returns the tool name.
func (t *ClearLogsTool) Name() string {
	return "clear_logs"
}

// Description returns the tool description.
func (t *ClearLogsTool) Description() string {
	return "Discard all captured console logs and network requests for the open browser session. The session stays open and keeps capturing."
}

// Schema returns the tool's JSON schema.
func (t *ClearLogsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute clears the session buffers.
func (t *ClearLogsTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	if err := t.monitor.ClearLogs(); err != nil {
		return "", err
	}
	return "Captured console logs and network requests have been cleared.", nil
}
