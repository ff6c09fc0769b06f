package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// GetCaptureConfigTool reads back the current network capture configuration.
type GetCaptureConfigTool struct {
	monitor *browser.Monitor
}

// NewGetCaptureConfigTool creates a new get_network_capture_config tool.
func NewGetCaptureConfigTool(monitor *browser.Monitor) *GetCaptureConfigTool {
	return &GetCaptureConfigTool{monitor: monitor}
}

// Name returns the tool name.
func (t *GetCaptureConfigTool) Name() string {
	return "get_network_capture_config"
}

// Description returns the tool description.
func (t *GetCaptureConfigTool) Description() string {
	return "Get the current network request capture configuration."
}

// Schema returns the tool's JSON schema.
func (t *GetCaptureConfigTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute returns the configuration as JSON.
func (t *GetCaptureConfigTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	out, err := json.MarshalIndent(t.monitor.CaptureConfig(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing capture config: %w", err)
	}
	return string(out), nil
}
