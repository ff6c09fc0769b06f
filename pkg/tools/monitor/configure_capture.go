package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// ConfigureCaptureTool updates the network capture configuration. Fields not
// present in the arguments keep their current values, so partial updates are
// safe.
type ConfigureCaptureTool struct {
	monitor *browser.Monitor
}

// NewConfigureCaptureTool creates a new configure_network_capture tool.
func NewConfigureCaptureTool(monitor *browser.Monitor) *ConfigureCaptureTool {
	return &ConfigureCaptureTool{monitor: monitor}
}

// Name returns the tool name.
func (t *ConfigureCaptureTool) Name() string {
	return "configure_network_capture"
}

// Description returns the tool description.
func (t *ConfigureCaptureTool) Description() string {
	return "Configure which network requests are captured: enable/disable capture, filter by URL glob patterns " +
		"or resource types (document, xhr, fetch, script, image, ...), and toggle POST data capture. " +
		"Omitted fields are left unchanged. Applies immediately to the open session."
}

// Schema returns the tool's JSON schema.
func (t *ConfigureCaptureTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"enabled": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether network capture is active at all",
			},
			"include_patterns": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "URL glob patterns; when set, only matching URLs are captured",
			},
			"exclude_patterns": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "URL glob patterns; matching URLs are never captured",
			},
			"include_types": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Resource types to capture; when set, all others are skipped",
			},
			"exclude_types": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Resource types to skip",
			},
			"capture_post_data": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether request POST data is recorded",
			},
		},
		nil,
	)
}

// ConfigureCaptureInput mirrors browser.CaptureConfig with pointer fields so
// absent keys are distinguishable from explicit zero values.
type ConfigureCaptureInput struct {
	Enabled         *bool     `json:"enabled"`
	IncludePatterns *[]string `json:"include_patterns"`
	ExcludePatterns *[]string `json:"exclude_patterns"`
	IncludeTypes    *[]string `json:"include_types"`
	ExcludeTypes    *[]string `json:"exclude_types"`
	CapturePostData *bool     `json:"capture_post_data"`
}

// Execute merges the provided fields into the current configuration.
func (t *ConfigureCaptureTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input ConfigureCaptureInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return "", fmt.Errorf("invalid parameters: %w", err)
		}
	}

	cfg := t.monitor.CaptureConfig()
	if input.Enabled != nil {
		cfg.Enabled = *input.Enabled
	}
	if input.IncludePatterns != nil {
		cfg.IncludePatterns = *input.IncludePatterns
	}
	if input.ExcludePatterns != nil {
		cfg.ExcludePatterns = *input.ExcludePatterns
	}
	if input.IncludeTypes != nil {
		cfg.IncludeTypes = *input.IncludeTypes
	}
	if input.ExcludeTypes != nil {
		cfg.ExcludeTypes = *input.ExcludeTypes
	}
	if input.CapturePostData != nil {
		cfg.CapturePostData = *input.CapturePostData
	}

	if err := t.monitor.ConfigureCapture(cfg); err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(t.monitor.CaptureConfig(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing capture config: %w", err)
	}
	return string(out), nil
}
