package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// GetConsoleLogsTool returns the console messages captured for the open page.
type GetConsoleLogsTool struct {
	monitor *browser.Monitor
}

// NewGetConsoleLogsTool creates a new get_console_logs tool.
func NewGetConsoleLogsTool(monitor *browser.Monitor) *GetConsoleLogsTool {
	return &GetConsoleLogsTool{monitor: monitor}
}

// Name returns the tool name.
func (t *GetConsoleLogsTool) Name() string {
	return "get_console_logs"
}

// Description returns the tool description.
func (t *GetConsoleLogsTool) Description() string {
	return "Get console log entries captured from the open browser page, in emission order. " +
		"Adjacent repeated messages are deduplicated with a count unless dedupe is false."
}

// Schema returns the tool's JSON schema.
func (t *GetConsoleLogsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"last_n": map[string]interface{}{
				"type":        "integer",
				"description": "Return only the most recent N entries (still oldest first). Omit or 0 for all.",
			},
			"dedupe": map[string]interface{}{
				"type":        "boolean",
				"description": "Coalesce adjacent identical messages into one entry with a repeat count. Default: true.",
			},
		},
		nil,
	)
}

// GetConsoleLogsInput represents the query parameters.
type GetConsoleLogsInput struct {
	LastN  int   `json:"last_n"`
	Dedupe *bool `json:"dedupe"`
}

// ConsoleLogsResult is the serialized tool result.
type ConsoleLogsResult struct {
	Entries []browser.ConsoleEntry `json:"entries"`
	Total   int                    `json:"total"`
}

// Execute snapshots the console buffer and returns it as JSON.
func (t *GetConsoleLogsTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input GetConsoleLogsInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return "", fmt.Errorf("invalid parameters: %w", err)
		}
	}
	if input.LastN < 0 {
		return "", fmt.Errorf("last_n must not be negative")
	}

	dedupe := true
	if input.Dedupe != nil {
		dedupe = *input.Dedupe
	}

	entries, err := t.monitor.ConsoleLogs(input.LastN, dedupe)
	if err != nil {
		return "", err
	}

	result := ConsoleLogsResult{
		Entries: entries,
		Total:   len(entries),
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing console logs: %w", err)
	}
	return string(out), nil
}
