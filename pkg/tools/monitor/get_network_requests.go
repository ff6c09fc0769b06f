package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// GetNetworkRequestsTool returns the network requests captured for the open
// page, pending ones included.
type GetNetworkRequestsTool struct {
	monitor *browser.Monitor
}

// NewGetNetworkRequestsTool creates a new get_network_requests tool.
func NewGetNetworkRequestsTool(monitor *browser.Monitor) *GetNetworkRequestsTool {
	return &GetNetworkRequestsTool{monitor: monitor}
}

// Name returns the tool name.
func (t *GetNetworkRequestsTool) Name() string {
	return "get_network_requests"
}

// Description returns the tool description.
func (t *GetNetworkRequestsTool) Description() string {
	return "Get network requests captured from the open browser page, in arrival order. " +
		"Entries whose response has not arrived yet appear without a response object; " +
		"query again after the response lands to see its status."
}

// Schema returns the tool's JSON schema.
func (t *GetNetworkRequestsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"last_n": map[string]interface{}{
				"type":        "integer",
				"description": "Return only the most recent N entries (still oldest first). Omit or 0 for all.",
			},
		},
		nil,
	)
}

// GetNetworkRequestsInput represents the query parameters.
type GetNetworkRequestsInput struct {
	LastN int `json:"last_n"`
}

// NetworkRequestsResult is the serialized tool result.
type NetworkRequestsResult struct {
	Entries []browser.NetworkEntry `json:"entries"`
	Total   int                    `json:"total"`
	Pending int                    `json:"pending"`
}

// Execute snapshots the network buffer and returns it as JSON.
func (t *GetNetworkRequestsTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input GetNetworkRequestsInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return "", fmt.Errorf("invalid parameters: %w", err)
		}
	}
	if input.LastN < 0 {
		return "", fmt.Errorf("last_n must not be negative")
	}

	entries, err := t.monitor.NetworkRequests(input.LastN)
	if err != nil {
		return "", err
	}

	pending := 0
	for i := range entries {
		if entries[i].Pending() {
			pending++
		}
	}

	result := NetworkRequestsResult{
		Entries: entries,
		Total:   len(entries),
		Pending: pending,
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing network requests: %w", err)
	}
	return string(out), nil
}
