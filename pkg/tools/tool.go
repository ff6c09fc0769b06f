// Package tools defines the contract between the MCP protocol layer and the
// operations it exposes. Each tool describes itself with a name, description
// and JSON schema, and executes against JSON-encoded arguments.
package tools

import (
	"context"
	"encoding/json"
)

// Tool is a named, schema-described operation invocable by the protocol
// client.
type Tool interface {
	// Name returns the unique identifier for this tool (e.g. "open_browser").
	Name() string

	// Description returns a human-readable description of what this tool
	// does, shown to the model client in tools/list.
	Description() string

	// Schema returns the JSON Schema object describing this tool's input
	// parameters.
	Schema() map[string]interface{}

	// Execute runs the tool with the given JSON arguments and returns a
	// result string for the client. Errors are returned to the client as
	// structured tool failures, never retried.
	Execute(ctx context.Context, args json.RawMessage) (string, error)
}

// BaseToolSchema builds the common JSON schema structure for a tool from its
// properties and required field names.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
