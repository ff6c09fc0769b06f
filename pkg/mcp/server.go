package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/logging"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// Large console payloads can make a single request line sizable; well above
// bufio's default 64KB.
const maxMessageSize = 10 * 1024 * 1024

// Server speaks MCP over a reader/writer pair (stdin/stdout in production).
// Requests are handled strictly one at a time; concurrency exists only
// between a request in flight and browser event callbacks, which the buffer
// layer handles.
type Server struct {
	in       io.Reader
	out      io.Writer
	registry *tools.Registry
	info     ServerInfo
	logger   *logging.Logger
}

// NewServer creates a server that reads requests from in and writes
// responses to out.
func NewServer(in io.Reader, out io.Writer, registry *tools.Registry, info ServerInfo, logger *logging.Logger) *Server {
	return &Server{
		in:       in,
		out:      out,
		registry: registry,
		info:     info,
		logger:   logger,
	}
}

// Serve reads newline-delimited JSON-RPC requests until the input closes or
// the context is cancelled. Responses are written in request order.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, maxMessageSize), maxMessageSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warnf("parse error: %v", err)
			s.write(JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   &JSONRPCError{Code: CodeParseError, Message: "Parse error: " + err.Error()},
			})
			continue
		}

		resp := s.handleRequest(ctx, req)
		if resp != nil {
			s.write(*resp)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// handleRequest dispatches one request. Returns nil for notifications.
func (s *Server) handleRequest(ctx context.Context, req JSONRPCRequest) *JSONRPCResponse {
	s.logger.Debugf("request: method=%s id=%v", req.Method, req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		if req.IsNotification() {
			return nil
		}
		return resultResponse(req.ID, json.RawMessage(`{}`))
	case "ping":
		return resultResponse(req.ID, json.RawMessage(`{}`))
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, CodeMethodNotFound, "Method not found: "+req.Method)
	}
}

func (s *Server) handleInitialize(req JSONRPCRequest) *JSONRPCResponse {
	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      s.info,
		Capabilities:    Capabilities{Tools: ToolsCapability{}},
		Instructions: "Browser monitoring server. Call open_browser with a URL to start capturing " +
			"console logs and network requests, then query them with get_console_logs and get_network_requests.",
	}
	return marshalResult(req.ID, result)
}

func (s *Server) handleToolsList(req JSONRPCRequest) *JSONRPCResponse {
	registered := s.registry.List()
	listed := make([]Tool, 0, len(registered))
	for _, tool := range registered {
		listed = append(listed, Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.Schema(),
		})
	}
	return marshalResult(req.ID, ToolsListResult{Tools: listed})
}

func (s *Server) handleToolsCall(ctx context.Context, req JSONRPCRequest) *JSONRPCResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: "+err.Error())
	}

	tool, ok := s.registry.Get(params.Name)
	if !ok {
		return errorResponse(req.ID, CodeMethodNotFound, "Unknown tool: "+params.Name)
	}

	text, err := tool.Execute(ctx, params.Arguments)
	if err != nil {
		// Tool failures are structured results for the model, not protocol
		// errors. The kind prefix lets the client distinguish state errors
		// from navigation failures.
		s.logger.Infof("tool %s failed: %v", params.Name, err)
		return marshalResult(req.ID, TextResult(fmt.Sprintf("%s: %v", browser.Kind(err), err), true))
	}

	s.logger.Debugf("tool %s ok (%d bytes)", params.Name, len(text))
	return marshalResult(req.ID, TextResult(text, false))
}

func (s *Server) write(resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Errorf("marshaling response: %v", err)
		return
	}
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		s.logger.Errorf("writing response: %v", err)
	}
}

func marshalResult(id any, result any) *JSONRPCResponse {
	data, err := json.Marshal(result)
	if err != nil {
		return errorResponse(id, CodeInternalError, "Internal error: "+err.Error())
	}
	return resultResponse(id, data)
}

func resultResponse(id any, result json.RawMessage) *JSONRPCResponse {
	return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id any, code int, message string) *JSONRPCResponse {
	return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &JSONRPCError{Code: code, Message: message}}
}
