// Package mcp implements an MCP server over stdio that exposes the
// warehouse tools. All logging goes to stderr; stdout carries only
// JSON-RPC frames.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vthunder/optslot/internal/logging"
	"github.com/vthunder/optslot/internal/tools"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "optslot"
	serverVersion   = "0.1.0"
)

// Server implements an MCP server over stdio
type Server struct {
	registry *tools.Registry

	reader *bufio.Reader
	writer io.Writer
}

// NewServer creates a new MCP server over the warehouse tool registry
func NewServer(registry *tools.Registry) *Server {
	return &Server{
		registry: registry,
		reader:   bufio.NewReader(os.Stdin),
		writer:   os.Stdout,
	}
}

// JSON-RPC types
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonRPCError `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MCP types
type initializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ClientInfo      clientInfo `json:"clientInfo"`
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      serverInfo   `json:"serverInfo"`
	Capabilities    capabilities `json:"capabilities"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type capabilities struct {
	Tools *toolsCapability `json:"tools,omitempty"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type toolsListResult struct {
	Tools []toolDefinition `json:"tools"`
}

type toolDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema inputSchema `json:"inputSchema"`
}

type inputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type toolsCallResult struct {
	Content []contentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Run starts the MCP server (blocking)
func (s *Server) Run() error {
	logging.Info("mcp", "Server starting...")

	for {
		line, err := s.reader.ReadString('\n')
		if err == io.EOF {
			logging.Info("mcp", "EOF received, shutting down")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		if line == "" || line == "\n" {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			logging.Warn("mcp", "Failed to parse request: %v", err)
			continue
		}

		logging.Debug("mcp", "Received: %s (id=%v)", req.Method, req.ID)

		resp := s.handleRequest(req)
		if resp != nil {
			s.sendResponse(resp)
		}
	}
}

func (s *Server) handleRequest(req jsonRPCRequest) *jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		// Notification, no response needed
		logging.Debug("mcp", "Client initialized")
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	default:
		logging.Warn("mcp", "Unknown method: %s", req.Method)
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &jsonRPCError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

func (s *Server) handleInitialize(req jsonRPCRequest) *jsonRPCResponse {
	var params initializeParams
	if req.Params != nil {
		json.Unmarshal(req.Params, &params)
	}

	logging.Info("mcp", "Initialize from %s %s (protocol %s)",
		params.ClientInfo.Name, params.ClientInfo.Version, params.ProtocolVersion)

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: initializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo: serverInfo{
				Name:    serverName,
				Version: serverVersion,
			},
			Capabilities: capabilities{
				Tools: &toolsCapability{},
			},
		},
	}
}

func (s *Server) handleToolsList(req jsonRPCRequest) *jsonRPCResponse {
	defs := make([]toolDefinition, 0, len(s.registry.List()))
	for _, spec := range s.registry.List() {
		props := make(map[string]property, len(spec.Parameters))
		for name, desc := range spec.Parameters {
			props[name] = property{Type: "string", Description: desc}
		}
		defs = append(defs, toolDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: inputSchema{
				Type:       "object",
				Properties: props,
				Required:   spec.Required,
			},
		})
	}

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  toolsListResult{Tools: defs},
	}
}

func (s *Server) handleToolsCall(req jsonRPCRequest) *jsonRPCResponse {
	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &jsonRPCError{
				Code:    -32602,
				Message: fmt.Sprintf("Invalid params: %v", err),
			},
		}
	}

	logging.Info("mcp", "Tool call: %s with args %v", params.Name, params.Arguments)

	result := s.registry.Execute(params.Name, params.Arguments)
	text, err := json.Marshal(result)
	if err != nil {
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: toolsCallResult{
				Content: []contentBlock{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
				IsError: true,
			},
		}
	}

	// Success=false envelopes are still successful tool calls; isError is
	// reserved for protocol-level failures
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: toolsCallResult{
			Content: []contentBlock{{Type: "text", Text: string(text)}},
		},
	}
}

func (s *Server) sendResponse(resp *jsonRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		logging.Warn("mcp", "Failed to marshal response: %v", err)
		return
	}

	logging.Debug("mcp", "Sending response for id=%v", resp.ID)
	fmt.Fprintln(s.writer, string(data))
}
