package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/tools"
)

func newTestMCPServer() (*Server, *bytes.Buffer) {
	registry := tools.NewRegistry(tools.New(catalog.NewStore()))
	out := &bytes.Buffer{}
	srv := NewServer(registry)
	srv.writer = out
	return srv, out
}

func request(t *testing.T, method string, params any) jsonRPCRequest {
	t.Helper()
	req := jsonRPCRequest{JSONRPC: "2.0", ID: 1, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		req.Params = raw
	}
	return req
}

func TestInitialize(t *testing.T) {
	srv, _ := newTestMCPServer()

	resp := srv.handleRequest(request(t, "initialize", initializeParams{
		ProtocolVersion: protocolVersion,
		ClientInfo:      clientInfo{Name: "test", Version: "1.0"},
	}))
	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}
	result, ok := resp.Result.(initializeResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if result.ServerInfo.Name != serverName {
		t.Errorf("server name = %q", result.ServerInfo.Name)
	}
	if result.Capabilities.Tools == nil {
		t.Errorf("tools capability not advertised")
	}
}

func TestInitializedNotificationHasNoResponse(t *testing.T) {
	srv, _ := newTestMCPServer()

	if resp := srv.handleRequest(request(t, "initialized", nil)); resp != nil {
		t.Errorf("notification produced a response: %+v", resp)
	}
}

func TestToolsList(t *testing.T) {
	srv, _ := newTestMCPServer()

	resp := srv.handleRequest(request(t, "tools/list", nil))
	result, ok := resp.Result.(toolsListResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if len(result.Tools) != 3 {
		t.Fatalf("len(tools) = %d, want 3", len(result.Tools))
	}
	if result.Tools[0].Name != "change_slot_assignment" {
		t.Errorf("first tool = %q", result.Tools[0].Name)
	}
	assign := result.Tools[0]
	if len(assign.InputSchema.Required) != 2 {
		t.Errorf("assign required = %v", assign.InputSchema.Required)
	}
	if _, ok := assign.InputSchema.Properties["slot_id"]; !ok {
		t.Errorf("assign schema missing slot_id")
	}
}

func TestToolsCall(t *testing.T) {
	srv, _ := newTestMCPServer()

	resp := srv.handleRequest(request(t, "tools/call", toolsCallParams{
		Name: "change_slot_assignment",
		Arguments: map[string]any{
			"slot_id": "A-01-01-05", "item_id": "ITEM_001",
		},
	}))
	result, ok := resp.Result.(toolsCallResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if result.IsError {
		t.Fatalf("call errored: %+v", result)
	}
	var envelope tools.Result
	if err := json.Unmarshal([]byte(result.Content[0].Text), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !envelope.Success || envelope.SlotInfo == nil || envelope.SlotInfo.SlotID != "A-01-01-05" {
		t.Errorf("envelope = %+v", envelope)
	}
}

func TestToolsCallFailedEnvelopeNotProtocolError(t *testing.T) {
	srv, _ := newTestMCPServer()

	// a domain failure stays inside the envelope; isError is reserved for
	// protocol-level failures
	resp := srv.handleRequest(request(t, "tools/call", toolsCallParams{
		Name: "change_slot_assignment",
		Arguments: map[string]any{
			"slot_id": "Z-99-99-99", "item_id": "ITEM_001",
		},
	}))
	result, ok := resp.Result.(toolsCallResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if result.IsError {
		t.Errorf("failed envelope must not set isError: %+v", result)
	}
	var envelope tools.Result
	if err := json.Unmarshal([]byte(result.Content[0].Text), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Success {
		t.Fatalf("expected Success=false envelope: %+v", envelope)
	}
	if !strings.Contains(envelope.Message, "Slot Z-99-99-99 not found") {
		t.Errorf("message = %q", envelope.Message)
	}
}

func TestToolsCallUnknownTool(t *testing.T) {
	srv, _ := newTestMCPServer()

	resp := srv.handleRequest(request(t, "tools/call", toolsCallParams{Name: "no_such_tool"}))
	result := resp.Result.(toolsCallResult)
	if result.IsError {
		t.Errorf("unknown tool gets a failure envelope, not a protocol error: %+v", result)
	}
	if !strings.Contains(result.Content[0].Text, "not found") {
		t.Errorf("content = %q", result.Content[0].Text)
	}
}

func TestUnknownMethod(t *testing.T) {
	srv, _ := newTestMCPServer()

	resp := srv.handleRequest(request(t, "bogus/method", nil))
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("error = %+v, want -32601", resp.Error)
	}
}

func TestRunOverStdio(t *testing.T) {
	srv, out := newTestMCPServer()

	input := `{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": {"protocolVersion": "2024-11-05", "clientInfo": {"name": "t", "version": "0"}}}
{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}
`
	srv.reader = bufio.NewReader(strings.NewReader(input))
	if err := srv.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d response lines, want 2", len(lines))
	}
	for _, line := range lines {
		var resp map[string]any
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("response not valid JSON: %v", err)
		}
		if resp["jsonrpc"] != "2.0" {
			t.Errorf("jsonrpc = %v", resp["jsonrpc"])
		}
	}
}
