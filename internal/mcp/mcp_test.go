package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"mdb/internal/config"
	"mdb/internal/engine"
	"mdb/internal/executor"
	"mdb/internal/logging"
	"mdb/internal/schema"
	"mdb/internal/source"
)

// stubExecutor returns a single canned row for every statement.
type stubExecutor struct {
	rows []map[string]interface{}
}

func (s *stubExecutor) Run(ctx context.Context, src, statement string, args ...interface{}) (*executor.Result, error) {
	return &executor.Result{Rows: s.rows, Count: len(s.rows)}, nil
}

func (s *stubExecutor) Exec(ctx context.Context, src, statement string, args ...interface{}) (*executor.Result, error) {
	return &executor.Result{}, nil
}

func (s *stubExecutor) ListTables(ctx context.Context, src string) ([]string, error) {
	return []string{"album"}, nil
}

func (s *stubExecutor) DescribeTable(ctx context.Context, src, table string) ([]executor.ColumnInfo, error) {
	return []executor.ColumnInfo{{Name: "id", Type: "int"}}, nil
}

func (s *stubExecutor) Ping(ctx context.Context, src string) error { return nil }
func (s *stubExecutor) Close() error                               { return nil }

func newTestMCPServer(t *testing.T) *MCPServer {
	t.Helper()

	cfg := config.DefaultConfig()
	registry := source.NewRegistry(cfg.Sources)
	logger := logging.NewLogger(io.Discard, logging.LevelFromString("error"))
	exec := &stubExecutor{rows: []map[string]interface{}{{"total_students": int64(412)}}}
	schemas := schema.NewCache(exec, logger)
	eng := engine.New(registry, exec, schemas, cfg.Limits, logger)

	return NewMCPServer("test", eng, logger)
}

// sendRequest runs the server loop over one request and returns its
// response.
func sendRequest(t *testing.T, server *MCPServer, request *MCPMessage) *MCPMessage {
	t.Helper()

	input, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var output bytes.Buffer
	server.SetStdin(bytes.NewReader(append(input, '\n')))
	server.SetStdout(&output)

	if err := server.Start(); err != nil {
		t.Fatalf("server error: %v", err)
	}

	line := strings.TrimSpace(output.String())
	if line == "" {
		return nil
	}

	var response MCPMessage
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		t.Fatalf("unmarshal response %q: %v", line, err)
	}
	return &response
}

// callTool sends a tools/call request and returns the decoded envelope
// JSON from the text content.
func callTool(t *testing.T, server *MCPServer, name string, arguments map[string]interface{}) map[string]interface{} {
	t.Helper()

	response := sendRequest(t, server, &MCPMessage{
		Jsonrpc: "2.0",
		Id:      1,
		Method:  "tools/call",
		Params: map[string]interface{}{
			"name":      name,
			"arguments": arguments,
		},
	})
	if response == nil {
		t.Fatal("no response")
	}
	if response.Error != nil {
		t.Fatalf("tool call failed: %v", response.Error)
	}

	result, ok := response.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result is %T", response.Result)
	}
	content, _ := result["content"].([]interface{})
	if len(content) != 1 {
		t.Fatalf("content = %v, want one text block", result["content"])
	}
	block, _ := content[0].(map[string]interface{})
	text, _ := block["text"].(string)

	var envelopeJSON map[string]interface{}
	if err := json.Unmarshal([]byte(text), &envelopeJSON); err != nil {
		t.Fatalf("unmarshal envelope %q: %v", text, err)
	}
	return envelopeJSON
}

func TestInitialize(t *testing.T) {
	server := newTestMCPServer(t)

	response := sendRequest(t, server, &MCPMessage{
		Jsonrpc: "2.0",
		Id:      1,
		Method:  "initialize",
		Params:  map[string]interface{}{},
	})

	result, _ := response.Result.(map[string]interface{})
	info, _ := result["serverInfo"].(map[string]interface{})
	if info["name"] != "multi-database-mcp" {
		t.Errorf("server name = %v", info["name"])
	}
}

func TestListTools(t *testing.T) {
	server := newTestMCPServer(t)

	response := sendRequest(t, server, &MCPMessage{
		Jsonrpc: "2.0",
		Id:      1,
		Method:  "tools/list",
	})

	result, _ := response.Result.(map[string]interface{})
	tools, _ := result["tools"].([]interface{})
	if len(tools) != 7 {
		t.Fatalf("tools = %d, want 7", len(tools))
	}

	names := make(map[string]bool, len(tools))
	for _, raw := range tools {
		tool, _ := raw.(map[string]interface{})
		names[tool["name"].(string)] = true
	}
	for _, want := range []string{"query", "cross_database_query", "sql", "schema",
		"databases", "unified_search", "aggregate_stats"} {
		if !names[want] {
			t.Errorf("tool %q missing from tools/list", want)
		}
	}
}

func TestCallDatabasesTool(t *testing.T) {
	server := newTestMCPServer(t)

	env := callTool(t, server, "databases", nil)
	if env["schemaVersion"] != "1.0" {
		t.Errorf("schemaVersion = %v", env["schemaVersion"])
	}

	data, _ := env["data"].(map[string]interface{})
	if data["total"] != float64(3) {
		t.Errorf("total = %v, want 3", data["total"])
	}
}

func TestCallQueryTool(t *testing.T) {
	server := newTestMCPServer(t)

	env := callTool(t, server, "query", map[string]interface{}{
		"question": "how many students are there?",
	})

	data, _ := env["data"].(map[string]interface{})
	if data["detected_database"] != "school_erp" {
		t.Errorf("detected_database = %v", data["detected_database"])
	}
	if data["success"] != true {
		t.Errorf("success = %v (error: %v)", data["success"], env["error"])
	}

	meta, _ := env["meta"].(map[string]interface{})
	if meta["confidence"] == nil {
		t.Error("query responses must carry confidence metadata")
	}
}

func TestCallToolMissingParam(t *testing.T) {
	server := newTestMCPServer(t)

	// Handler failures are wrapped in the envelope, not surfaced as
	// JSON-RPC errors.
	env := callTool(t, server, "query", map[string]interface{}{})
	errText, _ := env["error"].(string)
	if !strings.Contains(errText, "question") {
		t.Errorf("envelope error = %q, want it to name the missing parameter", errText)
	}
}

func TestUnknownMethod(t *testing.T) {
	server := newTestMCPServer(t)

	response := sendRequest(t, server, &MCPMessage{
		Jsonrpc: "2.0",
		Id:      1,
		Method:  "prompts/list",
	})

	if response.Error == nil || response.Error.Code != MethodNotFound {
		t.Fatalf("error = %v, want method-not-found", response.Error)
	}
}

func TestNotificationProducesNoResponse(t *testing.T) {
	server := newTestMCPServer(t)

	response := sendRequest(t, server, &MCPMessage{
		Jsonrpc: "2.0",
		Method:  "notifications/initialized",
	})
	if response != nil {
		t.Fatalf("notification got a response: %+v", response)
	}
}
