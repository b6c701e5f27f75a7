package server

import (
	"context"
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"screen_extract_text",
		"ocr_info",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}

			// Definitions must survive the trip to the client.
			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("failed to marshal tool: %v", err)
			}
		})
	}
}

func TestScreenExtractText_Schema(t *testing.T) {
	var extract Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "screen_extract_text" {
			extract = tool
		}
	}

	props := extract.InputSchema["properties"].(map[string]interface{})
	for _, name := range []string{"path", "image_base64", "rotation", "region"} {
		if _, ok := props[name]; !ok {
			t.Errorf("missing property %s", name)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(nil, nil)
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools: got %T, want []Tool", result["tools"])
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools", len(tools))
	}
}
