package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func encodeBase64PNG(t *testing.T, width, height int) string {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// extractResult decodes the JSON text content of a successful tool call.
func extractResult(t *testing.T, resp *MCPResponse, v interface{}) bool {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 {
		t.Fatalf("content: got %d items, want 1", len(content))
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return result["isError"].(bool)
}

func TestScreenExtractText_Path(t *testing.T) {
	blocks := []recognition.TextBlock{
		{Text: "HELLO", Bounds: recognition.Bounds{X1: 0, Y1: 0, X2: 50, Y2: 20}},
		{Text: "WORLD", Bounds: recognition.Bounds{X1: 0, Y1: 25, X2: 50, Y2: 45}},
	}
	s := newTestServer(blocks, nil)
	imgPath := createTestImageFile(t, 100, 80, color.White)

	var got ExtractTextResult
	isError := extractResult(t, callTool(t, s, "screen_extract_text", map[string]interface{}{"path": imgPath}), &got)

	if isError || !got.Success {
		t.Fatalf("expected success, got %+v", got)
	}
	if got.Count != 2 || len(got.Blocks) != 2 {
		t.Fatalf("Count: got %d (%d blocks), want 2", got.Count, len(got.Blocks))
	}
	if got.Blocks[0].Text != "HELLO" || got.Blocks[1].Text != "WORLD" {
		t.Errorf("blocks out of order: %+v", got.Blocks)
	}
	if got.Blocks[1].Bounds != blocks[1].Bounds {
		t.Errorf("Bounds: got %v, want %v", got.Blocks[1].Bounds, blocks[1].Bounds)
	}
}

func TestScreenExtractText_Base64(t *testing.T) {
	var seen capture.Frame
	engine := recognition.EngineFunc(func(_ context.Context, f capture.Frame) ([]recognition.TextBlock, error) {
		seen = f
		return nil, nil
	})
	s := New(recognition.NewInvoker(engine, nil), nil, zerolog.Nop())

	args := map[string]interface{}{
		"image_base64": "data:image/png;base64," + encodeBase64PNG(t, 30, 10),
		"rotation":     90,
	}
	var got ExtractTextResult
	isError := extractResult(t, callTool(t, s, "screen_extract_text", args), &got)

	if isError || !got.Success || got.Count != 0 {
		t.Fatalf("expected empty success, got %+v", got)
	}
	if got.Blocks == nil {
		t.Error("blocks should be an empty list, not null")
	}
	if seen.Rotation != 90 {
		t.Errorf("engine saw rotation %d, want 90", seen.Rotation)
	}
	if w, h := seen.Size(); w != 10 || h != 30 {
		t.Errorf("upright size: got %dx%d, want 10x30", w, h)
	}
}

func TestScreenExtractText_Region(t *testing.T) {
	var seen capture.Frame
	engine := recognition.EngineFunc(func(_ context.Context, f capture.Frame) ([]recognition.TextBlock, error) {
		seen = f
		return nil, nil
	})
	s := New(recognition.NewInvoker(engine, nil), nil, zerolog.Nop())
	imgPath := createTestImageFile(t, 100, 80, color.White)

	args := map[string]interface{}{
		"path":   imgPath,
		"region": map[string]interface{}{"x1": 10, "y1": 20, "x2": 40, "y2": 50},
	}
	var got ExtractTextResult
	if isError := extractResult(t, callTool(t, s, "screen_extract_text", args), &got); isError {
		t.Fatalf("expected success, got %+v", got)
	}
	if w, h := seen.Size(); w != 30 || h != 30 {
		t.Errorf("cropped size: got %dx%d, want 30x30", w, h)
	}
	if seen.Origin != image.Pt(10, 20) {
		t.Errorf("Origin: got %v, want (10,20)", seen.Origin)
	}

	args["region"] = map[string]interface{}{"x1": 200, "y1": 200, "x2": 300, "y2": 300}
	resp := callTool(t, s, "screen_extract_text", args)
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000 error for region outside image, got %+v", resp.Error)
	}
}

func TestScreenExtractText_RecognitionFailure(t *testing.T) {
	s := newTestServer(nil, errors.New("model unavailable"))
	imgPath := createTestImageFile(t, 20, 20, color.Black)

	var got ExtractTextResult
	isError := extractResult(t, callTool(t, s, "screen_extract_text", map[string]interface{}{"path": imgPath}), &got)

	if !isError || got.Success {
		t.Fatalf("expected failed result, got %+v", got)
	}
	if got.Error != "model unavailable" {
		t.Errorf("Error: got %q, want model unavailable", got.Error)
	}
	if len(got.Blocks) != 0 {
		t.Errorf("failure should carry no blocks, got %v", got.Blocks)
	}
}

func TestScreenExtractText_LogsThroughInvoker(t *testing.T) {
	var mu sync.Mutex
	var lines []string
	sink := recognition.SinkFunc(func(_, msg string) {
		mu.Lock()
		lines = append(lines, msg)
		mu.Unlock()
	})
	engine := recognition.EngineFunc(func(context.Context, capture.Frame) ([]recognition.TextBlock, error) {
		return []recognition.TextBlock{{Text: "OK", Bounds: recognition.Bounds{X1: 1, Y1: 2, X2: 3, Y2: 4}}}, nil
	})
	s := New(recognition.NewInvoker(engine, sink), nil, zerolog.Nop())

	var got ExtractTextResult
	extractResult(t, callTool(t, s, "screen_extract_text", map[string]interface{}{"image_base64": encodeBase64PNG(t, 4, 4)}), &got)

	mu.Lock()
	defer mu.Unlock()
	want := []string{"Success text = OK", "Success boundingBox = Rect(1, 2 - 3, 4)"}
	if len(lines) != len(want) {
		t.Fatalf("got lines %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestScreenExtractText_InvalidArguments(t *testing.T) {
	s := newTestServer(nil, nil)
	imgPath := createTestImageFile(t, 10, 10, color.White)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing image", map[string]interface{}{}},
		{"both sources", map[string]interface{}{"path": imgPath, "image_base64": encodeBase64PNG(t, 2, 2)}},
		{"missing file", map[string]interface{}{"path": "/nonexistent/capture.png"}},
		{"bad base64", map[string]interface{}{"image_base64": "!!!"}},
		{"bad rotation", map[string]interface{}{"path": imgPath, "rotation": 45}},
		{"wrong type", map[string]interface{}{"path": 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "screen_extract_text", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error.Code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(nil, nil)
	resp := callTool(t, s, "image_crop", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000 error, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(nil, nil)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp == nil || resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602 error, got %+v", resp)
	}
}

func TestOCRInfo(t *testing.T) {
	s := newTestServer(nil, nil)

	var got map[string]interface{}
	extractResult(t, callTool(t, s, "ocr_info", nil), &got)
	if got["available"] != true || got["version"] != "test" {
		t.Errorf("unexpected info %v", got)
	}
}

func TestOCRInfo_NoBackend(t *testing.T) {
	s := New(recognition.NewInvoker(nil, nil), nil, zerolog.Nop())
	resp := callTool(t, s, "ocr_info", nil)
	if resp.Error == nil {
		t.Fatal("expected error without backend info")
	}
}
