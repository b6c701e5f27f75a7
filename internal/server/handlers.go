package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "screen_extract_text").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}],
//	  "isError": false
//	}
//
// Invalid arguments and unloadable images return a JSON-RPC error response
// with code -32000. A recognition failure is a completed call: its result
// has success=false and isError=true.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	isError := false
	if r, ok := result.(*ExtractTextResult); ok {
		isError = !r.Success
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
			"isError": isError,
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "screen_extract_text":
		return s.handleScreenExtractText(ctx, args)
	case "ocr_info":
		return s.handleOCRInfo()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type screenExtractTextArgs struct {
	Path        string      `json:"path"`
	ImageBase64 string      `json:"image_base64"`
	Rotation    int         `json:"rotation"`
	Region      *regionArgs `json:"region"`
}

// regionArgs restricts recognition to a rectangle of the upright frame.
type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ExtractTextResult is the screen_extract_text tool result.
type ExtractTextResult struct {
	Success bool                    `json:"success"`
	Blocks  []recognition.TextBlock `json:"blocks"`
	Count   int                     `json:"count"`
	Error   string                  `json:"error,omitempty"`
}

func (s *Server) handleScreenExtractText(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a screenExtractTextArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	frame, err := s.loadFrame(a)
	if err != nil {
		return nil, err
	}

	if a.Region != nil {
		r := image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
		if frame, err = frame.Crop(r); err != nil {
			return nil, err
		}
	}

	outcome, err := s.invoker.ExtractText(ctx, frame).Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("recognition interrupted: %w", err)
	}

	if outcome.Failed() {
		return &ExtractTextResult{
			Success: false,
			Blocks:  []recognition.TextBlock{},
			Error:   outcome.Err.Error(),
		}, nil
	}

	return &ExtractTextResult{
		Success: true,
		Blocks:  outcome.Blocks,
		Count:   len(outcome.Blocks),
	}, nil
}

func (s *Server) loadFrame(a screenExtractTextArgs) (capture.Frame, error) {
	switch {
	case a.Path != "" && a.ImageBase64 != "":
		return capture.Frame{}, errors.New("provide either path or image_base64, not both")
	case a.Path != "":
		return s.cache.Load(a.Path, a.Rotation)
	case a.ImageBase64 != "":
		return capture.DecodeBase64(a.ImageBase64, a.Rotation)
	default:
		return capture.Frame{}, errors.New("path or image_base64 is required")
	}
}

func (s *Server) handleOCRInfo() (interface{}, error) {
	if s.info == nil {
		return nil, errors.New("no recognition backend information available")
	}
	return s.info(), nil
}
