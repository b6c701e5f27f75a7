package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "screen_extract_text",
			Description: "Recognize text in a captured screen image. Returns each text block with its bounding box in reading order. Provide either a file path or base64-encoded image data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the captured image file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded PNG, JPEG or GIF data. A data: URL prefix is accepted.",
					},
					"rotation": map[string]interface{}{
						"type":        "integer",
						"description": "Clockwise degrees needed to make the image upright: 0, 90, 180 or 270. Default 0",
						"default":     0,
						"enum":        []int{0, 90, 180, 270},
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional rectangle of the upright image to read. Returned boxes stay in full-image coordinates.",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
							"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
							"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
							"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
			},
		},
		{
			Name:        "ocr_info",
			Description: "Report whether the text recognition backend is available, with its version, language and granularity.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
