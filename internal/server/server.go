package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/ocr"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// Version is reported in the initialize handshake.
var Version = "dev"

// InfoFunc reports the state of the recognition backend.
type InfoFunc func() ocr.Info

// DefaultMaxInFlight bounds the requests a Server handles at once.
const DefaultMaxInFlight = 16

// Server handles MCP protocol communication
type Server struct {
	invoker     *recognition.Invoker
	cache       *capture.Cache
	info        InfoFunc
	logger      zerolog.Logger
	maxInFlight int
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server that recognizes text through invoker. info may be nil
// when no backend diagnostics are available.
func New(invoker *recognition.Invoker, info InfoFunc, logger zerolog.Logger) *Server {
	return &Server{
		invoker:     invoker,
		cache:       capture.NewCache(),
		info:        info,
		logger:      logger,
		maxInFlight: DefaultMaxInFlight,
	}
}

// Run serves MCP on stdin and stdout until stdin is closed or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes responses
// to w. Requests are handled concurrently, at most maxInFlight at a time;
// responses may be written in a different order than requests arrived.
//
// Serve returns after r is exhausted or ctx is done, once every in-flight
// request has been answered. A read blocked on an idle r does not delay the
// return; the reading goroutine exits when the read completes.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		// Base64 frames make for long lines
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 64*1024*1024)

		for scanner.Scan() {
			// The scanner reuses its buffer
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		encoder = json.NewEncoder(w)
		slots   = make(chan struct{}, s.maxInFlight)
	)
	defer wg.Wait()

	for {
		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("scanner error: %w", err)
					}
				default:
				}
				return ctx.Err()
			}
			line = l
		}

		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn().Err(err).Msg("failed to parse request")
			continue
		}

		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}

		wg.Add(1)
		go func(req MCPRequest) {
			defer func() {
				<-slots
				wg.Done()
			}()

			resp := s.handleRequest(ctx, &req)
			if resp == nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error().Err(err).Msg("failed to encode response")
			}
		}(req)
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "screen-text-mcp",
				"version": Version,
			},
		},
	}
}
