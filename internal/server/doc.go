// Package server implements the MCP (Model Context Protocol) server that exposes
// screen text recognition.
//
// This package provides a JSON-RPC 2.0 server over stdio so MCP clients can
// hand captured screen images to the recognition pipeline and read back the
// text blocks it found.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Requests are served concurrently, up to DefaultMaxInFlight at a time, so a
// slow recognition does not hold up a ping. Responses carry the request ID
// and may arrive out of order. Serve returns promptly when its context is
// cancelled, even if no input is pending.
//
// # Available Tools
//
//   - screen_extract_text: Recognize text blocks in an image file or
//     base64 payload, honoring the capture's rotation. An optional region
//     restricts recognition to part of the upright image; boxes are still
//     reported in whole-image coordinates.
//   - ocr_info: Report backend availability and version
//
// Every recognition also goes through the recognition.Invoker, so the server
// log shows the same "Success text = ..." and "Success boundingBox = ..."
// lines as any other caller.
//
// # Image Caching
//
// Images loaded by path are cached for the lifetime of the server process.
// Repeated requests for the same capture skip decoding.
//
// # Error Handling
//
// Invalid arguments and images that cannot be loaded are returned as JSON-RPC
// error responses with code -32000. A recognition failure is not a protocol
// error: the tool result reports success=false with the failure cause and
// sets isError.
//
// # Usage
//
//	inv := recognition.NewInvoker(engine, recognition.NewZerologSink(logger))
//	srv := server.New(inv, engine.Info, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
