//go:build !cgo

package ocr

import (
	"context"
	"strings"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// TesseractEngine is a placeholder that fails every request when the native
// Tesseract bindings are not compiled in.
type TesseractEngine struct {
	cfg Config
}

// NewTesseractEngine returns an engine that reports ErrUnavailable.
func NewTesseractEngine(cfg Config) *TesseractEngine {
	return &TesseractEngine{cfg: cfg}
}

// Recognize always fails with ErrUnavailable.
func (e *TesseractEngine) Recognize(ctx context.Context, _ capture.Frame) ([]recognition.TextBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

// Info reports the engine as unavailable.
func (e *TesseractEngine) Info() Info {
	return Info{
		Available: false,
		Error:     ErrUnavailable.Error(),
		Backend:   "none (built without cgo)",
		Language:  strings.Join(e.cfg.languages(), "+"),
		Level:     e.cfg.Level.String(),
	}
}
