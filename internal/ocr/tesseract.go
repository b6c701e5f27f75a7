//go:build cgo

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/preprocess"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// TesseractEngine recognizes text with the native Tesseract library through
// gosseract.
//
// Each Recognize call uses its own gosseract client, so a single engine may
// serve concurrent requests.
type TesseractEngine struct {
	cfg Config
}

// NewTesseractEngine returns an engine for cfg. Language data is not loaded
// until the first call to Recognize, so configuration problems surface as
// recognition failures.
func NewTesseractEngine(cfg Config) *TesseractEngine {
	return &TesseractEngine{cfg: cfg}
}

// Recognize implements recognition.Engine.
//
// The frame is turned upright and prepared per Config.Preprocess, then
// encoded as PNG for Tesseract. Blocks come back in Tesseract's reading order
// with whitespace trimmed; blank blocks are dropped. Bounding boxes are in
// upright frame coordinates, offset by the frame's Origin.
func (e *TesseractEngine) Recognize(ctx context.Context, frame capture.Frame) ([]recognition.TextBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if frame.Image == nil {
		return nil, capture.ErrNilImage
	}

	prepared, scale := preprocess.Prepare(frame.Upright(), e.cfg.Preprocess)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(e.cfg.languages()...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(iteratorLevel(e.cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	blocks := make([]recognition.TextBlock, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		blocks = append(blocks, recognition.TextBlock{
			Text:       text,
			Confidence: box.Confidence / 100.0,
			Bounds:     unscale(box.Box, scale, frame.Origin),
		})
	}

	return blocks, nil
}

// Info reports whether Tesseract can be initialized with the configured
// language data.
func (e *TesseractEngine) Info() Info {
	info := Info{
		Backend:      "gosseract",
		Language:     strings.Join(e.cfg.languages(), "+"),
		Level:        e.cfg.Level.String(),
		TessdataPath: e.cfg.TessdataPrefix,
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			info.Error = err.Error()
			return info
		}
	}
	if err := client.SetLanguage(e.cfg.languages()...); err != nil {
		info.Error = err.Error()
		return info
	}

	// Language data is only loaded once there is an image to read.
	var probe bytes.Buffer
	if err := png.Encode(&probe, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
		info.Error = err.Error()
		return info
	}
	if err := client.SetImageFromBytes(probe.Bytes()); err != nil {
		info.Error = err.Error()
		return info
	}
	if _, err := client.Text(); err != nil {
		info.Error = err.Error()
		return info
	}

	info.Version = client.Version()
	info.Available = true
	return info
}

func iteratorLevel(l Level) gosseract.PageIteratorLevel {
	switch l {
	case LevelParagraph:
		return gosseract.RIL_PARA
	case LevelLine:
		return gosseract.RIL_TEXTLINE
	case LevelWord:
		return gosseract.RIL_WORD
	default:
		return gosseract.RIL_BLOCK
	}
}

// unscale maps a box found in a prepared image of the given scale back to
// capture coordinates.
func unscale(r image.Rectangle, scale float64, origin image.Point) recognition.Bounds {
	if scale > 0 && scale != 1 {
		r = image.Rect(
			int(math.Floor(float64(r.Min.X)/scale)),
			int(math.Floor(float64(r.Min.Y)/scale)),
			int(math.Ceil(float64(r.Max.X)/scale)),
			int(math.Ceil(float64(r.Max.Y)/scale)),
		)
	}
	r = r.Add(origin)
	return recognition.Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}
