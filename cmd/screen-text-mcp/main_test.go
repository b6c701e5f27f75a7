package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/config"
	"github.com/ironsheep/screen-text-mcp/internal/logging"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// defaultConfig loads the configuration with every SCREEN_TEXT_ variable
// that affects logging unset.
func defaultConfig(t *testing.T) *config.Config {
	t.Helper()

	for _, key := range []string{"SCREEN_TEXT_LOG_LEVEL", "SCREEN_TEXT_LOG_FORMAT", "SCREEN_TEXT_LOG_TAG"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	return cfg
}

func TestNewInvoker_DefaultConfigLogsResults(t *testing.T) {
	cfg := defaultConfig(t)

	var buf bytes.Buffer
	logger, err := logging.NewWriter(&buf, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		t.Fatalf("logging.NewWriter failed: %v", err)
	}

	engine := recognition.EngineFunc(func(context.Context, capture.Frame) ([]recognition.TextBlock, error) {
		return []recognition.TextBlock{{Text: "HELLO", Bounds: recognition.Bounds{X1: 1, Y1: 2, X2: 3, Y2: 4}}}, nil
	})
	frame, _ := capture.NewFrame(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0)

	if _, err := newInvoker(cfg, engine, logger).ExtractText(context.Background(), frame).Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Success text = HELLO", "Success boundingBox = Rect(1, 2 - 3, 4)", "tag=" + recognition.DefaultTag} {
		if !strings.Contains(out, want) {
			t.Errorf("log output at level %q missing %q:\n%s", cfg.LogLevel, want, out)
		}
	}
}

func TestNewInvoker_DefaultConfigLogsFailure(t *testing.T) {
	cfg := defaultConfig(t)

	var buf bytes.Buffer
	logger, err := logging.NewWriter(&buf, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		t.Fatalf("logging.NewWriter failed: %v", err)
	}

	engine := recognition.EngineFunc(func(context.Context, capture.Frame) ([]recognition.TextBlock, error) {
		return nil, errors.New("model unavailable")
	})
	frame, _ := capture.NewFrame(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0)

	if _, err := newInvoker(cfg, engine, logger).ExtractText(context.Background(), frame).Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Failure exception = model unavailable") {
		t.Errorf("expected failure line in output:\n%s", buf.String())
	}
}
