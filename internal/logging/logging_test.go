package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	logger.Debug().Str("tag", "ImageProcess").Msg("Success text = HELLO")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse %q: %v", buf.String(), err)
	}
	if entry["message"] != "Success text = HELLO" {
		t.Errorf("message: got %v", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry should carry a timestamp")
	}
}

func TestNewWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "info", "console")
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	logger.Info().Str("tag", "ImageProcess").Msg("ready")
	out := buf.String()
	if !strings.Contains(out, "ready") || !strings.Contains(out, "tag=ImageProcess") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNewWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn, got %q", buf.String())
	}
	logger.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}

func TestNewWriter_Invalid(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "loud", "json"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := NewWriter(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
