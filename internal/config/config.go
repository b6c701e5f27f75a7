// Package config loads runtime configuration from the environment.
//
// Every setting has a default, so an empty environment yields a working
// configuration. Variables use the SCREEN_TEXT_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/screen-text-mcp/internal/ocr"
	"github.com/ironsheep/screen-text-mcp/internal/preprocess"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// Config holds runtime configuration
type Config struct {
	// Logging
	LogLevel  string
	LogFormat string // "console" or "json"
	LogTag    string

	// Recognition
	Language       string
	TessdataPrefix string
	Level          ocr.Level

	// Preprocessing
	Scale         float64
	InvertDark    bool
	DarkThreshold float64
	Grayscale     bool
	Contrast      float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		LogLevel:       get("SCREEN_TEXT_LOG_LEVEL", "info"),
		LogFormat:      get("SCREEN_TEXT_LOG_FORMAT", "console"),
		LogTag:         get("SCREEN_TEXT_LOG_TAG", recognition.DefaultTag),
		Language:       get("SCREEN_TEXT_LANGUAGE", ocr.DefaultLanguage),
		TessdataPrefix: get("SCREEN_TEXT_TESSDATA_PREFIX", ""),
	}

	var err error
	if cfg.Level, err = ocr.ParseLevel(get("SCREEN_TEXT_LEVEL", "block")); err != nil {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_LEVEL: %w", err)
	}
	if cfg.Scale, err = parseFloat(get("SCREEN_TEXT_SCALE", "1")); err != nil {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_SCALE: %w", err)
	}
	if cfg.Scale <= 0 || cfg.Scale > 8 {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_SCALE: %v not in (0, 8]", cfg.Scale)
	}
	if cfg.InvertDark, err = strconv.ParseBool(get("SCREEN_TEXT_INVERT_DARK", "true")); err != nil {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_INVERT_DARK: %w", err)
	}
	if cfg.DarkThreshold, err = parseFloat(get("SCREEN_TEXT_DARK_THRESHOLD", "0")); err != nil {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_DARK_THRESHOLD: %w", err)
	}
	if cfg.Grayscale, err = strconv.ParseBool(get("SCREEN_TEXT_GRAYSCALE", "false")); err != nil {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_GRAYSCALE: %w", err)
	}
	if cfg.Contrast, err = parseFloat(get("SCREEN_TEXT_CONTRAST", "0")); err != nil {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_CONTRAST: %w", err)
	}
	if cfg.Contrast < -1 || cfg.Contrast > 1 {
		return nil, fmt.Errorf("invalid SCREEN_TEXT_CONTRAST: %v not in [-1, 1]", cfg.Contrast)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("invalid SCREEN_TEXT_LOG_FORMAT: %q", cfg.LogFormat)
	}

	return cfg, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// OCR returns the engine configuration described by c.
func (c *Config) OCR() ocr.Config {
	return ocr.Config{
		Language:       c.Language,
		TessdataPrefix: c.TessdataPrefix,
		Level:          c.Level,
		Preprocess: preprocess.Options{
			Scale:         c.Scale,
			InvertDark:    c.InvertDark,
			DarkThreshold: c.DarkThreshold,
			Grayscale:     c.Grayscale,
			Contrast:      c.Contrast,
		},
	}
}
