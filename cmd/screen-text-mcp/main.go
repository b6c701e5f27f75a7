package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ironsheep/screen-text-mcp/internal/config"
	"github.com/ironsheep/screen-text-mcp/internal/logging"
	"github.com/ironsheep/screen-text-mcp/internal/ocr"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
	"github.com/ironsheep/screen-text-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("screen-text-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// A missing .env is normal; only report files that exist but don't parse.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := ocr.NewTesseractEngine(cfg.OCR())
	invoker := newInvoker(cfg, engine, logger)

	if len(os.Args) > 1 && os.Args[1] == "extract" {
		code := runExtract(ctx, invoker, os.Args[2:], os.Stderr)
		stop()
		os.Exit(code)
	}

	logger.Debug().
		Str("version", Version).
		Str("built", BuildTime).
		Str("commit", GitCommit).
		Str("language", cfg.Language).
		Stringer("level", cfg.Level).
		Msg("Screen Text MCP Server starting")

	server.Version = Version
	srv := server.New(invoker, engine.Info, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Server error")
	}
}

// newInvoker wires engine to a sink on logger. Recognition results are the
// program's output, so they are written at info and show up under the default
// log level.
func newInvoker(cfg *config.Config, engine recognition.Engine, logger zerolog.Logger) *recognition.Invoker {
	sink := recognition.NewZerologSinkLevel(logger, zerolog.InfoLevel)
	return recognition.NewInvoker(engine, sink, recognition.WithTag(cfg.LogTag))
}

func printHelp() {
	fmt.Println("screen-text-mcp - MCP server for reading text from screen captures")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  screen-text-mcp [options]")
	fmt.Println("  screen-text-mcp extract [-rotation DEG] IMAGE...")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract          Recognize text in image files and log each block")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SCREEN_TEXT_LOG_LEVEL=info          Log level (recognized text is logged at info)")
	fmt.Println("  SCREEN_TEXT_LOG_FORMAT=console      console or json")
	fmt.Println("  SCREEN_TEXT_LOG_TAG=ImageProcess    Tag attached to recognition log lines")
	fmt.Println("  SCREEN_TEXT_LANGUAGE=eng            Tesseract language, e.g. eng+deu")
	fmt.Println("  SCREEN_TEXT_TESSDATA_PREFIX=DIR     Tesseract language data directory")
	fmt.Println("  SCREEN_TEXT_LEVEL=block             block, paragraph, line or word")
	fmt.Println("  SCREEN_TEXT_SCALE=1                 Upscale factor before recognition")
	fmt.Println("  SCREEN_TEXT_INVERT_DARK=true        Invert dark-theme captures")
	fmt.Println("  SCREEN_TEXT_DARK_THRESHOLD=0.45     Lightness below which a capture is dark")
	fmt.Println("  SCREEN_TEXT_GRAYSCALE=false         Convert to grayscale before recognition")
	fmt.Println("  SCREEN_TEXT_CONTRAST=0              Contrast change in [-1, 1]")
	fmt.Println()
	fmt.Println("A .env file in the working directory is loaded if present.")
	fmt.Println("Without a command the server communicates via MCP over stdin/stdout.")
}
