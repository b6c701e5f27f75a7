package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
	"github.com/ironsheep/screen-text-mcp/internal/recognition"
)

// runExtract recognizes every image named in args concurrently and waits for
// all of them. Results are reported through the invoker's sink; errors that
// prevent a request from being made go to stderr. It returns the process exit
// code: 0 when everything succeeded, 1 when any image failed, 2 on usage errors.
func runExtract(ctx context.Context, inv *recognition.Invoker, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rotation := fs.Int("rotation", 0, "clockwise degrees needed to make the images upright (0, 90, 180, 270)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "extract: at least one image path is required")
		return 2
	}

	cache := capture.NewCache()
	pending := make([]*recognition.Pending, 0, fs.NArg())
	names := make([]string, 0, fs.NArg())
	code := 0

	for _, path := range fs.Args() {
		frame, err := cache.Load(path, *rotation)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			code = 1
			continue
		}
		pending = append(pending, inv.ExtractText(ctx, frame))
		names = append(names, path)
	}

	for i, p := range pending {
		outcome, err := p.Wait(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", names[i], err)
			return 1
		}
		if outcome.Failed() {
			code = 1
		}
	}

	return code
}
