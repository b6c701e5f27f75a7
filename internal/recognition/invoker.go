package recognition

import (
	"context"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
)

// DefaultTag is the tag the Invoker attaches to its log messages unless
// WithTag overrides it.
const DefaultTag = "ImageProcess"

// Invoker forwards frames to an Engine and reports every outcome to a Sink.
//
// An Invoker holds no per-request state. It may be shared by any number of
// goroutines, and requests issued through it are independent of each other.
type Invoker struct {
	engine Engine
	sink   Sink
	tag    string
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTag sets the tag attached to log messages.
func WithTag(tag string) Option {
	return func(inv *Invoker) {
		if tag != "" {
			inv.tag = tag
		}
	}
}

// NewInvoker returns an Invoker that recognizes with engine and logs to sink.
// A nil sink discards all messages.
func NewInvoker(engine Engine, sink Sink, opts ...Option) *Invoker {
	if sink == nil {
		sink = Discard
	}
	inv := &Invoker{
		engine: engine,
		sink:   sink,
		tag:    DefaultTag,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Engine returns the engine requests are forwarded to.
func (inv *Invoker) Engine() Engine {
	return inv.engine
}

// ExtractText submits frame for recognition and returns without waiting.
//
// When recognition succeeds, two messages are logged per block in block
// order: "Success text = <text>" followed by "Success boundingBox = <rect>".
// A frame without text logs nothing. When recognition fails, the single
// message "Failure exception = <cause>" is logged instead.
//
// The returned Pending resolves after logging is complete. Callers that only
// want the log output may drop it.
func (inv *Invoker) ExtractText(ctx context.Context, frame capture.Frame) *Pending {
	return submit(ctx, inv.engine, frame, inv.report)
}

func (inv *Invoker) report(o Outcome) {
	if o.Failed() {
		inv.sink.Log(inv.tag, "Failure exception = "+o.Err.Error())
		return
	}
	for _, block := range o.Blocks {
		inv.sink.Log(inv.tag, "Success text = "+block.Text)
		inv.sink.Log(inv.tag, "Success boundingBox = "+block.Bounds.String())
	}
}
