package recognition

import (
	"context"
	"fmt"
	"sync"

	"github.com/ironsheep/screen-text-mcp/internal/capture"
)

// Engine recognizes text in a captured frame.
//
// Recognize blocks until the engine has finished with the frame and returns
// the detected blocks in reading order. Implementations must be safe for
// concurrent use: one engine serves every in-flight request.
type Engine interface {
	Recognize(ctx context.Context, frame capture.Frame) ([]TextBlock, error)
}

// EngineFunc adapts an ordinary function to the Engine interface.
type EngineFunc func(ctx context.Context, frame capture.Frame) ([]TextBlock, error)

// Recognize calls f(ctx, frame).
func (f EngineFunc) Recognize(ctx context.Context, frame capture.Frame) ([]TextBlock, error) {
	return f(ctx, frame)
}

// Pending is an in-flight recognition request. It resolves exactly once with
// an Outcome.
type Pending struct {
	done    chan struct{}
	once    sync.Once
	outcome Outcome
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(o Outcome) {
	p.once.Do(func() {
		p.outcome = o
		close(p.done)
	})
}

// Done returns a channel that is closed once the outcome is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Outcome returns the outcome and true if the request has completed.
func (p *Pending) Outcome() (Outcome, bool) {
	select {
	case <-p.done:
		return p.outcome, true
	default:
		return Outcome{}, false
	}
}

// Wait blocks until the request completes or ctx is done. The returned error
// is ctx.Err() in the latter case; recognition failures are reported through
// the Outcome, not the error.
//
// Giving up on Wait does not stop the request.
func (p *Pending) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Submit hands frame to engine on a new goroutine and returns immediately.
func Submit(ctx context.Context, engine Engine, frame capture.Frame) *Pending {
	return submit(ctx, engine, frame, nil)
}

// submit runs the recognition and calls report, when non-nil, with the
// outcome before the Pending resolves.
func submit(ctx context.Context, engine Engine, frame capture.Frame, report func(Outcome)) *Pending {
	p := newPending()
	go func() {
		o := recognize(ctx, engine, frame)
		defer p.resolve(o)
		if report != nil {
			safeReport(report, o)
		}
	}()
	return p
}

// safeReport calls report, discarding a panic raised by the sink.
func safeReport(report func(Outcome), o Outcome) {
	defer func() {
		_ = recover()
	}()
	report(o)
}

// recognize turns every result of engine.Recognize, including a panic, into
// exactly one Outcome.
func recognize(ctx context.Context, engine Engine, frame capture.Frame) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = Failure(fmt.Errorf("engine panic: %v", r))
		}
	}()

	if engine == nil {
		return Failure(fmt.Errorf("no recognition engine configured"))
	}

	blocks, err := engine.Recognize(ctx, frame)
	if err != nil {
		return Failure(err)
	}
	return Success(blocks)
}
