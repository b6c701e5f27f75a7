package recognition

import (
	"errors"
	"fmt"
)

// Bounds represents a rectangular bounding box in upright frame coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// String renders the box as Rect(left, top - right, bottom).
func (b Bounds) String() string {
	return fmt.Sprintf("Rect(%d, %d - %d, %d)", b.X1, b.Y1, b.X2, b.Y2)
}

// TextBlock is one contiguous recognized-text region.
type TextBlock struct {
	// Text is the recognized content of the block.
	Text string `json:"text"`

	// Bounds is the block's bounding box.
	Bounds Bounds `json:"bounds"`

	// Confidence is the engine's certainty in the range 0.0 to 1.0.
	// Engines that do not score their output report 0.
	Confidence float64 `json:"confidence"`
}

// ErrNoCause is the cause recorded when an engine fails without an error value.
var ErrNoCause = errors.New("engine reported failure without a cause")

// Error is a recognition failure. It wraps the cause the engine supplied,
// whether that is a model load failure, a rejected image or an internal error.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return ErrNoCause.Error()
	}
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Outcome is the result of one recognition request: either an ordered
// sequence of blocks or a failure, never both.
//
// Blocks is never nil on success; an image without text yields an empty
// slice. Err is always non-nil on failure and has a non-empty message.
type Outcome struct {
	Blocks []TextBlock
	Err    *Error
}

// Success returns a successful outcome holding blocks in order.
func Success(blocks []TextBlock) Outcome {
	if blocks == nil {
		blocks = []TextBlock{}
	}
	return Outcome{Blocks: blocks}
}

// Failure returns a failed outcome for cause. A nil cause, or one whose
// message is empty, is replaced with ErrNoCause so the failure is always
// describable.
func Failure(cause error) Outcome {
	if re, ok := cause.(*Error); ok {
		if re != nil && re.Cause != nil && re.Cause.Error() != "" {
			return Outcome{Err: re}
		}
		cause = nil
	}
	if cause == nil || cause.Error() == "" {
		cause = ErrNoCause
	}
	return Outcome{Err: &Error{Cause: cause}}
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}
