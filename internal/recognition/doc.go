// Package recognition forwards captured frames to a text-recognition engine
// and reports what it found.
//
// The central type is Invoker. ExtractText hands a capture.Frame to an Engine
// on a separate goroutine and returns a Pending immediately. When the engine
// finishes, the Invoker writes the result to its Sink:
//
//	Success text = HELLO
//	Success boundingBox = Rect(0, 0 - 50, 20)
//	Success text = WORLD
//	Success boundingBox = Rect(0, 25 - 50, 45)
//
// or, when recognition fails, a single line:
//
//	Failure exception = model unavailable
//
// Exactly one of the two reports is written per request. Nothing is returned
// synchronously as an error; callers that need the result rather than the log
// wait on the Pending and inspect its Outcome.
//
// # Usage
//
//	inv := recognition.NewInvoker(engine, recognition.NewZerologSink(logger))
//	pending := inv.ExtractText(ctx, frame)
//	outcome, err := pending.Wait(ctx)
package recognition
