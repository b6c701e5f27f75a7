package recognition

import "github.com/rs/zerolog"

// Sink receives tagged log messages. Implementations must tolerate concurrent
// calls; completions from independent requests may arrive at the same time.
type Sink interface {
	Log(tag, message string)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(tag, message string)

// Log calls f(tag, message).
func (f SinkFunc) Log(tag, message string) {
	f(tag, message)
}

type zerologSink struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewZerologSink returns a Sink that writes each message to logger at debug
// level with the tag in a "tag" field.
func NewZerologSink(logger zerolog.Logger) Sink {
	return NewZerologSinkLevel(logger, zerolog.DebugLevel)
}

// NewZerologSinkLevel is like NewZerologSink but writes at level.
func NewZerologSinkLevel(logger zerolog.Logger, level zerolog.Level) Sink {
	return &zerologSink{logger: logger, level: level}
}

func (s *zerologSink) Log(tag, message string) {
	s.logger.WithLevel(s.level).Str("tag", tag).Msg(message)
}

// Discard is a Sink that drops every message.
var Discard Sink = SinkFunc(func(string, string) {})
