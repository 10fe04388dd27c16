package diagnostic

import (
	"os"

	"github.com/rs/zerolog"
)

// LogSink writes diagnostics as structured zerolog events.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink writing through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// NewStderrSink creates a LogSink with stderr output and timestamps.
func NewStderrSink() *LogSink {
	return NewLogSink(zerolog.New(os.Stderr).With().Timestamp().Logger())
}

// Emit logs d at the level matching its severity.
func (s *LogSink) Emit(d Diagnostic) {
	var event *zerolog.Event

	switch d.Severity {
	case SeverityError:
		event = s.logger.Error()
	case SeverityWarning:
		event = s.logger.Warn()
	default:
		event = s.logger.Info()
	}

	if d.Code != "" {
		event = event.Str("code", d.Code)
	}

	if d.Column != NoColumn {
		event = event.Int("column", d.Column)
	}

	if d.Field != "" {
		event = event.Str("field", d.Field)
	}

	if len(d.Suggestions) > 0 {
		event = event.Strs("suggestions", d.Suggestions)
	}

	event.Msg(d.Message)
}
