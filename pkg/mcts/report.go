package mcts

import (
	"github.com/rs/zerolog"
)

// Side channel for diagnostic and invalid-input notices
type Reporter interface {
	Report(msg string)
}

type ReporterFunc func(msg string)

func (f ReporterFunc) Report(msg string) {
	f(msg)
}

type logReporter struct {
	logger zerolog.Logger
}

// Reporter writing every message to the logger, at info level
func LogReporter(logger zerolog.Logger) Reporter {
	return logReporter{logger: logger}
}

func (r logReporter) Report(msg string) {
	r.logger.Info().Msg(msg)
}
