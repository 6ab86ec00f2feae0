// SPDX-License-Identifier: MIT

package telemetry

import (
	"github.com/katalvlaran/admixnmf/admix"
	"github.com/rs/zerolog"
)

// LogObserver writes one log line per event.
// Iteration lines are Debug; everything else is Info.
type LogObserver struct {
	log zerolog.Logger
}

var _ admix.Observer = (*LogObserver)(nil)

// NewLogObserver returns an observer writing to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{log: logger}
}

// Observe implements admix.Observer.
func (l *LogObserver) Observe(e admix.Event) {
	switch e.Kind {
	case admix.EventFitStart:
		l.log.Info().Str("event", string(e.Kind)).
			Int("k", e.K).Float64("alpha", e.Alpha).Int("batches", e.Batches).Uint64("seed", e.Seed).
			Msg("NMF fit")
	case admix.EventIteration:
		l.log.Debug().Str("event", string(e.Kind)).
			Int("iteration", e.Iteration).Float64(e.Metric, e.Value).
			Msg("CSG-MU")
	case admix.EventConverged:
		l.log.Info().Str("event", string(e.Kind)).
			Int("iteration", e.Iteration).Float64(e.Metric, e.Value).
			Msg("CSG-MU has converged")
	case admix.EventObjective:
		l.log.Info().Str("event", string(e.Kind)).Float64(e.Metric, e.Value).Msg("Frobenius error")
	case admix.EventLogLikelihood:
		l.log.Info().Str("event", string(e.Kind)).
			Float64("alpha", e.Alpha).Float64(e.Metric, e.Value).Dur("elapsed", e.Elapsed).
			Msg("Log-likelihood")
	case admix.EventAlphaTrial:
		l.log.Info().Str("event", string(e.Kind)).
			Int("depth", e.Depth).Float64("alpha", e.Alpha).Float64(e.Metric, e.Value).
			Msg("alpha trial")
	case admix.EventSearchDepth:
		l.log.Info().Str("event", string(e.Kind)).
			Int("depth", e.Depth).Float64("best_alpha", e.Alpha).
			Msg("alpha search")
	case admix.EventSearchBest:
		l.log.Info().Str("event", string(e.Kind)).
			Float64("alpha", e.Alpha).Float64(e.Metric, e.Value).
			Msg("best alpha")
	default:
		l.log.Warn().Str("event", string(e.Kind)).Msg("unknown event")
	}
}
