// SPDX-License-Identifier: MIT

package telemetry

import (
	"strconv"

	"github.com/katalvlaran/admixnmf/admix"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports fit progress as Prometheus collectors.
type Metrics struct {
	Fits          prometheus.Counter
	Iterations    prometheus.Counter
	Converged     prometheus.Counter
	QRMSD         prometheus.Gauge
	Frobenius     prometheus.Gauge
	LogLikelihood *prometheus.GaugeVec // by alpha
	FitDuration   prometheus.Histogram
	BestAlpha     prometheus.Gauge
}

var _ admix.Observer = (*Metrics)(nil)

// NewMetrics builds the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Fits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admixnmf_fits_total",
			Help: "Number of started factorizations",
		}),
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admixnmf_iterations_total",
			Help: "Outer iterations run across all fits",
		}),
		Converged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admixnmf_converged_total",
			Help: "Fits that reached the Q-RMSD tolerance",
		}),
		QRMSD: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "admixnmf_q_rmsd",
			Help: "Q-RMSD of the most recent outer iteration",
		}),
		Frobenius: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "admixnmf_frobenius_error",
			Help: "Total squared reconstruction error of the most recent fit",
		}),
		LogLikelihood: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "admixnmf_log_likelihood",
			Help: "Final log-likelihood per regularization strength",
		}, []string{"alpha"}),
		FitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "admixnmf_fit_duration_seconds",
			Help:    "Wall time of one factorization",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 1800},
		}),
		BestAlpha: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "admixnmf_best_alpha",
			Help: "Alpha selected by the most recent search",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{
		m.Fits, m.Iterations, m.Converged, m.QRMSD, m.Frobenius, m.LogLikelihood, m.FitDuration, m.BestAlpha,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Observe implements admix.Observer.
func (m *Metrics) Observe(e admix.Event) {
	switch e.Kind {
	case admix.EventFitStart:
		m.Fits.Inc()
	case admix.EventIteration:
		m.Iterations.Inc()
		m.QRMSD.Set(e.Value)
	case admix.EventConverged:
		m.Converged.Inc()
	case admix.EventObjective:
		m.Frobenius.Set(e.Value)
	case admix.EventLogLikelihood:
		m.LogLikelihood.WithLabelValues(alphaLabel(e.Alpha)).Set(e.Value)
		m.FitDuration.Observe(e.Elapsed.Seconds())
	case admix.EventSearchBest:
		m.BestAlpha.Set(e.Alpha)
	}
}

func alphaLabel(a float64) string { return strconv.FormatFloat(a, 'g', -1, 64) }
