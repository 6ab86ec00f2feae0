// SPDX-License-Identifier: MIT

package admix

import (
	"sync"
	"time"
)

// EventKind names a progress event.
type EventKind string

const (
	// EventFitStart is emitted once per Fit with K, Alpha, Batches and Seed set.
	EventFitStart EventKind = "fit_start"

	// EventIteration carries the Q-RMSD of one outer iteration.
	EventIteration EventKind = "iteration"

	// EventConverged is emitted when Q-RMSD drops below the tolerance.
	EventConverged EventKind = "converged"

	// EventObjective carries the final total squared reconstruction error.
	EventObjective EventKind = "objective"

	// EventLogLikelihood carries the final log-likelihood and the fit's wall time.
	EventLogLikelihood EventKind = "log_likelihood"

	// EventAlphaTrial reports one (alpha, log-likelihood) evaluation of AlphaSearch.
	EventAlphaTrial EventKind = "alpha_trial"

	// EventSearchDepth opens a refinement round (Depth, current best Alpha).
	EventSearchDepth EventKind = "search_depth"

	// EventSearchBest reports the selected alpha and its log-likelihood.
	EventSearchBest EventKind = "search_best"
)

// Metric names attached to events.
const (
	MetricQRMSD         = "q_rmsd"
	MetricFrobenius     = "frobenius"
	MetricLogLikelihood = "log_likelihood"
)

// Event is one structured progress record. Fields not relevant to a kind
// are left at their zero value.
type Event struct {
	Kind      EventKind
	Iteration int     // outer iteration (1-based) for iteration/converged
	Metric    string  // metric name for Value
	Value     float64 // metric value
	Alpha     float64 // regularization strength of the run
	K         int
	Batches   int
	Seed      uint64
	Depth     int           // search round (1-based)
	Elapsed   time.Duration // wall time since fit start, on log_likelihood
}

// Observer receives progress events. Implementations must be safe to call
// from the goroutine running Fit; events arrive in emission order.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Discard drops every event.
var Discard Observer = ObserverFunc(func(Event) {})

type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}

	return out
}

// Recorder keeps every event it observes. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe appends e.
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// Kind returns the recorded events of the given kind, in order.
func (r *Recorder) Kind(kind EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}

	return out
}
