package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/astar"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
)

// ErrNilRegisterer indicates New was given a nil registerer.
var ErrNilRegisterer = errors.New("metrics: registerer is nil")

// Namespace prefixes every metric name.
const Namespace = "pathsim"

// Search results used as the "result" label.
const (
	ResultFound       = "found"
	ResultUnreachable = "unreachable"
	ResultError       = "error"
)

// Collector records controller events. It is safe for concurrent use.
type Collector struct {
	searches       *prometheus.CounterVec
	expanded       prometheus.Histogram
	searchDuration prometheus.Histogram
	ticks          *prometheus.CounterVec
	runs           *prometheus.CounterVec
	runSteps       prometheus.Histogram
	runDuration    prometheus.Histogram
	sessions       prometheus.Gauge
}

var _ explore.Observer = (*Collector)(nil)

// New registers the exploration metrics on reg.
// Registering twice on the same registry panics, as promauto does.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "search",
			Name:      "calls_total",
			Help:      "Pathfinder calls by selection branch and result",
		}, []string{"decision", "result"}),
		expanded: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "search",
			Name:      "expanded_cells",
			Help:      "Cells expanded per pathfinder call",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		searchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Pathfinder wall time per call",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.05},
		}),
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ticks_total",
			Help:      "Completed ticks by selection branch",
		}, []string{"decision"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "run",
			Name:      "finished_total",
			Help:      "Runs that left Running, by outcome",
		}, []string{"outcome"}),
		runSteps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "run",
			Name:      "steps",
			Help:      "Moves taken per finished run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 13),
		}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Elapsed time per finished run",
			Buckets:   prometheus.DefBuckets,
		}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sessions_active",
			Help:      "Simulations currently held by the server",
		}),
	}, nil
}

// ObserveSearch counts one pathfinder call. res may be nil when the call
// failed before searching.
func (c *Collector) ObserveSearch(d explore.Decision, res *astar.Result, err error) {
	result := ResultFound
	switch {
	case errors.Is(err, astar.ErrUnreachable):
		result = ResultUnreachable
	case err != nil:
		result = ResultError
	}
	c.searches.WithLabelValues(d.String(), result).Inc()
	if res == nil {
		return
	}
	c.expanded.Observe(float64(res.Expanded))
	c.searchDuration.Observe(res.Elapsed.Seconds())
}

// ObserveTick counts one completed tick.
func (c *Collector) ObserveTick(r explore.Report) {
	c.ticks.WithLabelValues(r.Decision.String()).Inc()
}

// ObserveFinish records the end of a run.
func (c *Collector) ObserveFinish(o explore.Outcome, steps int, elapsed time.Duration) {
	c.runs.WithLabelValues(o.String()).Inc()
	c.runSteps.Observe(float64(steps))
	c.runDuration.Observe(elapsed.Seconds())
}

// SessionOpened increments the live session gauge.
func (c *Collector) SessionOpened() { c.sessions.Inc() }

// SessionClosed decrements the live session gauge.
func (c *Collector) SessionClosed() { c.sessions.Dec() }
