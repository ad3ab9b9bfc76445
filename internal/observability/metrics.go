package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for sandbox sessions. A nil *Collector
// is valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	ModeInitializations *prometheus.CounterVec
	ScenarioDurations   *prometheus.HistogramVec
	BaselineMissing     prometheus.Counter
	Transitions         *prometheus.CounterVec
}

// NewCollector registers sandbox metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	inits, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sandbox_mode_initializations_total",
		Help: "Gameplay modes initialized, labeled by mode kind.",
	}, []string{"mode"}), "sandbox_mode_initializations_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sandbox_scenario_instantiate_seconds",
		Help:    "Wall-clock time spent instantiating a scenario, labeled by how it was resolved.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}, []string{"source"}), "sandbox_scenario_instantiate_seconds")
	if err != nil {
		return nil, err
	}

	missing, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sandbox_baseline_missing_total",
		Help: "Mode initializations that ran without prebaked baseline analytics.",
	}), "sandbox_baseline_missing_total")
	if err != nil {
		return nil, err
	}

	transitions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sandbox_transitions_total",
		Help: "Transitions requested by gameplay screens, labeled by kind.",
	}, []string{"kind"}), "sandbox_transitions_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:            gatherer,
		ModeInitializations: inits,
		ScenarioDurations:   durations,
		BaselineMissing:     missing,
		Transitions:         transitions,
	}, nil
}

func (c *Collector) ModeInitialized(mode string) {
	if c == nil || c.ModeInitializations == nil {
		return
	}
	c.ModeInitializations.WithLabelValues(mode).Inc()
}

func (c *Collector) ScenarioInstantiated(source string, took time.Duration) {
	if c == nil || c.ScenarioDurations == nil {
		return
	}
	c.ScenarioDurations.WithLabelValues(source).Observe(took.Seconds())
}

func (c *Collector) NoBaseline() {
	if c == nil || c.BaselineMissing == nil {
		return
	}
	c.BaselineMissing.Inc()
}

func (c *Collector) Transition(kind string) {
	if c == nil || c.Transitions == nil {
		return
	}
	c.Transitions.WithLabelValues(kind).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}
