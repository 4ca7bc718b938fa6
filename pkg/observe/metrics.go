package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus cell metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "tether").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus cell metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "tether",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a tether.Observer that records cell activity as
// Prometheus metrics:
//
//   - tether_syncs_total: Counter of source-to-cell synchronizations by cell
//   - tether_local_edits_total: Counter of genuine local edits by cell
//   - tether_severances_total: Counter of tether severances by cell
//   - tether_resets_total: Counter of Reset calls by cell
//   - tether_live_cells: Gauge of cells created and not yet disposed
type Metrics struct {
	syncsTotal      *prometheus.CounterVec
	localEditsTotal *prometheus.CounterVec
	severancesTotal *prometheus.CounterVec
	resetsTotal     *prometheus.CounterVec
	liveCells       prometheus.Gauge
}

// NewMetrics creates cell metrics registered with the configured
// registry (the default registerer unless WithRegistry is given).
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		syncsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "syncs_total",
			Help:        "Total number of source-to-cell synchronizations",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		localEditsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "local_edits_total",
			Help:        "Total number of genuine local cell edits",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		severancesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "severances_total",
			Help:        "Total number of tether severances caused by local edits",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		resetsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resets_total",
			Help:        "Total number of cell resets",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		liveCells: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_cells",
			Help:        "Number of cells created and not yet disposed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// CellCreated implements tether.Observer.
func (m *Metrics) CellCreated(string) {
	m.liveCells.Inc()
}

// CellDisposed implements tether.Observer.
func (m *Metrics) CellDisposed(string) {
	m.liveCells.Dec()
}

// CellSynced implements tether.Observer.
func (m *Metrics) CellSynced(name string) {
	m.syncsTotal.WithLabelValues(name).Inc()
}

// CellEdited implements tether.Observer.
func (m *Metrics) CellEdited(name string) {
	m.localEditsTotal.WithLabelValues(name).Inc()
}

// CellSevered implements tether.Observer.
func (m *Metrics) CellSevered(name string) {
	m.severancesTotal.WithLabelValues(name).Inc()
}

// CellReset implements tether.Observer.
func (m *Metrics) CellReset(name string) {
	m.resetsTotal.WithLabelValues(name).Inc()
}
