package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/reconciler/pkg/fiber"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconciler").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reconciler",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is the Prometheus render middleware.
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
}

// Prometheus creates middleware that collects Prometheus metrics for fiber
// renders. The metrics are registered on the configured registry, so
// create one Metrics per registry.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of fiber renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Fiber render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of fiber render errors",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "error_type"}),
	}
}

// Handle implements fiber.Middleware.
func (m *Metrics) Handle(ctx context.Context, info fiber.RenderInfo, next func(context.Context) error) error {
	start := time.Now()
	err := next(ctx)
	m.renderDuration.WithLabelValues(info.Component).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
		m.renderErrors.WithLabelValues(info.Component, categorizeError(err)).Inc()
	}
	m.rendersTotal.WithLabelValues(info.Component, status).Inc()
	return err
}

// categorizeError maps render errors to a small label set.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, fiber.ErrHookCreatedAfterMount):
		return "hook_after_mount"
	case errors.Is(err, fiber.ErrHookTypeMismatch):
		return "hook_mismatch"
	case errors.Is(err, fiber.ErrComponentPanic):
		return "panic"
	case errors.Is(err, fiber.ErrInvalidProps):
		return "invalid_props"
	case errors.Is(err, fiber.ErrUseAfterUnmount):
		return "use_after_unmount"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}

// RegisterRootStats registers gauges and counters reading root.Stats() on
// every scrape.
func RegisterRootStats(reg prometheus.Registerer, namespace string, root *fiber.Root) error {
	counter := func(name, help string, get func(fiber.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(get(root.Stats())) })
	}
	gauge := func(name, help string, get func(fiber.Stats) int64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(get(root.Stats())) })
	}

	collectors := []prometheus.Collector{
		counter("root_passes_total", "Render passes run by the root",
			func(s fiber.Stats) uint64 { return s.Passes }),
		counter("root_commits_total", "Fiber outputs committed to the target",
			func(s fiber.Stats) uint64 { return s.Commits }),
		counter("root_commit_errors_total", "Target commits that failed",
			func(s fiber.Stats) uint64 { return s.CommitErrors }),
		counter("root_skipped_total", "Memo renders skipped on equal props",
			func(s fiber.Stats) uint64 { return s.Skipped }),
		counter("root_destroyed_total", "Fibers destroyed",
			func(s fiber.Stats) uint64 { return s.Destroyed }),
		counter("root_budget_exceeded_total", "Passes stopped by the render budget",
			func(s fiber.Stats) uint64 { return s.BudgetExceeded }),
		counter("root_memo_computes_total", "Memo hook computations",
			func(s fiber.Stats) uint64 { return s.MemoComputes }),
		gauge("root_live_fibers", "Fibers currently mounted",
			func(s fiber.Stats) int64 { return s.LiveFibers }),
		gauge("root_pending_fibers", "Fibers waiting in the dirty queue",
			func(s fiber.Stats) int64 { return s.Pending }),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
