// Package metrics provides Prometheus metrics for the applicant ranking pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared with callers.
const (
	ResultSuccess = "success"
	ResultEmpty   = "empty"
	ResultFailed  = "failed"
)

// Manager manages all Prometheus metrics for one pipeline registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Intake
	linesRead      prometheus.Counter
	linesRejected  *prometheus.CounterVec
	headersSkipped prometheus.Counter

	// Pool
	duplicatesCollapsed prometheus.Counter
	poolSize            prometheus.Gauge
	adjustments         *prometheus.CounterVec

	// Report
	averageScore prometheus.Gauge
	topCount     prometheus.Gauge
	runs         *prometheus.CounterVec

	stageDuration *prometheus.HistogramVec
}

// defaultManager backs Default. Its registry holds only pipeline metrics, no
// Go runtime collectors.
var defaultManager = NewManager()

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "applicants",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000},
		enabled:          true,
		customLabels:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.linesRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lines_read_total",
		Help:        "Total number of data lines read from input files",
		ConstLabels: labels,
	})

	m.linesRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lines_rejected_total",
		Help:        "Total number of data lines dropped by validation, by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.headersSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "headers_skipped_total",
		Help:        "Total number of header lines recognized and skipped",
		ConstLabels: labels,
	})

	m.duplicatesCollapsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicates_collapsed_total",
		Help:        "Total number of valid records replaced by a later record with the same email",
		ConstLabels: labels,
	})

	m.poolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pool_size",
		Help:        "Number of unique applicants in the last processed pool",
		ConstLabels: labels,
	})

	m.adjustments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "adjustments_total",
		Help:        "Total number of score adjustments applied, by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.averageScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "average_score",
		Help:        "Average raw score of the top half in the last report",
		ConstLabels: labels,
	})

	m.topCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "top_applicants",
		Help:        "Number of surnames listed in the last report",
		ConstLabels: labels,
	})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of pipeline runs, by result",
		ConstLabels: labels,
	}, []string{"result"})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_milliseconds",
		Help:        "Duration of each pipeline stage in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"stage"})
}

// RecordLineRead increments the lines read counter.
func (m *Manager) RecordLineRead() {
	if m.enabled {
		m.linesRead.Inc()
	}
}

// RecordLineRejected increments the rejection counter for reason.
func (m *Manager) RecordLineRejected(reason string) {
	if m.enabled {
		m.linesRejected.WithLabelValues(reason).Inc()
	}
}

// RecordHeaderSkipped increments the skipped header counter.
func (m *Manager) RecordHeaderSkipped() {
	if m.enabled {
		m.headersSkipped.Inc()
	}
}

// RecordDuplicatesCollapsed adds count to the collapsed duplicates counter.
func (m *Manager) RecordDuplicatesCollapsed(count int) {
	if m.enabled && count > 0 {
		m.duplicatesCollapsed.Add(float64(count))
	}
}

// UpdatePoolSize sets the pool size gauge.
func (m *Manager) UpdatePoolSize(size int) {
	if m.enabled {
		m.poolSize.Set(float64(size))
	}
}

// RecordAdjustments adds count to the adjustment counter for outcome.
func (m *Manager) RecordAdjustments(outcome string, count int) {
	if m.enabled && count > 0 {
		m.adjustments.WithLabelValues(outcome).Add(float64(count))
	}
}

// UpdateReport sets the gauges describing the last report.
func (m *Manager) UpdateReport(topCount int, averageScore float64) {
	if m.enabled {
		m.topCount.Set(float64(topCount))
		m.averageScore.Set(averageScore)
	}
}

// RecordRun increments the run counter for result.
func (m *Manager) RecordRun(result string) {
	if m.enabled {
		m.runs.WithLabelValues(result).Inc()
	}
}

// RecordStageDuration observes a stage duration in milliseconds.
func (m *Manager) RecordStageDuration(stage string, latencyMs float64) {
	if m.enabled {
		m.stageDuration.WithLabelValues(stage).Observe(latencyMs)
	}
}

// Registry returns the registry the manager's metrics live in.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric of the manager's registry to path in the
// Prometheus text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Default returns the process-wide manager used when none is configured.
func Default() *Manager { return defaultManager }
