// Package metrics provides Prometheus instrumentation for tabula. It counts
// decoded rows and columns, parse outcomes and cell failures, and records
// parse latency.
//
// # Basic Usage
//
//	m := metrics.Default()
//	timer := metrics.NewTimer("header")
//	df, err := decode()
//	m.ObserveParse("header", timer.Stop(), err)
//	m.RowsDecoded.WithLabelValues("header").Add(float64(df.RowCount()))
//
// A nil *Metrics is valid and records nothing, which is how instrumentation
// is switched off.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

const namespace = "tabula"

// Metrics groups the collectors recorded by the parser.
type Metrics struct {
	// ParsesTotal counts parse calls.
	// Labels: mode (header/schema), status (success/failure)
	ParsesTotal *prometheus.CounterVec

	// RowsDecoded counts data rows turned into column values.
	// Labels: mode
	RowsDecoded *prometheus.CounterVec

	// ColumnsBuilt counts frozen columns by kind.
	// Labels: kind (Int, Double, ...)
	ColumnsBuilt *prometheus.CounterVec

	// ParseErrors counts failed parses by error type.
	// Labels: type (schema_mismatch, row_shape_mismatch, value_parse, ...)
	ParseErrors *prometheus.CounterVec

	// ParseDuration tracks whole-parse latency in seconds.
	// Labels: mode
	ParseDuration *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// New registers a fresh set of collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ParsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parses_total",
				Help:      "Total number of parse calls",
			},
			[]string{"mode", "status"},
		),
		RowsDecoded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_decoded_total",
				Help:      "Total number of data rows decoded",
			},
			[]string{"mode"},
		),
		ColumnsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "columns_built_total",
				Help:      "Total number of columns built",
			},
			[]string{"kind"},
		),
		ParseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_errors_total",
				Help:      "Total number of failed parses by error type",
			},
			[]string{"type"},
		),
		ParseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "Parse latency in seconds",
				Buckets: []float64{
					1e-5, // 10μs - a handful of rows
					1e-4, // 100μs
					1e-3, // 1ms
					1e-2, // 10ms
					1e-1, // 100ms
					1,    // 1s - large files
					10,
				},
			},
			[]string{"mode"},
		),
	}
}

// Default returns the collectors registered with the default Prometheus
// registry. They are created on first use.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// ObserveParse records the outcome and latency of one parse.
func (m *Metrics) ObserveParse(mode string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
		m.ParseErrors.WithLabelValues(string(errors.TypeOf(err))).Inc()
	}
	m.ParsesTotal.WithLabelValues(mode, status).Inc()
	m.ParseDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// ObserveRows adds n decoded rows.
func (m *Metrics) ObserveRows(mode string, n int) {
	if m == nil {
		return
	}
	m.RowsDecoded.WithLabelValues(mode).Add(float64(n))
}

// ObserveColumn counts one built column of the given kind.
func (m *Metrics) ObserveColumn(kind string) {
	if m == nil {
		return
	}
	m.ColumnsBuilt.WithLabelValues(kind).Inc()
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the label the timer was created with.
func (t *Timer) Name() string { return t.name }

// Stop returns the elapsed duration since creation. The timer can be
// stopped multiple times.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
