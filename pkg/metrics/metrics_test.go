package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// counterValue returns the value of the series of family name whose labels
// include all of want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserveParse(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveParse("header", 2*time.Millisecond, nil)
	m.ObserveParse("header", time.Millisecond, errors.New(errors.ErrorTypeRowShape, "bad row"))
	m.ObserveParse("schema", time.Millisecond, nil)

	assert.Equal(t, 1.0, counterValue(t, reg, "tabula_parses_total", map[string]string{"mode": "header", "status": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tabula_parses_total", map[string]string{"mode": "header", "status": "failure"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tabula_parse_errors_total", map[string]string{"type": "row_shape_mismatch"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "tabula_parse_duration_seconds", map[string]string{"mode": "header"}))
}

func TestObserveRowsAndColumns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRows("header", 3)
	m.ObserveRows("header", 2)
	m.ObserveColumn("Category")

	assert.Equal(t, 5.0, counterValue(t, reg, "tabula_rows_decoded_total", map[string]string{"mode": "header"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tabula_columns_built_total", map[string]string{"kind": "Category"}))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveParse("header", time.Second, nil)
		m.ObserveRows("header", 1)
		m.ObserveColumn("Int")
	})
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestTimer(t *testing.T) {
	timer := NewTimer("header")
	assert.Equal(t, "header", timer.Name())
	first := timer.Stop()
	assert.GreaterOrEqual(t, timer.Stop(), first)
}
