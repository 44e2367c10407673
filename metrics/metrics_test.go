package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", 200, 30*time.Millisecond)
	m.ObserveRequest("GET", 200, 10*time.Millisecond)
	m.ObserveRequest("POST", 503, 5*time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("POST", "503")))
}

func TestMetrics_ObserveRefresh(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRefresh(true)
	m.ObserveRefresh(false)
	m.ObserveRefresh(false)

	require.Equal(t, float64(1), testutil.ToFloat64(m.refreshes.WithLabelValues("ok")))
	require.Equal(t, float64(2), testutil.ToFloat64(m.refreshes.WithLabelValues("failed")))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics

	// nil-приёмник полностью отключает метрики без паники.
	m.ObserveRequest("GET", 200, time.Millisecond)
	m.ObserveRefresh(true)
	m.ObserveSuperseded()
}
