// metrics — опциональные Prometheus-метрики клиента.
// Все методы nil-safe: клиент без метрик работает без ветвлений
// на стороне вызывающего.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests   *prometheus.CounterVec
	refreshes  *prometheus.CounterVec
	superseded prometheus.Counter
	duration   *prometheus.HistogramVec
}

// New создаёт и регистрирует коллекторы в reg
// (обычно prometheus.DefaultRegisterer).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mizizzi_client_requests_total",
			Help: "Outbound API requests by method and status code.",
		}, []string{"method", "code"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mizizzi_client_token_refresh_total",
			Help: "Token refresh attempts by result (ok|failed).",
		}, []string{"result"}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mizizzi_client_superseded_total",
			Help: "Requests cancelled because a newer call took over the endpoint.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mizizzi_client_request_duration_seconds",
			Help:    "Outbound request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(m.requests, m.refreshes, m.superseded, m.duration)
	return m
}

func (m *Metrics) ObserveRequest(method string, code int, dur time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveRefresh(ok bool) {
	if m == nil {
		return
	}

	result := "ok"
	if !ok {
		result = "failed"
	}
	m.refreshes.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSuperseded() {
	if m == nil {
		return
	}

	m.superseded.Inc()
}
