package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors and the registry that
// backs the /metrics endpoint.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	WSSessions   prometheus.Gauge
	WSRooms      prometheus.Gauge
	MessagesSent prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hirebuddy",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hirebuddy",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		WSSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hirebuddy",
			Name:      "relay_sessions",
			Help:      "Currently connected relay sessions.",
		}),
		WSRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hirebuddy",
			Name:      "relay_rooms",
			Help:      "Rooms with at least one connected session.",
		}),
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hirebuddy",
			Name:      "messages_sent_total",
			Help:      "Chat messages accepted and persisted.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.WSSessions,
		m.WSRooms,
		m.MessagesSent,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
