package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "servicehub", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "servicehub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "servicehub", Name: "cart_mutations_total", Help: "Cart mutations by operation"},
		[]string{"op"},
	)
	CartPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "servicehub", Name: "cart_persist_failures_total", Help: "Cart writes that failed after all retries",
	})

	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "servicehub", Name: "search_queries_total", Help: "Catalog queries by kind"},
		[]string{"kind"},
	)
	CatalogServices = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "servicehub", Name: "catalog_services", Help: "Services in the current catalog snapshot",
	})

	VoiceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "servicehub", Name: "voice_requests_total", Help: "Voice requests by resulting status"},
		[]string{"status"},
	)
	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "servicehub", Name: "booking_transitions_total", Help: "Booking status transitions"},
		[]string{"status"},
	)
)
