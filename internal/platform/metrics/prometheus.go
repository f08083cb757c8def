package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

// Manager holds the service's custom Prometheus metrics.
type Manager struct {
	Registry                  *prometheus.Registry
	ListingsCreatedTotal      prometheus.Counter
	ListingsDeactivatedTotal  prometheus.Counter
	TransactionsRecordedTotal prometheus.Counter
	StatusTransitionsTotal    *prometheus.CounterVec
	ReviewsSubmittedTotal     prometheus.Counter
	MessagesSentTotal         prometheus.Counter
	APIErrorsTotal            *prometheus.CounterVec
	APILatency                *prometheus.HistogramVec
}

// NewManager initializes and registers the custom metrics on a private
// registry alongside the standard Go and process collectors.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	m := &Manager{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_created_total",
			Help:      "Total number of listings created.",
		}),
		ListingsDeactivatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_deactivated_total",
			Help:      "Total number of listings deactivated by their owner.",
		}),
		TransactionsRecordedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "transactions_recorded_total",
			Help:      "Total number of transactions recorded at checkout.",
		}),
		StatusTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "transaction_status_transitions_total",
			Help:      "Transaction status transitions by target status.",
		}, []string{"to_status"}),
		ReviewsSubmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reviews_submitted_total",
			Help:      "Total number of seller reviews submitted.",
		}),
		MessagesSentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "messages_sent_total",
			Help:      "Total number of messages sent between buyers and sellers.",
		}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by route and error type.",
		}, []string{"route", "error_type"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of API requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.ListingsDeactivatedTotal,
		m.TransactionsRecordedTotal,
		m.StatusTransitionsTotal,
		m.ReviewsSubmittedTotal,
		m.MessagesSentTotal,
		m.APIErrorsTotal,
		m.APILatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// StartServer exposes /metrics on its own port. Blocks.
func StartServer(port string, log logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		log.Info("metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Infof("metrics server starting on :%s/metrics", port)
	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
