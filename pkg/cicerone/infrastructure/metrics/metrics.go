package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

const resultSuccess = "success"

const (
	operationDescribe = "describe"
	operationComplete = "complete"
	operationSearch   = "search"
)

var (
	once sync.Once

	// ProviderRequestsTotal counts calls to remote providers by provider, operation and result.
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cicerone",
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Total number of calls to vision, text and search providers, labeled by result.",
	}, []string{"provider", "operation", "result"})

	// ProviderRequestDurationSeconds how long provider calls take.
	ProviderRequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cicerone",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Time spent waiting for vision, text and search providers.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider", "operation"})

	// ActiveSessions the number of sessions currently kept in memory.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cicerone",
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Number of sessions currently kept in memory.",
	})

	// ExpiredSessionsTotal sessions removed because they were idle for too long.
	ExpiredSessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cicerone",
		Subsystem: "sessions",
		Name:      "expired_total",
		Help:      "Total number of sessions removed after being idle for too long.",
	})
)

// Register registers the metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ProviderRequestsTotal,
			ProviderRequestDurationSeconds,
			ActiveSessions,
			ExpiredSessionsTotal,
		)
	})
}

func observe(provider, operation string, startedAt time.Time, err error) {
	ProviderRequestsTotal.WithLabelValues(provider, operation, resultOf(err)).Inc()
	ProviderRequestDurationSeconds.WithLabelValues(provider, operation).Observe(time.Since(startedAt).Seconds())
}

func resultOf(err error) string {
	if err == nil {
		return resultSuccess
	}
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Reason.String()
	}
	return domain.FailureReasonProvider.String()
}
