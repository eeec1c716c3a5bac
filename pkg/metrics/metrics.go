package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen *prometheus.GaugeVec

	// Бронирования
	BookingOutcomes *prometheus.CounterVec
	CommitAttempts  *prometheus.HistogramVec
	OutboxPublished *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
// В тестах используется prometheus.NewRegistry(), чтобы не конфликтовать с глобальным
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBConnectionsOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_outcomes_total",
			Help:        "Outcomes of quote, commit, cancel and no-show operations",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		CommitAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_commit_attempts",
			Help:        "Number of transaction attempts per commit",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 3, 4, 5},
		}, []string{"outcome"}),

		OutboxPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_events_published_total",
			Help:        "Outbox events published to the broker",
			ConstLabels: constLabels,
		}, []string{"event_type"}),
	}
}

// ObserveBooking учитывает результат операции бронирования
// Безопасно вызывать на nil (метрики выключены)
func (m *Metrics) ObserveBooking(operation, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(operation, outcome).Inc()
}

// ObserveCommitAttempts учитывает количество попыток транзакции commit
func (m *Metrics) ObserveCommitAttempts(outcome string, attempts int) {
	if m == nil {
		return
	}
	m.CommitAttempts.WithLabelValues(outcome).Observe(float64(attempts))
}

// ObserveOutboxPublished учитывает опубликованные события
func (m *Metrics) ObserveOutboxPublished(eventType string, n int) {
	if m == nil {
		return
	}
	m.OutboxPublished.WithLabelValues(eventType).Add(float64(n))
}
