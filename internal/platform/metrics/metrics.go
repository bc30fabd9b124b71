package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated  prometheus.Counter
	SearchesTotal *prometheus.CounterVec
	SpamReports   prometheus.Counter
	RequestTime   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "truedial_users_created_total",
			Help: "Total number of accounts created",
		}),
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "truedial_searches_total",
			Help: "Total searches served, by query kind",
		}, []string{"kind"}),
		SpamReports: promauto.NewCounter(prometheus.CounterOpts{
			Name: "truedial_spam_reports_total",
			Help: "Total spam reports accepted",
		}),
		RequestTime: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "truedial_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncrementUsersCreated() { m.UsersCreated.Inc() }

func (m *Metrics) IncrementSearches(kind string) { m.SearchesTotal.WithLabelValues(kind).Inc() }

func (m *Metrics) IncrementSpamReports() { m.SpamReports.Inc() }

// ObserveRequest records one request's latency in seconds.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.RequestTime.WithLabelValues(route, status).Observe(seconds)
}
