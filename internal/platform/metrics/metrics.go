package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors shared across modules.
type Metrics struct {
	ScoreRecomputations prometheus.Counter
	RecomputeConflicts  prometheus.Counter
	ReviewTransitions   *prometheus.CounterVec
	DisclosureAccess    *prometheus.CounterVec
	AccessLogFailures   prometheus.Counter
	IntroductionChecks  *prometheus.CounterVec
	Notifications       *prometheus.CounterVec
	NotificationBacklog prometheus.Gauge
	RequestLatency      *prometheus.HistogramVec
}

// New creates and registers all metrics on reg. Passing nil uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ScoreRecomputations: f.NewCounter(prometheus.CounterOpts{
			Name: "proofpack_score_recomputations_total",
			Help: "Total number of pack health recomputations committed",
		}),
		RecomputeConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "proofpack_recompute_conflicts_total",
			Help: "Total number of recomputations retried after losing a version race",
		}),
		ReviewTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "proofpack_review_transitions_total",
			Help: "QA review transitions by target status and outcome",
		}, []string{"to", "outcome"}),
		DisclosureAccess: f.NewCounterVec(prometheus.CounterOpts{
			Name: "proofpack_disclosure_access_total",
			Help: "Disclosure gateway calls by phase and outcome",
		}, []string{"phase", "outcome"}),
		AccessLogFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "proofpack_access_log_failures_total",
			Help: "Access log writes that failed and denied the read",
		}),
		IntroductionChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "proofpack_introduction_checks_total",
			Help: "Introduction requests by eligibility outcome",
		}, []string{"outcome"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "proofpack_notifications_total",
			Help: "Notification dispatch outcomes by event kind",
		}, []string{"kind", "outcome"}),
		NotificationBacklog: f.NewGauge(prometheus.GaugeOpts{
			Name: "proofpack_notification_backlog",
			Help: "Notifications waiting for delivery",
		}),
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "proofpack_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// ObserveRequest records a request duration.
func (m *Metrics) ObserveRequest(route, method string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, method).Observe(d.Seconds())
}

// Handler exposes the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}
