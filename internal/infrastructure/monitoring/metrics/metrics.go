// Package metrics registers and exposes the engine's Prometheus metrics.
// A single Metrics struct owns every instrument; components receive it via
// constructor injection and never talk to the prometheus registry directly.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default histogram buckets.
var (
	DefaultHTTPDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultScoringDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
)

// Metrics holds all engine metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Conversation layer
	TurnsTotal              *prometheus.CounterVec // labels: stage, outcome
	ValidationFailuresTotal *prometheus.CounterVec // labels: stage
	ResetsTotal             prometheus.Counter
	ActiveSessions          prometheus.Gauge
	SessionsCompletedTotal  prometheus.Counter

	// Prediction layer
	PredictionsTotal      prometheus.Counter
	PredictionDuration    prometheus.Histogram
	PredictionProbability prometheus.Histogram
	GroundsMatchedPerCase prometheus.Histogram
	CalibrationRunsTotal  *prometheus.CounterVec // labels: adjusted
	CalibrationAccuracy   prometheus.Gauge
	WeightSnapshotVersion prometheus.Gauge

	// Collaborators
	CollaboratorCallsTotal *prometheus.CounterVec // labels: collaborator, outcome
	SubmissionsTotal       *prometheus.CounterVec // labels: outcome
}

// New registers all metrics on a fresh registry under the given namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{Namespace: namespace}))

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests.",
	}, []string{"method", "path", "status"})
	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds",
		Help: "HTTP request duration.", Buckets: DefaultHTTPDurationBuckets,
	}, []string{"method", "path"})

	m.TurnsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "conversation_turns_total",
		Help: "Conversation turns processed, by stage and outcome.",
	}, []string{"stage", "outcome"})
	m.ValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "conversation_validation_failures_total",
		Help: "Stage validator rejections, by stage.",
	}, []string{"stage"})
	m.ResetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "conversation_resets_total",
		Help: "Explicit session resets.",
	})
	m.ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "conversation_active_sessions",
		Help: "Sessions currently held in the store.",
	})
	m.SessionsCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "conversation_sessions_completed_total",
		Help: "Sessions that reached the terminal stage.",
	})

	m.PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "prediction_requests_total",
		Help: "Scoring engine invocations.",
	})
	m.PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "prediction_duration_seconds",
		Help: "Scoring engine latency.", Buckets: DefaultScoringDurationBuckets,
	})
	m.PredictionProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "prediction_probability",
		Help:    "Distribution of predicted success probabilities.",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
	m.GroundsMatchedPerCase = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "prediction_grounds_matched",
		Help:    "Matched legal grounds per prediction.",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 7, 10},
	})
	m.CalibrationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "calibration_runs_total",
		Help: "Calibration batch runs, by whether weights were adjusted.",
	}, []string{"adjusted"})
	m.CalibrationAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "calibration_accuracy",
		Help: "Accuracy of the most recent calibration replay.",
	})
	m.WeightSnapshotVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "weight_snapshot_version",
		Help: "Version of the live scoring weight snapshot.",
	})

	m.CollaboratorCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "collaborator_calls_total",
		Help: "External collaborator calls, by collaborator and outcome.",
	}, []string{"collaborator", "outcome"})
	m.SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "case_submissions_total",
		Help: "Finalized case submissions, by outcome.",
	}, []string{"outcome"})

	reg.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.TurnsTotal, m.ValidationFailuresTotal, m.ResetsTotal,
		m.ActiveSessions, m.SessionsCompletedTotal,
		m.PredictionsTotal, m.PredictionDuration, m.PredictionProbability,
		m.GroundsMatchedPerCase, m.CalibrationRunsTotal, m.CalibrationAccuracy,
		m.WeightSnapshotVersion,
		m.CollaboratorCallsTotal, m.SubmissionsTotal,
	)
	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
