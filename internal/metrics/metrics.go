package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simaogato/spendcast-backend/internal/domain"
)

// Outcome labels for analysis operations
const (
	OutcomeSuccess      = "success"
	OutcomeInsufficient = "insufficient_data"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// Registry holds the Prometheus collectors for the service.
// It owns a private prometheus.Registry so tests can build as many as they like.
type Registry struct {
	registry *prometheus.Registry

	// Transport metrics
	RequestDuration *prometheus.HistogramVec
	Requests        *prometheus.CounterVec

	// Analysis metrics
	Analyses        *prometheus.CounterVec
	RecommendedTier *prometheus.CounterVec

	// Digest metrics
	DigestsSent   prometheus.Counter
	DigestsFailed prometheus.Counter
	DigestLastRun prometheus.Gauge
}

// NewRegistry creates a registry with every service metric plus the Go and process collectors
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spendcast_request_duration_seconds",
				Help:    "Duration of transport requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"transport", "route"},
		),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendcast_requests_total",
				Help: "Total number of transport requests by status",
			},
			[]string{"transport", "route", "status"},
		),

		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendcast_analyses_total",
				Help: "Total number of forecast, recommendation and trend analyses by outcome",
			},
			[]string{"kind", "outcome"},
		),

		RecommendedTier: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendcast_recommendation_tier_total",
				Help: "Total number of recommendations produced per tier",
			},
			[]string{"tier"},
		),

		DigestsSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spendcast_digests_sent_total",
				Help: "Total number of monthly digests delivered",
			},
		),

		DigestsFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spendcast_digests_failed_total",
				Help: "Total number of monthly digests that could not be computed or delivered",
			},
		),

		DigestLastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spendcast_digest_last_run_timestamp_seconds",
				Help: "Unix time of the last completed digest run",
			},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.RequestDuration,
		r.Requests,
		r.Analyses,
		r.RecommendedTier,
		r.DigestsSent,
		r.DigestsFailed,
		r.DigestLastRun,
	)

	return r
}

// ObserveRequest records one transport request
func (r *Registry) ObserveRequest(transport, route, status string, duration time.Duration) {
	r.RequestDuration.WithLabelValues(transport, route).Observe(duration.Seconds())
	r.Requests.WithLabelValues(transport, route, status).Inc()
}

// RecordAnalysis counts one analysis of the given kind
func (r *Registry) RecordAnalysis(kind, outcome string) {
	r.Analyses.WithLabelValues(kind, outcome).Inc()
}

// RecordTier counts one produced recommendation tier
func (r *Registry) RecordTier(tier string) {
	r.RecommendedTier.WithLabelValues(tier).Inc()
}

// RecordDigestRun records the outcome counts of a digest run
func (r *Registry) RecordDigestRun(sent, failed int, at time.Time) {
	r.DigestsSent.Add(float64(sent))
	r.DigestsFailed.Add(float64(failed))
	r.DigestLastRun.Set(float64(at.Unix()))
}

// Gatherer exposes the underlying registry for scraping and tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving this registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// AnalysisOutcome classifies an analysis call for RecordAnalysis
func AnalysisOutcome(success bool, err error) string {
	switch {
	case err != nil && domain.IsValidation(err):
		return OutcomeInvalid
	case err != nil:
		return OutcomeError
	case !success:
		return OutcomeInsufficient
	default:
		return OutcomeSuccess
	}
}

// Recorder is the subset of Registry the transports report to
type Recorder interface {
	ObserveRequest(transport, route, status string, duration time.Duration)
	RecordAnalysis(kind, outcome string)
	RecordTier(tier string)
}

// Nop returns a Recorder that discards everything
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, string, string, time.Duration) {}
func (nopRecorder) RecordAnalysis(string, string)                        {}
func (nopRecorder) RecordTier(string)                                    {}
