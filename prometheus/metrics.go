package prometheus

import (
	"time"

	"discovery-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Discovery request metrics
	DiscoveryRequestsCounter  prometheus.CounterVec
	RankingDuration           prometheus.HistogramVec
	CandidatesConsidered      prometheus.Counter
	CandidatesReturned        prometheus.Counter
	RankingUnavailableCounter prometheus.Counter

	// Placement slot metrics
	SlotResolutionCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of viewer token validations attempted",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of invalid viewer tokens (served anonymously)",
		},
	)

	// Discovery request metrics
	DiscoveryRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_requests_total",
			Help: "Total number of discovery ranking requests",
		},
		[]string{"channel", "personalized"},
	)

	RankingDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_ranking_duration_seconds",
			Help:    "Duration of ranking computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel"},
	)

	CandidatesConsidered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_candidates_considered_total",
			Help: "Total number of products surviving eligibility filters",
		},
	)

	CandidatesReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_candidates_returned_total",
			Help: "Total number of products returned across all pages",
		},
	)

	RankingUnavailableCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_ranking_unavailable_total",
			Help: "Total number of ranking requests failed by provider errors",
		},
	)

	// Placement slot metrics
	SlotResolutionCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_slot_resolutions_total",
			Help: "Total number of placement slot resolutions",
		},
		[]string{"outcome"},
	)
}

// TrackRanking returns a function that records the duration of a ranking
// computation for the given channel
func TrackRanking(channel string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		RankingDuration.WithLabelValues(channel).Observe(duration)
	}
}

// RecordDiscoveryRequest increments the counter for discovery requests
func RecordDiscoveryRequest(channel string, personalized bool) {
	label := "anonymous"
	if personalized {
		label = "personalized"
	}
	DiscoveryRequestsCounter.WithLabelValues(channel, label).Inc()
}

// RecordSlotResolution increments the counter for slot resolutions
func RecordSlotResolution(fallback bool) {
	outcome := "override"
	if fallback {
		outcome = "fallback"
	}
	SlotResolutionCounter.WithLabelValues(outcome).Inc()
}
