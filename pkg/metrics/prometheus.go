// Package metrics provides Prometheus metrics for the credit-equivalence service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Decision outcomes
	analysesTotal      prometheus.Counter
	analysesApproved   prometheus.Counter
	analysesRejected   prometheus.Counter
	validationFailures prometheus.Counter

	// Extraction quality
	extractionMisses    *prometheus.CounterVec
	generativeFallbacks *prometheus.CounterVec
	subjectMatchScore   prometheus.Histogram
	similarityScore     prometheus.Histogram

	// Model collaborator performance
	modelCallLatency *prometheus.HistogramVec
	modelCallErrors  *prometheus.CounterVec

	// Embedding cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheSize   prometheus.Gauge

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "credeq",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_total",
		Help:      "Total number of analyze requests that produced a decision",
	})

	m.analysesApproved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_approved_total",
		Help:      "Total number of approve decisions",
	})

	m.analysesRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_rejected_total",
		Help:      "Total number of reject decisions",
	})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total number of analyze requests rejected before the pipeline ran",
	})

	m.extractionMisses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "extraction_misses_total",
		Help:      "Extractions that exhausted all strategies without a value, by field",
	}, []string{"field"})

	m.generativeFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generative_fallbacks_total",
		Help:      "Extractions that fell through to the generative model, by field",
	}, []string{"field"})

	m.subjectMatchScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subject_match_score",
		Help:      "Best fuzzy-match score per subject lookup (0-100)",
		Buckets:   []float64{0, 20, 40, 60, 70, 80, 90, 95, 100},
	})

	m.similarityScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_score",
		Help:      "Course-content similarity per analysis (0-100)",
		Buckets:   []float64{0, 20, 40, 60, 70, 80, 90, 95, 100},
	})

	m.modelCallLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_call_latency_milliseconds",
		Help:      "Latency of embedding and generation calls in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.modelCallErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_call_errors_total",
		Help:      "Failed embedding and generation calls",
	}, []string{"op"})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "embedding_cache_hits_total",
		Help:      "Embedding cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "embedding_cache_misses_total",
		Help:      "Embedding cache misses",
	})

	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "embedding_cache_size",
		Help:      "Current number of cached embeddings",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Package-level helpers recording on the global manager.

// RecordDecision records a completed analysis and its outcome.
func RecordDecision(approved bool) {
	globalManager.analysesTotal.Inc()
	if approved {
		globalManager.analysesApproved.Inc()
	} else {
		globalManager.analysesRejected.Inc()
	}
}

// RecordValidationFailure records a request rejected before the pipeline ran.
func RecordValidationFailure() {
	globalManager.validationFailures.Inc()
}

// RecordExtractionMiss records a field extraction that found nothing.
func RecordExtractionMiss(field string) {
	globalManager.extractionMisses.WithLabelValues(field).Inc()
}

// RecordGenerativeFallback records a fall-through to the generative model.
func RecordGenerativeFallback(field string) {
	globalManager.generativeFallbacks.WithLabelValues(field).Inc()
}

// RecordSubjectMatchScore records the best fuzzy-match score of a lookup.
func RecordSubjectMatchScore(score float64) {
	globalManager.subjectMatchScore.Observe(score)
}

// RecordSimilarityScore records the similarity computed for an analysis.
func RecordSimilarityScore(score float64) {
	globalManager.similarityScore.Observe(score)
}

// RecordModelCallLatency records the latency of a model call in milliseconds.
func RecordModelCallLatency(op string, latencyMs float64) {
	globalManager.modelCallLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordModelCallError records a failed model call.
func RecordModelCallError(op string) {
	globalManager.modelCallErrors.WithLabelValues(op).Inc()
}

// RecordCacheHit records an embedding cache hit.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss records an embedding cache miss.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheSize updates the embedding cache size gauge.
func UpdateCacheSize(size int) {
	globalManager.cacheSize.Set(float64(size))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry served from /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
