// Package metrics provides Prometheus metrics for the PoolChat assistant.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the assistant.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Pipeline Metrics - What the assistant decided and how sure it was
	questionsTotal      *prometheus.CounterVec
	decisionsTotal      *prometheus.CounterVec
	guardrailRules      *prometheus.CounterVec
	retrievalSources    *prometheus.CounterVec
	intentConfidence    prometheus.Histogram
	retrievalConfidence prometheus.Histogram
	pipelineLatency     prometheus.Histogram

	// Answer Cache Metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Knowledge Metrics - Size of the loaded corpora
	knowledgeChunks  prometheus.Gauge
	knowledgeEntries prometheus.Gauge

	// Interaction Log Metrics - Async JSONL sink
	logQueueSize     prometheus.Gauge
	logQueueCapacity prometheus.Gauge
	logEnqueued      prometheus.Counter
	logWritten       prometheus.Counter
	logDropped       prometheus.Counter
	logWriteErrors   prometheus.Counter
	logWriteLatency  prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "poolchat",
		subsystem:        "assistant",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// name applies the optional metric prefix.
func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.questionsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("questions_total"),
		Help:        "Total number of questions handled by classified intent",
		ConstLabels: labels,
	}, []string{"intent"})

	m.decisionsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decisions_total"),
		Help:        "Total number of guardrail decisions by kind",
		ConstLabels: labels,
	}, []string{"decision"})

	m.guardrailRules = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("guardrail_rules_total"),
		Help:        "Total number of times each guardrail rule decided a question",
		ConstLabels: labels,
	}, []string{"rule"})

	m.retrievalSources = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("retrieval_sources_total"),
		Help:        "Total number of retrieval winners by corpus",
		ConstLabels: labels,
	}, []string{"source"})

	m.intentConfidence = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("intent_confidence"),
		Help:        "Distribution of intent classifier confidence",
		Buckets:     []float64{0.1, 0.2, 0.4, 0.6, 0.75, 0.9, 1},
		ConstLabels: labels,
	})

	m.retrievalConfidence = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("retrieval_confidence"),
		Help:        "Distribution of retrieval scores (uncapped)",
		Buckets:     []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1, 1.5, 2},
		ConstLabels: labels,
	})

	m.pipelineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("pipeline_latency_milliseconds"),
		Help:        "Classify, retrieve and guardrail latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("answer_cache_hits_total"),
		Help:        "Total number of answers served from the cache",
		ConstLabels: labels,
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("answer_cache_misses_total"),
		Help:        "Total number of answers computed by the pipeline",
		ConstLabels: labels,
	})

	m.knowledgeChunks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("knowledge_chunks"),
		Help:        "Number of website chunks loaded",
		ConstLabels: labels,
	})

	m.knowledgeEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("knowledge_entries"),
		Help:        "Number of structured knowledge entries loaded",
		ConstLabels: labels,
	})

	m.logQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_queue_size"),
		Help:        "Interaction records waiting to be written",
		ConstLabels: labels,
	})

	m.logQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_queue_capacity"),
		Help:        "Maximum interaction log queue capacity",
		ConstLabels: labels,
	})

	m.logEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_enqueued_total"),
		Help:        "Total number of interaction records enqueued",
		ConstLabels: labels,
	})

	m.logWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_written_total"),
		Help:        "Total number of interaction records appended to the log",
		ConstLabels: labels,
	})

	m.logDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_dropped_total"),
		Help:        "Total number of interaction records dropped (queue full or closed)",
		ConstLabels: labels,
	})

	m.logWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_write_errors_total"),
		Help:        "Total number of failed interaction log writes",
		ConstLabels: labels,
	})

	m.logWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("interaction_log_write_latency_milliseconds"),
		Help:        "Interaction log append latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_rate_limited_total"),
		Help:        "Total number of HTTP requests rejected by the rate limiter",
		ConstLabels: labels,
	})

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_component_total"),
			Help:        "Total number of errors by component",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)
}

// RecordQuestion counts a handled question under its intent.
func RecordQuestion(intent string) {
	if !globalManager.enabled {
		return
	}
	globalManager.questionsTotal.WithLabelValues(intent).Inc()
}

// RecordDecision counts a guardrail decision and the rule that produced it.
func RecordDecision(decision, rule string) {
	if !globalManager.enabled {
		return
	}
	globalManager.decisionsTotal.WithLabelValues(decision).Inc()
	globalManager.guardrailRules.WithLabelValues(rule).Inc()
}

// RecordRetrievalSource counts which corpus produced the winning candidate.
func RecordRetrievalSource(source string) {
	if !globalManager.enabled {
		return
	}
	if source == "" {
		source = "none"
	}
	globalManager.retrievalSources.WithLabelValues(source).Inc()
}

// RecordIntentConfidence observes a classifier confidence.
func RecordIntentConfidence(confidence float64) {
	globalManager.intentConfidence.Observe(confidence)
}

// RecordRetrievalConfidence observes a retrieval score.
func RecordRetrievalConfidence(confidence float64) {
	globalManager.retrievalConfidence.Observe(confidence)
}

// RecordPipelineLatency records end-to-end pipeline latency in milliseconds.
func RecordPipelineLatency(latencyMs float64) {
	globalManager.pipelineLatency.Observe(latencyMs)
}

// RecordCacheHit increments the answer cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the answer cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateKnowledgeSize sets the loaded corpus gauges.
func UpdateKnowledgeSize(chunks, entries int) {
	globalManager.knowledgeChunks.Set(float64(chunks))
	globalManager.knowledgeEntries.Set(float64(entries))
}

// UpdateLogQueueSize sets the current interaction log queue length.
func UpdateLogQueueSize(size int) {
	globalManager.logQueueSize.Set(float64(size))
}

// UpdateLogQueueCapacity sets the interaction log queue capacity.
func UpdateLogQueueCapacity(capacity int) {
	globalManager.logQueueCapacity.Set(float64(capacity))
}

// RecordLogEnqueued increments the enqueued interaction counter.
func RecordLogEnqueued() {
	globalManager.logEnqueued.Inc()
}

// RecordLogWritten increments the written interaction counter.
func RecordLogWritten() {
	globalManager.logWritten.Inc()
}

// RecordLogDropped increments the dropped interaction counter.
func RecordLogDropped() {
	globalManager.logDropped.Inc()
}

// RecordLogWriteError increments the interaction log write error counter.
func RecordLogWriteError() {
	globalManager.logWriteErrors.Inc()
}

// RecordLogWriteLatency records interaction log append latency.
func RecordLogWriteLatency(latencyMs float64) {
	globalManager.logWriteLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPRateLimited increments the rate-limited request counter.
func RecordHTTPRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
