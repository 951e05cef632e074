// Package metrics provides Prometheus metrics for the matchdb service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Soft failure reasons reported by the ingestion pipeline.
const (
	ReasonSeasonMalformed = "season_malformed"
	ReasonDecodeFailed    = "decode_failed"
	ReasonEmptyList       = "empty_list"
	ReasonEmptyDirectory  = "empty_directory"
)

// Manager manages all Prometheus metrics for the matchdb service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Build
	buildDuration   prometheus.Histogram
	buildLastUnix   prometheus.Gauge
	storeEntities   *prometheus.GaugeVec
	ingestSkipped   *prometheus.CounterVec
	filesDecoded    prometheus.Counter
	decodeLatency   prometheus.Histogram
	buildFailures   *prometheus.CounterVec
	integrityChecks prometheus.Counter

	// Query
	queryLatency  *prometheus.HistogramVec
	queryNotFound *prometheus.CounterVec

	// Response cache
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchdb",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.buildDuration = auto.NewHistogram(m.histogramOpts(
		"build_duration_milliseconds", "Time to ingest the corpus and seal the store", m.histogramBuckets))
	m.buildLastUnix = auto.NewGauge(m.gaugeOpts(
		"build_last_unix", "Unix timestamp of the last successful store seal"))
	m.storeEntities = auto.NewGaugeVec(m.gaugeOpts(
		"store_entities", "Number of entities in the sealed store by kind"), []string{"kind"})
	m.ingestSkipped = auto.NewCounterVec(m.counterOpts(
		"ingest_skipped_total", "Directories, files or lists skipped during ingestion by reason"), []string{"reason"})
	m.filesDecoded = auto.NewCounter(m.counterOpts(
		"ingest_files_decoded_total", "Documents decoded successfully"))
	m.decodeLatency = auto.NewHistogram(m.histogramOpts(
		"ingest_decode_latency_milliseconds", "Per-document decode latency", m.histogramBuckets))
	m.buildFailures = auto.NewCounterVec(m.counterOpts(
		"build_failures_total", "Fatal build failures by kind"), []string{"kind"})
	m.integrityChecks = auto.NewCounter(m.counterOpts(
		"integrity_checks_total", "Integrity verifications run before sealing"))

	m.queryLatency = auto.NewHistogramVec(m.histogramOpts(
		"query_latency_milliseconds", "Store query latency by operation", m.histogramBuckets), []string{"op"})
	m.queryNotFound = auto.NewCounterVec(m.counterOpts(
		"query_not_found_total", "Queries answered with not found by operation"), []string{"op"})

	m.cacheHits = auto.NewCounter(m.counterOpts(
		"response_cache_hits_total", "Responses served from the cache"))
	m.cacheMisses = auto.NewCounter(m.counterOpts(
		"response_cache_misses_total", "Responses rendered because the cache had no entry"))
	m.cacheEntries = auto.NewGauge(m.gaugeOpts(
		"response_cache_entries", "Entries currently held by the response cache"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordBuild records a successful build and the store's entity counts.
func (m *Manager) RecordBuild(durationMs float64, sealedUnix int64, matches, seasons, tournaments, teams int) {
	m.buildDuration.Observe(durationMs)
	m.buildLastUnix.Set(float64(sealedUnix))
	m.storeEntities.WithLabelValues("matches").Set(float64(matches))
	m.storeEntities.WithLabelValues("seasons").Set(float64(seasons))
	m.storeEntities.WithLabelValues("tournaments").Set(float64(tournaments))
	m.storeEntities.WithLabelValues("teams").Set(float64(teams))
}

// RecordIngestSkipped counts a soft ingestion failure.
func (m *Manager) RecordIngestSkipped(reason string) {
	m.ingestSkipped.WithLabelValues(reason).Inc()
}

// RecordFileDecoded counts a decoded document and its latency.
func (m *Manager) RecordFileDecoded(latencyMs float64) {
	m.filesDecoded.Inc()
	m.decodeLatency.Observe(latencyMs)
}

// RecordBuildFailure counts a fatal build failure.
func (m *Manager) RecordBuildFailure(kind string) {
	m.buildFailures.WithLabelValues(kind).Inc()
}

// RecordIntegrityCheck counts an integrity verification.
func (m *Manager) RecordIntegrityCheck() {
	m.integrityChecks.Inc()
}

// RecordQuery records query latency and whether it ended in not found.
func (m *Manager) RecordQuery(op string, latencyMs float64, notFound bool) {
	m.queryLatency.WithLabelValues(op).Observe(latencyMs)
	if notFound {
		m.queryNotFound.WithLabelValues(op).Inc()
	}
}

// RecordCacheHit increments the response cache hit counter.
func (m *Manager) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss increments the response cache miss counter.
func (m *Manager) RecordCacheMiss() { m.cacheMisses.Inc() }

// UpdateCacheEntries sets the number of cached responses.
func (m *Manager) UpdateCacheEntries(n int) { m.cacheEntries.Set(float64(n)) }

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error outcome.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string, durationMs float64) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorLatency.WithLabelValues("http", errorType).Observe(durationMs)
}

// UpdateSystem sets memory, goroutine and GC pause metrics.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if gcPauseMs > 0 {
		m.systemGCPauseTime.Observe(gcPauseMs)
	}
}

// Global helpers delegating to the process-wide manager.

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// RecordBuild records a successful build on the global manager.
func RecordBuild(durationMs float64, sealedUnix int64, matches, seasons, tournaments, teams int) {
	globalManager.RecordBuild(durationMs, sealedUnix, matches, seasons, tournaments, teams)
}

// RecordIngestSkipped counts a soft ingestion failure on the global manager.
func RecordIngestSkipped(reason string) { globalManager.RecordIngestSkipped(reason) }

// RecordFileDecoded counts a decoded document on the global manager.
func RecordFileDecoded(latencyMs float64) { globalManager.RecordFileDecoded(latencyMs) }

// RecordBuildFailure counts a fatal build failure on the global manager.
func RecordBuildFailure(kind string) { globalManager.RecordBuildFailure(kind) }

// RecordIntegrityCheck counts an integrity verification on the global manager.
func RecordIntegrityCheck() { globalManager.RecordIntegrityCheck() }

// RecordQuery records a query on the global manager.
func RecordQuery(op string, latencyMs float64, notFound bool) {
	globalManager.RecordQuery(op, latencyMs, notFound)
}

// RecordCacheHit increments the global cache hit counter.
func RecordCacheHit() { globalManager.RecordCacheHit() }

// RecordCacheMiss increments the global cache miss counter.
func RecordCacheMiss() { globalManager.RecordCacheMiss() }

// UpdateCacheEntries sets the global cache entry gauge.
func UpdateCacheEntries(n int) { globalManager.UpdateCacheEntries(n) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records an HTTP error on the global manager.
func RecordHTTPError(endpoint, method, errorType, severity string, durationMs float64) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity, durationMs)
}

// UpdateSystem sets system metrics on the global manager.
func UpdateSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, gcPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
