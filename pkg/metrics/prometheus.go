// Package metrics provides Prometheus metrics for the pitchgate service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring and gating
	scoreDistribution *prometheus.HistogramVec
	gateRejections    *prometheus.CounterVec

	// Generation collaborator
	generationOutcomes *prometheus.CounterVec
	generationLatency  prometheus.Histogram

	// Verification
	verificationOutcomes *prometheus.CounterVec
	codesIssued          prometheus.Counter
	codeStoreSize        prometheus.Gauge

	// Rate limiting
	rateLimited *prometheus.CounterVec

	// CRM sync
	crmSyncOutcomes *prometheus.CounterVec
	crmSyncDuplicate prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// Sync queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Sync workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter
	workerRetryCount        prometheus.Counter

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchgate",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.scoreDistribution = auto.NewHistogramVec(
		m.histogramOpts("pitch_score_percentage", "Distribution of computed pitch scores by evaluation path",
			[]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}),
		[]string{"path"},
	)
	m.gateRejections = auto.NewCounterVec(
		m.counterOpts("gate_rejections_total", "Generation requests rejected by the gate, by reason"),
		[]string{"reason"},
	)

	m.generationOutcomes = auto.NewCounterVec(
		m.counterOpts("generation_outcomes_total", "Generation collaborator calls by outcome"),
		[]string{"outcome"},
	)
	m.generationLatency = auto.NewHistogram(
		m.histogramOpts("generation_latency_milliseconds", "Generation collaborator latency in milliseconds",
			[]float64{250, 500, 1000, 2500, 5000, 10000, 20000, 40000, 60000}),
	)

	m.verificationOutcomes = auto.NewCounterVec(
		m.counterOpts("verification_outcomes_total", "Verification attempts by outcome"),
		[]string{"outcome"},
	)
	m.codesIssued = auto.NewCounter(m.counterOpts("verification_codes_issued_total", "Verification codes issued"))
	m.codeStoreSize = auto.NewGauge(m.gaugeOpts("verification_store_size", "Live verification codes held in memory"))

	m.rateLimited = auto.NewCounterVec(
		m.counterOpts("rate_limited_total", "Requests denied by a rate limiter"),
		[]string{"limiter"},
	)

	m.crmSyncOutcomes = auto.NewCounterVec(
		m.counterOpts("crm_sync_total", "CRM contact sync attempts by outcome"),
		[]string{"outcome"},
	)
	m.crmSyncDuplicate = auto.NewCounter(
		m.counterOpts("crm_sync_duplicate_total", "CRM sync jobs skipped as duplicates"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("sync_queue_size", "Current size of the CRM sync queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("sync_queue_capacity", "Maximum CRM sync queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("sync_queue_utilization_ratio", "Queue utilization ratio (size / capacity)"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("sync_queue_enqueue_total", "Jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("sync_queue_dequeue_total", "Jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("sync_queue_enqueue_errors_total", "Jobs dropped because the queue was full or closed"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("sync_worker_count", "Running CRM sync workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("sync_worker_latency_milliseconds", "Time spent per sync job in milliseconds", m.histogramBuckets),
	)
	m.workerErrorRate = auto.NewCounter(m.counterOpts("sync_worker_errors_total", "Sync jobs that failed after retries"))
	m.workerRetryCount = auto.NewCounter(m.counterOpts("sync_worker_retries_total", "Sync job retry attempts"))

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordScore observes a computed score for the given evaluation path
// (preview, generate, mcp).
func RecordScore(path string, pct int) {
	globalManager.scoreDistribution.WithLabelValues(path).Observe(float64(pct))
}

// RecordGateRejection counts a generation request rejected for reason.
func RecordGateRejection(reason string) {
	globalManager.gateRejections.WithLabelValues(reason).Inc()
}

// RecordGeneration counts a generation call outcome and its latency.
func RecordGeneration(outcome string, latencyMs float64) {
	globalManager.generationOutcomes.WithLabelValues(outcome).Inc()
	globalManager.generationLatency.Observe(latencyMs)
}

// RecordVerification counts a verification attempt outcome.
func RecordVerification(outcome string) {
	globalManager.verificationOutcomes.WithLabelValues(outcome).Inc()
}

// RecordCodeIssued increments the issued codes counter.
func RecordCodeIssued() {
	globalManager.codesIssued.Inc()
}

// UpdateCodeStoreSize sets the number of live codes held in memory.
func UpdateCodeStoreSize(n int) {
	globalManager.codeStoreSize.Set(float64(n))
}

// RecordRateLimited counts a denial by the named limiter.
func RecordRateLimited(limiter string) {
	globalManager.rateLimited.WithLabelValues(limiter).Inc()
}

// RecordCRMSync counts a CRM sync outcome.
func RecordCRMSync(outcome string) {
	globalManager.crmSyncOutcomes.WithLabelValues(outcome).Inc()
}

// RecordCRMSyncDuplicate counts a sync job skipped by the dedupe set.
func RecordCRMSyncDuplicate() {
	globalManager.crmSyncDuplicate.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// RecordWorkerRetry increments the worker retry counter.
func RecordWorkerRetry() {
	globalManager.workerRetryCount.Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
