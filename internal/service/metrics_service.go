package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the agent.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	syncPushed      *prometheus.CounterVec
	syncSkipped     *prometheus.CounterVec
	syncFailed      *prometheus.CounterVec
	scrapeDuration  *prometheus.HistogramVec
	pipelineRuns    prometheus.Counter
}

// NewMetricsService registers the agent's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	syncPushed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_pushed_total",
		Help: "Snapshots pushed to the backend after a detected change",
	}, []string{"kind"})

	syncSkipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_skipped_total",
		Help: "Sync attempts suppressed because the snapshot was unchanged",
	}, []string{"kind"})

	syncFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_failed_total",
		Help: "Sync attempts that ended in an error",
	}, []string{"kind", "reason"})

	scrapeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scrape_duration_seconds",
		Help:    "Duration of portal scrape calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})

	pipelineRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Total pipeline invocations",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, syncPushed, syncSkipped, syncFailed, scrapeDuration, pipelineRuns, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		syncPushed:      syncPushed,
		syncSkipped:     syncSkipped,
		syncFailed:      syncFailed,
		scrapeDuration:  scrapeDuration,
		pipelineRuns:    pipelineRuns,
	}
}

// Handler returns the Prometheus scrape endpoint handler.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": httpStatusLabel(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// RecordPush counts a successful backend push.
func (s *MetricsService) RecordPush(kind models.SyncKind) {
	s.syncPushed.WithLabelValues(string(kind)).Inc()
}

// RecordSkip counts a change-free sync gate decision.
func (s *MetricsService) RecordSkip(kind models.SyncKind) {
	s.syncSkipped.WithLabelValues(string(kind)).Inc()
}

// RecordFailure counts a failed sync attempt.
func (s *MetricsService) RecordFailure(kind models.SyncKind, reason string) {
	s.syncFailed.WithLabelValues(string(kind), reason).Inc()
}

// ObserveScrape records the duration of one portal scrape call.
func (s *MetricsService) ObserveScrape(target string, duration time.Duration) {
	s.scrapeDuration.WithLabelValues(target).Observe(duration.Seconds())
}

// RecordPipelineRun counts one pipeline invocation.
func (s *MetricsService) RecordPipelineRun() {
	s.pipelineRuns.Inc()
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
