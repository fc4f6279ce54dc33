// Package metrics provides Prometheus metrics for gazette
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for gazette
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// gRPC request metrics
	GrpcRequestsTotal   *prometheus.CounterVec
	GrpcRequestDuration *prometheus.HistogramVec

	// Upstream source metrics
	SourceLoadsTotal     *prometheus.CounterVec
	SourceLoadDuration   *prometheus.HistogramVec
	SourceDroppedTotal   prometheus.Counter
	SourceDocumentsTotal prometheus.Gauge

	// Listing metrics
	ListingViewsTotal    *prometheus.CounterVec
	ListingFilteredCount prometheus.Histogram
	DownloadsTotal       *prometheus.CounterVec

	// Server metrics
	ServerUptimeSeconds prometheus.GaugeFunc
	ServerStartTime     time.Time
}

// NewMetrics creates and registers all metrics on reg. A nil reg registers
// on the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	// HTTP request metrics
	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gazette_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "gazette_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// gRPC request metrics
	m.GrpcRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_grpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "status"},
	)

	m.GrpcRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gazette_grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Upstream source metrics
	m.SourceLoadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_source_loads_total",
			Help: "Total number of document loads by origin (live or fallback)",
		},
		[]string{"origin"},
	)

	m.SourceLoadDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gazette_source_load_duration_seconds",
			Help:    "Duration of upstream document loads in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"origin"},
	)

	m.SourceDroppedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_source_dropped_total",
			Help: "Total number of source elements rejected during normalization",
		},
	)

	m.SourceDocumentsTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "gazette_source_documents",
			Help: "Number of documents returned by the most recent load",
		},
	)

	// Listing metrics
	m.ListingViewsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_listing_views_total",
			Help: "Total number of listing views by tab",
		},
		[]string{"tab"},
	)

	m.ListingFilteredCount = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gazette_listing_filtered_documents",
			Help:    "Number of documents matching the filters per view",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	m.DownloadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_pdf_downloads_total",
			Help: "Total number of PDF download requests by result",
		},
		[]string{"result"},
	)

	// Server metrics
	m.ServerUptimeSeconds = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "gazette_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 {
			return time.Since(m.ServerStartTime).Seconds()
		},
	)

	return m
}

// RecordHTTPRequest records an HTTP request with its status code
func (m *Metrics) RecordHTTPRequest(route string, code string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordGrpcRequest records a gRPC request with its status
func (m *Metrics) RecordGrpcRequest(method string, status string, duration time.Duration) {
	m.GrpcRequestsTotal.WithLabelValues(method, status).Inc()
	m.GrpcRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordSourceLoad records an upstream load
func (m *Metrics) RecordSourceLoad(origin string, duration time.Duration, documents, dropped int) {
	m.SourceLoadsTotal.WithLabelValues(origin).Inc()
	m.SourceLoadDuration.WithLabelValues(origin).Observe(duration.Seconds())
	m.SourceDocumentsTotal.Set(float64(documents))
	m.SourceDroppedTotal.Add(float64(dropped))
}

// RecordListingView records a rendered listing
func (m *Metrics) RecordListingView(tab string, filtered int) {
	m.ListingViewsTotal.WithLabelValues(tab).Inc()
	m.ListingFilteredCount.Observe(float64(filtered))
}

// RecordDownload records a PDF download attempt (served, missing, rejected)
func (m *Metrics) RecordDownload(result string) {
	m.DownloadsTotal.WithLabelValues(result).Inc()
}
