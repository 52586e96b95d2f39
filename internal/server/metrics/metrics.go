// Package metrics exposes Prometheus metrics of the mirror server.
package metrics

import (
	"context"
	"net/http"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Row operations.
const (
	OpFetched = "fetched"
	OpPushed  = "pushed"
	OpRemoved = "removed"
)

// MirrorMetrics contains the request and row counters of the server.
type MirrorMetrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rowsTotal       *prometheus.CounterVec
}

// NewMirrorMetrics creates the metrics and registers them with registry.
func NewMirrorMetrics(registry *prometheus.Registry) (*MirrorMetrics, error) {
	m := &MirrorMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MirrorMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedash_mirror_requests_total",
			Help: "Total number of mirror RPCs by method and status code",
		},
		[]string{"method", "code"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifedash_mirror_request_duration_seconds",
			Help:    "Time taken to serve mirror RPCs",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		},
		[]string{"method"},
	)

	m.rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifedash_mirror_rows_total",
			Help: "Total number of rows fetched, pushed or removed per table",
		},
		[]string{"op", "table"},
	)
}

// Describe implements prometheus.Collector.
func (m *MirrorMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
	m.rowsTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *MirrorMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
	m.rowsTotal.Collect(ch)
}

func (m *MirrorMetrics) RecordRequest(method, code string, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, code).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *MirrorMetrics) RecordRows(op, table string, n int) {
	if n <= 0 {
		return
	}
	m.rowsTotal.WithLabelValues(op, table).Add(float64(n))
}

// UnaryInterceptor records count and latency of every unary call.
func (m *MirrorMetrics) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.RecordRequest(path.Base(info.FullMethod), status.Code(err).String(), time.Since(start))
		return resp, err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *MirrorMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
