package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/recordcast/pkg/task"
)

var _ task.Observer = (*Metrics)(nil)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for recordcast. It implements
// task.Observer so transport events land in the same registry as the
// HTTP metrics.
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Transport metrics
	datagramsSentTotal    prometheus.Counter
	recordsTruncatedTotal prometheus.Counter
	recordsReceivedTotal  prometheus.Counter
	parseErrorsTotal      prometheus.Counter
	readErrorsTotal       prometheus.Counter

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recordcast_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recordcast_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "recordcast_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		datagramsSentTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "recordcast_datagrams_sent_total",
			Help: "Total number of datagrams sent",
		}),

		recordsTruncatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "recordcast_records_truncated_total",
			Help: "Total number of records truncated to the maximum payload size",
		}),

		recordsReceivedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "recordcast_records_received_total",
			Help: "Total number of records decoded from received datagrams",
		}),

		parseErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "recordcast_parse_errors_total",
			Help: "Total number of received datagrams that failed to decode",
		}),

		readErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "recordcast_read_errors_total",
			Help: "Total number of socket read errors other than timeouts",
		}),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recordcast_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}
}

// DatagramsSent records n datagrams written to the socket
func (m *Metrics) DatagramsSent(n int) { m.datagramsSentTotal.Add(float64(n)) }

// RecordsTruncated records n oversized records
func (m *Metrics) RecordsTruncated(n int) { m.recordsTruncatedTotal.Add(float64(n)) }

// RecordReceived records one decoded record
func (m *Metrics) RecordReceived() { m.recordsReceivedTotal.Inc() }

// ParseFailed records one datagram that did not decode
func (m *Metrics) ParseFailed() { m.parseErrorsTotal.Inc() }

// ReadFailed records one failed socket read
func (m *Metrics) ReadFailed() { m.readErrorsTotal.Inc() }

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
