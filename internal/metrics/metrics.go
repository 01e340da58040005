// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by the service and transport layers.
type Recorder interface {
	RecordOTPIssued()
	RecordOTPVerification(result string)
	RecordDocumentUpload(documentType, action string)
	RecordWalletCredit()
	RecordQuotationRendered()
	RecordHTTPRequest(statusCode int, duration time.Duration)
}

type Collector struct {
	otpIssued        prometheus.Counter
	otpVerifications *prometheus.CounterVec
	documentUploads  *prometheus.CounterVec
	walletCredits    prometheus.Counter
	quotations       prometheus.Counter
	httpStatus       *prometheus.CounterVec
	httpLatency      prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		otpIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vendor_otp_issued_total",
			Help: "One-time codes issued.",
		}),
		otpVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vendor_otp_verifications_total",
			Help: "OTP verification attempts by result.",
		}, []string{"result"}),
		documentUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vendor_document_uploads_total",
			Help: "Document uploads by type and action (created or updated).",
		}, []string{"document_type", "action"}),
		walletCredits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vendor_wallet_credits_total",
			Help: "Successful wallet credits.",
		}),
		quotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vendor_quotations_rendered_total",
			Help: "Quotation PDFs rendered.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vendor_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendor_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.otpIssued,
		c.otpVerifications,
		c.documentUploads,
		c.walletCredits,
		c.quotations,
		c.httpStatus,
		c.httpLatency,
	)
	return c
}

func (c *Collector) RecordOTPIssued() { c.otpIssued.Inc() }

func (c *Collector) RecordOTPVerification(result string) {
	c.otpVerifications.WithLabelValues(result).Inc()
}

func (c *Collector) RecordDocumentUpload(documentType, action string) {
	c.documentUploads.WithLabelValues(documentType, action).Inc()
}

func (c *Collector) RecordWalletCredit() { c.walletCredits.Inc() }

func (c *Collector) RecordQuotationRendered() { c.quotations.Inc() }

func (c *Collector) RecordHTTPRequest(statusCode int, duration time.Duration) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// Nop discards everything. Used in tests and when metrics are not wired.
type Nop struct{}

func (Nop) RecordOTPIssued() {}
func (Nop) RecordOTPVerification(string) {}
func (Nop) RecordDocumentUpload(string, string) {}
func (Nop) RecordWalletCredit() {}
func (Nop) RecordQuotationRendered() {}
func (Nop) RecordHTTPRequest(int, time.Duration) {}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Middleware records status code and latency for every request.
func Middleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			rec.RecordHTTPRequest(status, time.Since(start))
		})
	}
}
