package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every seller panel collector plus the Go and process collectors
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	httpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_panel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seller_panel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	onboardingTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_onboarding_transitions_total",
			Help: "Seller status transitions by source and target status",
		},
		[]string{"from", "to"},
	)

	otpRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_otp_requests_total",
			Help: "OTP issue attempts by purpose and outcome",
		},
		[]string{"purpose", "outcome"},
	)

	expiredOtpsCleared = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "seller_expired_otps_cleared_total",
			Help: "Expired OTP codes removed by the cleanup job",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveHTTP records one served request
func ObserveHTTP(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// OnboardingTransition counts a committed seller status change
func OnboardingTransition(from, to string) {
	onboardingTransitions.WithLabelValues(from, to).Inc()
}

// OtpRequested counts an OTP issue attempt
func OtpRequested(purpose, outcome string) {
	otpRequests.WithLabelValues(purpose, outcome).Inc()
}

// ExpiredOtpsCleared adds n to the cleanup counter
func ExpiredOtpsCleared(n int64) {
	if n > 0 {
		expiredOtpsCleared.Add(float64(n))
	}
}

// Handler exposes Registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
