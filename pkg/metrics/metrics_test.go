package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingTransitionCounter(t *testing.T) {
	before := testutil.ToFloat64(onboardingTransitions.WithLabelValues("pending-email-verification", "pending-business-info"))
	OnboardingTransition("pending-email-verification", "pending-business-info")
	after := testutil.ToFloat64(onboardingTransitions.WithLabelValues("pending-email-verification", "pending-business-info"))
	assert.Equal(t, before+1, after)
}

func TestOtpAndCleanupCounters(t *testing.T) {
	before := testutil.ToFloat64(otpRequests.WithLabelValues("login", "sent"))
	OtpRequested("login", "sent")
	assert.Equal(t, before+1, testutil.ToFloat64(otpRequests.WithLabelValues("login", "sent")))

	cleared := testutil.ToFloat64(expiredOtpsCleared)
	ExpiredOtpsCleared(0)
	ExpiredOtpsCleared(3)
	assert.Equal(t, cleared+3, testutil.ToFloat64(expiredOtpsCleared))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTP(http.MethodGet, "", http.StatusNotFound, 5*time.Millisecond)
	ObserveHTTP(http.MethodGet, "/api/v1/products", http.StatusOK, 5*time.Millisecond)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `seller_panel_http_requests_total{method="GET",route="unmatched",status="404"}`)
	assert.Contains(t, string(body), "seller_panel_http_request_duration_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}
