package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/healthdash/internal/middleware"
	"github.com/2beens/healthdash/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		result         *redis_rate.Result
		err            error
		expectCall     bool
		expectedStatus int
		nextCalled     bool
		rateLimited    float64
	}{
		{
			name:           "Allowed",
			method:         http.MethodPut,
			result:         &redis_rate.Result{Allowed: 1, Remaining: 9},
			expectCall:     true,
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:           "Limited",
			method:         http.MethodPut,
			result:         &redis_rate.Result{Allowed: 0, RetryAfter: 10 * time.Second},
			expectCall:     true,
			expectedStatus: http.StatusTooManyRequests,
			rateLimited:    1,
		},
		{
			name:           "LimiterError",
			method:         http.MethodPut,
			err:            errors.New("redis down"),
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "PreflightNotCounted",
			method:         http.MethodOptions,
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			limiter := NewMockRequestRateLimiter(ctrl)
			if tc.expectCall {
				limiter.EXPECT().
					Allow(gomock.Any(), "settings", redis_rate.PerMinute(10)).
					Return(tc.result, tc.err).
					Times(1)
			}

			metricsManager := metrics.NewTestManager()
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			handler := middleware.RateLimit(limiter, "settings", 10, metricsManager)(next)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, "/settings", nil)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.nextCalled, nextCalled)
			assert.Equal(t, tc.rateLimited, testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
		})
	}
}
