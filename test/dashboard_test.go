package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/calendar"
	"github.com/2beens/healthdash/internal/health/dashboard"
	"github.com/2beens/healthdash/internal/misc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestDashboard() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.do(ctx, "GET", "/dashboard", nil)
	require.Equal(t, http.StatusOK, status)

	var payload dashboard.DashboardPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "2023-10-07", payload.Date)
	assert.Equal(t, "Test User", payload.User.Name)
	require.NotNil(t, payload.Summary)
	assert.Equal(t, "2023-10-07", payload.Summary.Date)
	assert.Len(t, payload.Cards, 4)
	assert.Len(t, payload.StepsSeries.Points, 7)
	require.NotNil(t, payload.Nutrition)

	status, body = s.do(ctx, "GET", "/summary/2023-10-03", nil)
	require.Equal(t, http.StatusOK, status)
	var daily health.DailySummary
	require.NoError(t, json.Unmarshal(body, &daily))
	assert.Equal(t, "2023-10-03", daily.Date)

	status, _ = s.do(ctx, "GET", "/summary/2023-09-01", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do(ctx, "GET", "/summary/yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestNavigation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.do(ctx, "PUT", "/view/activities", nil)
	require.Equal(t, http.StatusOK, status)
	var view dashboard.ViewPayload
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "activities", view.Rendered.String())

	status, body = s.do(ctx, "PUT", "/view/not-a-view", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "not-a-view", view.Active.String())
	assert.Equal(t, "dashboard", view.Rendered.String())
}

func (s *IntegrationTestSuite) TestCalendar() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.do(ctx, "GET", "/calendar/2023/10", nil)
	require.Equal(t, http.StatusOK, status)
	var grid calendar.MonthGrid
	require.NoError(t, json.Unmarshal(body, &grid))
	assert.Equal(t, 2023, grid.Month.Year)
	assert.Equal(t, "October 2023", grid.Title)

	// same month again comes from the cache
	status, cachedBody := s.do(ctx, "GET", "/calendar/2023/10", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, string(body), string(cachedBody))

	status, body = s.do(ctx, "POST", "/calendar/next", nil)
	require.Equal(t, http.StatusOK, status)
	var payload dashboard.CalendarPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 11, int(payload.Grid.Month.Month))

	status, body = s.do(ctx, "POST", "/calendar/today", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 10, int(payload.Grid.Month.Month))

	status, _ = s.do(ctx, "GET", "/calendar/2023/13", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestHealthAndMetrics() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.do(ctx, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, status)
	var healthStatus misc.HealthStatus
	require.NoError(t, json.Unmarshal(body, &healthStatus))
	assert.Equal(t, "ok", healthStatus.Status)
	assert.Equal(t, "up", healthStatus.Redis)
	assert.Equal(t, 7, healthStatus.SessionDays)
	assert.Equal(t, "test-version-info", healthStatus.Version)

	resp, err := s.httpClient.Get(s.metricsEndpoint + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
