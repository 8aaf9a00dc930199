package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSettings() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.do(ctx, "GET", "/settings", nil)
	require.Equal(t, http.StatusOK, status)
	var form settings.Form
	require.NoError(t, json.Unmarshal(body, &form))
	assert.Equal(t, settings.FormFromUser(health.DefaultUser()), form)

	form.DailyStepGoal = 0
	formBytes, err := json.Marshal(form)
	require.NoError(t, err)
	status, body = s.do(ctx, "PUT", "/settings", bytes.NewReader(formBytes))
	require.Equal(t, http.StatusBadRequest, status)
	var validation settings.ValidationResponse
	require.NoError(t, json.Unmarshal(body, &validation))
	assert.Len(t, validation.Errors, 1)

	form.DailyStepGoal = 12000
	formBytes, err = json.Marshal(form)
	require.NoError(t, err)
	status, _ = s.do(ctx, "PUT", "/settings", bytes.NewReader(formBytes))
	require.Equal(t, http.StatusAccepted, status)

	// nothing was persisted
	status, body = s.do(ctx, "GET", "/settings", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &form))
	assert.Equal(t, 10000, form.DailyStepGoal)

	// two saves used so far, the next one is the last allowed this minute
	status, _ = s.do(ctx, "PUT", "/settings", bytes.NewReader(formBytes))
	require.Equal(t, http.StatusAccepted, status)
	status, _ = s.do(ctx, "PUT", "/settings", bytes.NewReader(formBytes))
	assert.Equal(t, http.StatusTooManyRequests, status)
}
