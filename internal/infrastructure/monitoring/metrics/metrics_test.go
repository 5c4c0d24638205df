package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersWithoutPanic(t *testing.T) {
	m := New("appeal")
	require.NotNil(t, m)

	m.TurnsTotal.WithLabelValues("ticket", "ok").Inc()
	m.ValidationFailuresTotal.WithLabelValues("amount").Inc()
	m.ResetsTotal.Inc()
	m.PredictionsTotal.Inc()
	m.PredictionProbability.Observe(0.42)
	m.CalibrationRunsTotal.WithLabelValues("true").Inc()
	m.CollaboratorCallsTotal.WithLabelValues("submitter", "error").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues("ticket", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResetsTotal))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New("appeal")
	m.SessionsCompletedTotal.Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "appeal_conversation_sessions_completed_total")
}
