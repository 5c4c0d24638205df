package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	nethttp "net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/internal/application/appeal"
	"github.com/roadpenalty/appealcore/internal/conversation"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/prediction"
)

type recordingOutcomes struct {
	recorded []prediction.Outcome
	err      error
}

func (r *recordingOutcomes) RecordOutcome(_ context.Context, o prediction.Outcome) error {
	if r.err != nil {
		return r.err
	}
	r.recorded = append(r.recorded, o)
	return nil
}

func newTestRouter(t *testing.T, outcomes OutcomeRecorder) nethttp.Handler {
	t.Helper()
	catalog := grounds.Default()
	predictor := prediction.NewEngine(catalog, prediction.NewStore(nil))
	engine := conversation.NewEngine(predictor, nil, nil)
	svc := appeal.NewService(appeal.NewMemStore(), engine, predictor, catalog, appeal.Options{}, nil)
	return NewRouter(NewHandler(svc, outcomes, nil), nil, nil)
}

func doJSON(t *testing.T, router nethttp.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func startSession(t *testing.T, router nethttp.Handler) string {
	t.Helper()
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions", nil)
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestStartSessionEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions", nil)
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(conversation.InitialStage), resp.Stage)
	assert.Contains(t, resp.Prompt, "penalty")
}

func TestMessageEndpointAdvancesStage(t *testing.T) {
	router := newTestRouter(t, nil)
	id := startSession(t, router)

	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions/"+id+"/messages", messageRequest{Message: "pcn"})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var turn turnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, string(conversation.StageTicket), turn.Stage)
	assert.False(t, turn.Completed)
}

func TestMessageEndpointUnknownSession(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions/ghost/messages", messageRequest{Message: "pcn"})
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	var er errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Equal(t, "CONV_001", er.Code)
}

func TestMessageEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(t, nil)
	id := startSession(t, router)

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/sessions/"+id+"/messages", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestCaseSnapshotEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	id := startSession(t, router)
	doJSON(t, router, nethttp.MethodPost, "/v1/sessions/"+id+"/messages", messageRequest{Message: "pcn"})

	rec := doJSON(t, router, nethttp.MethodGet, "/v1/sessions/"+id+"/case", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "pcn", snap["ticket_type"])
}

func TestResetEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	id := startSession(t, router)
	doJSON(t, router, nethttp.MethodPost, "/v1/sessions/"+id+"/messages", messageRequest{Message: "pcn"})

	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions/"+id+"/reset", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	snapRec := doJSON(t, router, nethttp.MethodGet, "/v1/sessions/"+id+"/case", nil)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(snapRec.Body.Bytes(), &snap))
	assert.Equal(t, "", snap["ticket_type"])
}

func TestListAndSearchGrounds(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, nethttp.MethodGet, "/v1/grounds/", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var all []groundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, grounds.Default().Len(), len(all))

	rec = doJSON(t, router, nethttp.MethodGet, "/v1/grounds/?category=statutory", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var statutory []groundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statutory))
	assert.NotEmpty(t, statutory)
	assert.Less(t, len(statutory), len(all))

	rec = doJSON(t, router, nethttp.MethodGet, "/v1/grounds/search?q=faded", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var found []groundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.NotEmpty(t, found)
	assert.Equal(t, "signage-invalid", found[0].ID)

	rec = doJSON(t, router, nethttp.MethodGet, "/v1/grounds/search", nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestGetGroundByID(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, nethttp.MethodGet, "/v1/grounds/blue-badge", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var g groundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, "blue-badge", g.ID)
	assert.NotEmpty(t, g.LegalBasis)

	rec = doJSON(t, router, nethttp.MethodGet, "/v1/grounds/no-such-ground", nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestPredictionEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	days := 10
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/predictions", predictionRequest{
		Description: "the parking sign was completely faded and unreadable",
		DaysSince:   &days,
		Evidence:    []string{"photographs of the sign"},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var result prediction.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result.SuccessProbability, 0.5)
	require.NotEmpty(t, result.Grounds)
	assert.Equal(t, "signage-invalid", result.Grounds[0].ID)
}

func TestPredictionEndpointRequiresDescription(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/predictions", predictionRequest{})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestOutcomeEndpoint(t *testing.T) {
	outcomes := &recordingOutcomes{}
	router := newTestRouter(t, outcomes)

	body := outcomeRequest{Success: true}
	body.Description = "signage was faded"
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/outcomes", body)
	require.Equal(t, nethttp.StatusAccepted, rec.Code)
	require.Len(t, outcomes.recorded, 1)
	assert.True(t, outcomes.recorded[0].Success)
	// absent days_since decodes to the unknown sentinel
	assert.Equal(t, -1, outcomes.recorded[0].Input.DaysSince)
}

func TestOutcomeEndpointDisabled(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/outcomes", outcomeRequest{})
	assert.Equal(t, nethttp.StatusServiceUnavailable, rec.Code)
}

func TestOutcomeEndpointRepoFailure(t *testing.T) {
	router := newTestRouter(t, &recordingOutcomes{err: errors.New("db down")})
	rec := doJSON(t, router, nethttp.MethodPost, "/v1/outcomes", outcomeRequest{})
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)

	var er errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Equal(t, "internal server error", er.Message)
}

func TestDocumentEndpointWithoutOCR(t *testing.T) {
	router := newTestRouter(t, nil)
	id := startSession(t, router)

	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions/"+id+"/documents", documentRequest{Document: "aGVsbG8="})
	assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
}

func TestDocumentEndpointRejectsBadBase64(t *testing.T) {
	router := newTestRouter(t, nil)
	id := startSession(t, router)

	rec := doJSON(t, router, nethttp.MethodPost, "/v1/sessions/"+id+"/documents", documentRequest{Document: "%%%"})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, nethttp.MethodGet, "/healthz", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
