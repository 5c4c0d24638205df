// Package http exposes the appeal engine over a JSON REST API.
package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roadpenalty/appealcore/internal/application/appeal"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// OutcomeRecorder accepts decided appeal outcomes for later calibration.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, o prediction.Outcome) error
}

// Handler holds the API's dependencies.
type Handler struct {
	appeals  *appeal.Service
	outcomes OutcomeRecorder // nil when outcome intake is disabled
	logger   logging.Logger
}

// NewHandler wires the API over the appeal service. outcomes may be nil.
func NewHandler(appeals *appeal.Service, outcomes OutcomeRecorder, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Handler{appeals: appeals, outcomes: outcomes, logger: logger.Named("http")}
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Stage     string `json:"stage"`
	Prompt    string `json:"prompt"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type turnResponse struct {
	Reply     string             `json:"reply"`
	Stage     string             `json:"stage"`
	Completed bool               `json:"completed"`
	Preview   *prediction.Result `json:"preview,omitempty"`
}

type predictionRequest struct {
	Description   string   `json:"description"`
	Circumstances []string `json:"circumstances"`
	Location      string   `json:"location"`
	DaysSince     *int     `json:"days_since"`
	Evidence      []string `json:"evidence"`
	PriorAttempts int      `json:"prior_attempts"`
	Authority     string   `json:"authority"`
	FineAmount    float64  `json:"fine_amount"`
}

func (r predictionRequest) input() prediction.Input {
	days := -1
	if r.DaysSince != nil {
		days = *r.DaysSince
	}
	return prediction.Input{
		Description:   r.Description,
		Circumstances: r.Circumstances,
		Location:      r.Location,
		DaysSince:     days,
		Evidence:      r.Evidence,
		PriorAttempts: r.PriorAttempts,
		Authority:     r.Authority,
		FineAmount:    r.FineAmount,
	}
}

type outcomeRequest struct {
	predictionRequest
	Success bool `json:"success"`
}

type documentRequest struct {
	Document string `json:"document"` // base64
}

type confirmRequest struct {
	Accept bool `json:"accept"`
}

type groundResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Strength         string   `json:"strength"`
	RequiredEvidence []string `json:"required_evidence"`
	Scenarios        []string `json:"scenarios"`
	LegalBasis       string   `json:"legal_basis,omitempty"`
}

func toGroundResponse(d grounds.Definition) groundResponse {
	return groundResponse{
		ID:               d.ID,
		Title:            d.Title,
		Description:      d.Description,
		Category:         string(d.Category),
		Strength:         string(d.Strength),
		RequiredEvidence: d.RequiredEvidence,
		Scenarios:        d.Scenarios,
		LegalBasis:       d.LegalBasis,
	}
}

func (h *Handler) startSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	sess, prompt, err := h.appeals.StartSession(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusCreated, sessionResponse{
		SessionID: sess.ID,
		Stage:     string(sess.Stage),
		Prompt:    prompt,
	})
}

func (h *Handler) postMessage(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req messageRequest
	if !h.decode(w, r, &req) {
		return
	}
	turn, err := h.appeals.Submit(r.Context(), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, turnResponse{
		Reply:     turn.Reply,
		Stage:     string(turn.Stage),
		Completed: turn.Completed,
		Preview:   turn.Preview,
	})
}

func (h *Handler) getCase(w nethttp.ResponseWriter, r *nethttp.Request) {
	rec, err := h.appeals.GetSnapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, rec)
}

func (h *Handler) resetSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	reply, err := h.appeals.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"reply": reply})
}

func (h *Handler) getPrediction(w nethttp.ResponseWriter, r *nethttp.Request) {
	result, err := h.appeals.Predict(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, result)
}

func (h *Handler) postPrediction(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req predictionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Description == "" {
		h.writeError(w, apperrors.Validation("description is required"))
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.appeals.PredictInput(r.Context(), req.input()))
}

func (h *Handler) listGrounds(w nethttp.ResponseWriter, r *nethttp.Request) {
	defs := h.appeals.Grounds().All()
	if cat := r.URL.Query().Get("category"); cat != "" {
		defs = h.appeals.Grounds().ByCategory(grounds.Category(cat))
	}
	out := make([]groundResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, toGroundResponse(d))
	}
	h.writeJSON(w, nethttp.StatusOK, out)
}

func (h *Handler) searchGrounds(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.writeError(w, apperrors.Validation("query parameter q is required"))
		return
	}
	defs := h.appeals.Grounds().Search(q)
	out := make([]groundResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, toGroundResponse(d))
	}
	h.writeJSON(w, nethttp.StatusOK, out)
}

func (h *Handler) getGround(w nethttp.ResponseWriter, r *nethttp.Request) {
	d, err := h.appeals.Grounds().ByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, toGroundResponse(d))
}

func (h *Handler) postDocument(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req documentRequest
	if !h.decode(w, r, &req) {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil {
		h.writeError(w, apperrors.Validation("document must be base64 encoded"))
		return
	}
	extraction, err := h.appeals.ExtractFromDocument(r.Context(), chi.URLParam(r, "id"), raw)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, extraction)
}

func (h *Handler) confirmDocument(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req confirmRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.appeals.ConfirmExtraction(r.Context(), chi.URLParam(r, "id"), req.Accept); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]bool{"accepted": req.Accept})
}

func (h *Handler) postOutcome(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.outcomes == nil {
		h.writeError(w, apperrors.New(apperrors.ErrCodeServiceUnavailable, "outcome intake disabled"))
		return
	}
	var req outcomeRequest
	if !h.decode(w, r, &req) {
		return
	}
	o := prediction.Outcome{Input: req.input(), Success: req.Success}
	if err := h.outcomes.RecordOutcome(r.Context(), o); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handler) health(w nethttp.ResponseWriter, _ *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the standard error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) decode(w nethttp.ResponseWriter, r *nethttp.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, apperrors.Validation("malformed request body"))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatusForCode(code)

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= 500 {
		// Mask internals from clients; the full error goes to the log.
		h.logger.Error("request failed", logging.Err(err), logging.String("code", string(code)))
		message = "internal server error"
	}
	h.writeJSON(w, status, errorResponse{Code: string(code), Message: message})
}
