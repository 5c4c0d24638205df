// Package appeal is the application service behind the caller contract:
// start a session, submit turns, read the case snapshot, run predictions and
// handle OCR extractions. It owns session persistence and the per-session
// one-turn-in-flight rule; all dialogue semantics live in conversation.
package appeal

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roadpenalty/appealcore/internal/conversation"
	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/metrics"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// Event types published on session milestones.
const (
	EventCaseSubmitted  = "appeal.case_submitted"
	EventSessionStarted = "appeal.session_started"
)

// Options carries the optional collaborators. Any field may be nil.
type Options struct {
	Renderer DocumentRenderer
	OCR      OCRExtractor
	Events   EventPublisher
	Docs     DocumentStore
	Metrics  *metrics.Metrics
}

// Service implements the caller contract over a conversation engine.
type Service struct {
	store     SessionStore
	engine    *conversation.Engine
	predictor *prediction.Engine
	catalog   *grounds.Catalog
	opts      Options
	logger    logging.Logger

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	pending map[string]Extraction
}

// NewService wires the application service. store and the engines are
// required; everything in opts is optional.
func NewService(store SessionStore, engine *conversation.Engine, predictor *prediction.Engine, catalog *grounds.Catalog, opts Options, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		store:     store,
		engine:    engine,
		predictor: predictor,
		catalog:   catalog,
		opts:      opts,
		logger:    logger.Named("appeal"),
		locks:     make(map[string]*sync.Mutex),
		pending:   make(map[string]Extraction),
	}
}

// StartSession creates a new session and returns it with its opening prompt.
func (s *Service) StartSession(ctx context.Context) (*conversation.Session, string, error) {
	sess := conversation.NewSession(uuid.NewString())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "saving new session")
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.ActiveSessions.Inc()
	}
	s.publish(ctx, EventSessionStarted, map[string]string{"session_id": sess.ID})
	s.logger.Info("session started", logging.String("session", sess.ID))
	return sess, s.engine.Prompt(sess), nil
}

// Submit processes one user message and returns the reply and new state.
// A second message for the same session blocks until the first turn's
// response is produced.
func (s *Service) Submit(ctx context.Context, sessionID, userText string) (conversation.Turn, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return conversation.Turn{}, err
	}
	prevStage := sess.Stage

	turn, err := s.engine.HandleTurn(ctx, sess, userText)
	if err != nil {
		return conversation.Turn{}, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return conversation.Turn{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "saving session")
	}

	s.observeTurn(prevStage, sess.Stage, turn)
	if turn.Completed {
		s.onCompleted(ctx, sess)
	}
	return turn, nil
}

// GetSnapshot returns a copy of the session's case record.
func (s *Service) GetSnapshot(ctx context.Context, sessionID string) (*appealcase.Record, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Record.Clone(), nil
}

// Reset wipes the session's case and returns the opening prompt.
func (s *Service) Reset(ctx context.Context, sessionID string) (string, error) {
	turn, err := s.Submit(ctx, sessionID, "reset")
	if err != nil {
		return "", err
	}
	return turn.Reply, nil
}

// Predict runs the scoring engine over the session's current case.
func (s *Service) Predict(ctx context.Context, sessionID string) (prediction.Result, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return prediction.Result{}, err
	}
	start := time.Now()
	res := s.predictor.PredictRecord(sess.Record)
	if m := s.opts.Metrics; m != nil {
		m.PredictionsTotal.Inc()
		m.PredictionDuration.Observe(time.Since(start).Seconds())
		m.PredictionProbability.Observe(res.SuccessProbability)
		m.GroundsMatchedPerCase.Observe(float64(len(res.Grounds)))
	}
	return res, nil
}

// PredictInput scores a standalone input without a session, for the API's
// one-shot prediction endpoint and the CLI.
func (s *Service) PredictInput(_ context.Context, in prediction.Input) prediction.Result {
	start := time.Now()
	res := s.predictor.Predict(in)
	if m := s.opts.Metrics; m != nil {
		m.PredictionsTotal.Inc()
		m.PredictionDuration.Observe(time.Since(start).Seconds())
		m.PredictionProbability.Observe(res.SuccessProbability)
		m.GroundsMatchedPerCase.Observe(float64(len(res.Grounds)))
	}
	return res
}

// Grounds exposes the catalog for the read-only endpoints.
func (s *Service) Grounds() *grounds.Catalog { return s.catalog }

// ExtractFromDocument runs OCR over an uploaded document and parks the
// result for explicit confirmation. Nothing touches the case yet.
func (s *Service) ExtractFromDocument(ctx context.Context, sessionID string, document []byte) (Extraction, error) {
	if s.opts.OCR == nil {
		return Extraction{}, apperrors.New(apperrors.ErrCodeOCRFailed, "no OCR extractor configured")
	}
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return Extraction{}, err
	}
	ex, err := s.opts.OCR.Extract(ctx, document)
	s.observeCollaborator("ocr", err)
	if err != nil {
		return Extraction{}, apperrors.Wrap(err, apperrors.ErrCodeOCRFailed, "extracting document")
	}
	s.mu.Lock()
	s.pending[sessionID] = ex
	s.mu.Unlock()
	return ex, nil
}

// ConfirmExtraction resolves a pending extraction. When accepted, extracted
// values fill only fields the user has not already answered and the dialogue
// skips ahead to the first question the record cannot answer; a rejection
// just discards the patch.
func (s *Service) ConfirmExtraction(ctx context.Context, sessionID string, accept bool) error {
	s.mu.Lock()
	ex, ok := s.pending[sessionID]
	delete(s.pending, sessionID)
	s.mu.Unlock()
	if !ok {
		return apperrors.NotFound("no pending extraction for session")
	}
	if !accept {
		return nil
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	applyPatch(sess.Record, ex.Patch)
	sess.SkipAnsweredStages()
	return s.store.Save(ctx, sess)
}

// applyPatch fills unset fields from the extraction. Locked-field errors are
// expected when the user already answered a stage and are ignored.
func applyPatch(rec *appealcase.Record, p CasePatch) {
	if p.TicketNumber != "" {
		_ = rec.SetTicketNumber(appealcase.NormalizeTicketNumber(p.TicketNumber))
	}
	if p.VehicleReg != "" {
		if reg, err := appealcase.NormalizeRegistration(p.VehicleReg); err == nil {
			_ = rec.SetVehicleReg(reg)
		}
	}
	if p.FineAmount > 0 {
		_ = rec.SetFineAmount(p.FineAmount)
	}
	if p.IssueDate != "" {
		if iso, err := appealcase.ParseDate(p.IssueDate); err == nil {
			_ = rec.SetIssueDate(iso)
		}
	}
	if p.DueDate != "" {
		if iso, err := appealcase.ParseDate(p.DueDate); err == nil {
			_ = rec.SetDueDate(iso)
		}
	}
	if p.Location != "" && len(strings.TrimSpace(p.Location)) >= 5 {
		_ = rec.SetLocation(strings.TrimSpace(p.Location))
	}
}

// onCompleted archives the appeal artifacts and announces the submission.
func (s *Service) onCompleted(ctx context.Context, sess *conversation.Session) {
	if m := s.opts.Metrics; m != nil {
		m.SessionsCompletedTotal.Inc()
		m.ActiveSessions.Dec()
	}
	s.archiveDocuments(ctx, sess)
	payload, _ := json.Marshal(sess.Record)
	s.publish(ctx, EventCaseSubmitted, json.RawMessage(payload))
	s.logger.Info("case submitted",
		logging.String("session", sess.ID),
		logging.String("ticket", sess.Record.TicketNumber))
}

// archiveDocuments renders and stores the appeal letter and any completed
// court forms. Failures are logged, never surfaced: the appeal itself has
// already been submitted.
func (s *Service) archiveDocuments(ctx context.Context, sess *conversation.Session) {
	if s.opts.Renderer == nil || s.opts.Docs == nil {
		return
	}
	res := s.predictor.PredictRecord(sess.Record)
	docs := map[string]string{"appeal_letter": res.Letter.Text}
	for t, form := range sess.Record.Forms {
		if form.Complete {
			docs[strings.ToLower(string(t))] = form.Document
		}
	}
	for kind, text := range docs {
		data, err := s.opts.Renderer.Render(ctx, kind, map[string]string{"body": text})
		s.observeCollaborator("renderer", err)
		if err != nil {
			s.logger.Warn("document render failed",
				logging.String("session", sess.ID), logging.String("kind", kind), logging.Err(err))
			continue
		}
		key := sess.ID + "/" + kind + ".txt"
		if _, err := s.opts.Docs.Put(ctx, key, data, "text/plain; charset=utf-8"); err != nil {
			s.observeCollaborator("docstore", err)
			s.logger.Warn("document store failed",
				logging.String("session", sess.ID), logging.String("kind", kind), logging.Err(err))
		}
	}
}

func (s *Service) observeTurn(prev, next conversation.Stage, turn conversation.Turn) {
	m := s.opts.Metrics
	if m == nil {
		return
	}
	outcome := "advanced"
	if prev == next {
		outcome = "retry"
	}
	if next == conversation.InitialStage && prev != conversation.InitialStage {
		m.ResetsTotal.Inc()
		outcome = "reset"
	}
	m.TurnsTotal.WithLabelValues(string(prev), outcome).Inc()
	if outcome == "retry" && !prev.Terminal() {
		m.ValidationFailuresTotal.WithLabelValues(string(prev)).Inc()
	}
}

func (s *Service) observeCollaborator(name string, err error) {
	m := s.opts.Metrics
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CollaboratorCallsTotal.WithLabelValues(name, outcome).Inc()
}

func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if s.opts.Events == nil {
		return
	}
	if err := s.opts.Events.Publish(ctx, eventType, payload); err != nil {
		s.logger.Warn("event publish failed",
			logging.String("event", eventType), logging.Err(err))
	}
}

func (s *Service) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
