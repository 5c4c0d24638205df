package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/letter"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// Submitter hands a finalized case to whatever delivers it. A failure keeps
// the session one stage short of complete so the user can retry.
type Submitter interface {
	Submit(ctx context.Context, rec *appealcase.Record) error
}

// Turn is the result of processing one user message.
type Turn struct {
	Reply     string
	Stage     Stage
	Completed bool
	// Preview carries the early assessment produced at the reason stage.
	Preview *prediction.Result
}

// Engine drives sessions through the stage table. It holds no per-session
// state; sessions are passed in and mutated under the caller's ownership.
type Engine struct {
	predictor *prediction.Engine
	submitter Submitter
	logger    logging.Logger
}

// NewEngine returns a conversation engine. submitter may be nil, in which
// case finalizing a case completes the session without external delivery.
func NewEngine(predictor *prediction.Engine, submitter Submitter, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{
		predictor: predictor,
		submitter: submitter,
		logger:    logger.Named("conversation"),
	}
}

type handlerFunc func(e *Engine, ctx context.Context, s *Session, input string) (Turn, error)

// stageTable maps each stage to its handler. Handlers validate, write
// fields, and transition; on bad input they re-prompt with the stage
// unchanged.
var stageTable = map[Stage]handlerFunc{
	StageTicketTypeSelection: (*Engine).handleTicketType,
	StageTicket:              (*Engine).handleTicketNumber,
	StageVehicleRegistration: (*Engine).handleVehicleReg,
	StageAmount:              (*Engine).handleAmount,
	StageIssueDate:           (*Engine).handleIssueDate,
	StageDueDate:             (*Engine).handleDueDate,
	StageLocation:            (*Engine).handleLocation,
	StageReason:              (*Engine).handleReason,
	StageDescription:         (*Engine).handleDescription,
	StageFormSelection:       (*Engine).handleFormSelection,
	StageTE7Form:             (*Engine).handleTE7,
	StageTE9Form:             (*Engine).handleTE9,
	StageEvidence:            (*Engine).handleEvidence,
	StageComplete:            (*Engine).handleComplete,
}

// HandleTurn processes one user message for the session. Validation failures
// never surface as errors; the only error returns are internal invariant
// breaches, which indicate a bug in the stage table itself.
func (e *Engine) HandleTurn(ctx context.Context, s *Session, input string) (Turn, error) {
	defer s.touch()

	norm := strings.ToLower(strings.TrimSpace(input))
	if norm == "reset" || norm == "restart" {
		s.Reset()
		return Turn{
			Reply: "Starting over, everything has been cleared.\n\n" + e.Prompt(s),
			Stage: s.Stage,
		}, nil
	}

	handler, ok := stageTable[s.Stage]
	if !ok {
		return Turn{}, apperrors.Integrity("unknown stage").WithDetail("stage=" + string(s.Stage))
	}
	turn, err := handler(e, ctx, s, input)
	if err != nil {
		e.logger.Error("turn failed",
			logging.String("session", s.ID),
			logging.String("stage", string(s.Stage)),
			logging.Err(err))
		return Turn{}, err
	}
	turn.Stage = s.Stage
	return turn, nil
}

func (e *Engine) handleTicketType(_ context.Context, s *Session, input string) (Turn, error) {
	tt, ok := appealcase.MatchTicketType(input)
	if !ok {
		return Turn{Reply: "I didn't recognise that penalty type.\n\n" + ticketTypePrompt()}, nil
	}
	if err := s.Record.SetTicketType(tt); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "ticket type already set")
	}
	s.advanceTo(StageTicket)
	return Turn{Reply: fmt.Sprintf("Got it: %s.\n\n%s", tt.Label, e.Prompt(s))}, nil
}

func (e *Engine) handleTicketNumber(_ context.Context, s *Session, input string) (Turn, error) {
	tt, ok := appealcase.TicketTypeByKey(s.Record.TicketType)
	if !ok {
		return Turn{}, apperrors.Integrity("ticket stage reached without a ticket type")
	}
	num, err := appealcase.ValidateTicketNumber(input, tt)
	if err != nil {
		return Turn{Reply: fmt.Sprintf("That doesn't look like a valid reference. It should be %s. Please check the notice and try again.", tt.NumberHint)}, nil
	}
	if err := s.Record.SetTicketNumber(num); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "ticket number already set")
	}
	s.advanceTo(StageVehicleRegistration)
	return Turn{Reply: fmt.Sprintf("Reference %s recorded.\n\n%s", num, e.Prompt(s))}, nil
}

func (e *Engine) handleVehicleReg(_ context.Context, s *Session, input string) (Turn, error) {
	reg, err := appealcase.NormalizeRegistration(input)
	if err != nil {
		return Turn{Reply: "That registration looks too short. Please enter the full number plate, e.g. AB12 CDE."}, nil
	}
	if err := s.Record.SetVehicleReg(reg); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "registration already set")
	}
	s.advanceTo(StageAmount)
	return Turn{Reply: fmt.Sprintf("Vehicle %s recorded.\n\n%s", reg, e.Prompt(s))}, nil
}

func (e *Engine) handleAmount(_ context.Context, s *Session, input string) (Turn, error) {
	amount, err := appealcase.ParseAmount(input)
	if err != nil {
		return Turn{Reply: "I couldn't find an amount in that. Please enter a number, e.g. 65 or 32.50."}, nil
	}
	if err := s.Record.SetFineAmount(amount); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "amount already set")
	}
	s.advanceTo(StageIssueDate)
	return Turn{Reply: fmt.Sprintf("Penalty amount £%.2f recorded.\n\n%s", amount, e.Prompt(s))}, nil
}

func (e *Engine) handleIssueDate(_ context.Context, s *Session, input string) (Turn, error) {
	iso, err := appealcase.ParseDate(input)
	if err != nil {
		return Turn{Reply: "I couldn't read that date. Please use day/month/year, e.g. 14/3/2024."}, nil
	}
	if err := s.Record.SetIssueDate(iso); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "issue date already set")
	}
	s.advanceTo(StageDueDate)
	return Turn{Reply: fmt.Sprintf("Issue date %s recorded.\n\n%s", iso, e.Prompt(s))}, nil
}

func (e *Engine) handleDueDate(_ context.Context, s *Session, input string) (Turn, error) {
	iso, err := appealcase.ParseDate(input)
	if err != nil {
		return Turn{Reply: "I couldn't read that date. Please use day/month/year, e.g. 28/3/2024."}, nil
	}
	if err := s.Record.SetDueDate(iso); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "due date already set")
	}
	s.advanceTo(StageLocation)
	return Turn{Reply: fmt.Sprintf("Due date %s recorded.\n\n%s", iso, e.Prompt(s))}, nil
}

func (e *Engine) handleLocation(_ context.Context, s *Session, input string) (Turn, error) {
	loc := strings.TrimSpace(input)
	if len(loc) < 5 {
		return Turn{Reply: "Please give a little more detail about the location, e.g. \"High Street, Leeds\"."}, nil
	}
	if err := s.Record.SetLocation(loc); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "location already set")
	}
	s.advanceTo(StageReason)
	return Turn{Reply: fmt.Sprintf("Location recorded.\n\n%s", e.Prompt(s))}, nil
}

func (e *Engine) handleReason(_ context.Context, s *Session, input string) (Turn, error) {
	trimmed := strings.TrimSpace(input)
	norm := strings.ToLower(trimmed)

	var reason string
	switch {
	case appealcase.ReasonLabels[norm] != "":
		reason = appealcase.ReasonLabels[norm]
	case norm == "other":
		reason = "Other"
	case len(trimmed) >= 10:
		reason = trimmed
	default:
		return Turn{Reply: "I didn't catch that.\n\n" + reasonPrompt()}, nil
	}
	if err := s.Record.SetReason(reason); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "reason already set")
	}
	s.Stage = StageDescription

	preview := e.predictor.PredictRecord(s.Record)
	reply := fmt.Sprintf("Reason recorded: %s.\n\n%s\n\n%s",
		reason, previewSummary(&preview), e.Prompt(s))
	return Turn{Reply: reply, Preview: &preview}, nil
}

func previewSummary(res *prediction.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Early assessment: an estimated %.0f%% chance of success.", res.SuccessProbability*100)
	if len(res.Grounds) > 0 {
		fmt.Fprintf(&b, " Strongest ground so far: %s.", res.Grounds[0].Title)
	}
	return b.String()
}

func (e *Engine) handleDescription(_ context.Context, s *Session, input string) (Turn, error) {
	trimmed := strings.TrimSpace(input)
	norm := strings.ToLower(trimmed)

	var desc, lead string
	switch {
	case norm == "generate":
		desc = letter.DescribeIncident(s.Record)
		lead = "Here is the description I drafted:\n\n" + desc
	case len(trimmed) >= 20:
		desc = trimmed
		lead = "Description recorded."
	default:
		return Turn{Reply: "Please describe what happened in at least 20 characters, or type \"generate\"."}, nil
	}
	if err := s.Record.SetDescription(desc); err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "description already set")
	}

	if s.Record.Category == appealcase.CategoryTEC {
		s.Stage = StageFormSelection
	} else {
		s.Stage = StageEvidence
	}
	return Turn{Reply: lead + "\n\n" + e.Prompt(s)}, nil
}

func (e *Engine) handleFormSelection(_ context.Context, s *Session, input string) (Turn, error) {
	if s.Record.Category != appealcase.CategoryTEC {
		return Turn{}, apperrors.Integrity("form selection reached for a non-TEC case").
			WithDetail("category=" + string(s.Record.Category))
	}
	norm := strings.ToLower(strings.TrimSpace(input))

	hasTE7 := strings.Contains(norm, "te7")
	hasTE9 := strings.Contains(norm, "te9")
	switch {
	case norm == "help":
		return Turn{Reply: formHelpText()}, nil
	case strings.Contains(norm, "both") || (hasTE7 && hasTE9):
		s.Record.SelectForms(appealcase.FormTE7, appealcase.FormTE9)
		s.Stage = StageTE7Form
	case hasTE7:
		s.Record.SelectForms(appealcase.FormTE7)
		s.Stage = StageTE7Form
	case hasTE9:
		s.Record.SelectForms(appealcase.FormTE9)
		s.Stage = StageTE9Form
	case norm == "skip":
		s.Stage = StageEvidence
	default:
		return Turn{Reply: "Please choose one of the options.\n\n" + formSelectionPrompt()}, nil
	}
	return Turn{Reply: e.Prompt(s)}, nil
}

func (e *Engine) handleTE7(ctx context.Context, s *Session, input string) (Turn, error) {
	return e.handleForm(ctx, s, appealcase.FormTE7, input)
}

func (e *Engine) handleTE9(ctx context.Context, s *Session, input string) (Turn, error) {
	return e.handleForm(ctx, s, appealcase.FormTE9, input)
}

// handleForm advances one statutory form through its checklist: personal
// details in fixed order, then the ground selector, then the statement. The
// form is synthesized on the final answer and the flow chains to the next
// outstanding form or the evidence stage.
func (e *Engine) handleForm(_ context.Context, s *Session, t appealcase.FormType, input string) (Turn, error) {
	form, ok := s.Record.Forms[t]
	if !ok {
		return Turn{}, apperrors.Integrity("form stage reached without selection").
			WithDetail("form=" + string(t))
	}
	trimmed := strings.TrimSpace(input)

	if field := form.NextField(); field != "" {
		if msg, ok := validFormField(field, trimmed); !ok {
			return Turn{Reply: msg}, nil
		}
		form.Fields[field] = trimmed
		return Turn{Reply: e.Prompt(s)}, nil
	}

	if form.GroundIndex == 0 {
		limit := len(appealcase.TE7Grounds)
		if t == appealcase.FormTE9 {
			limit = len(appealcase.TE9Grounds)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil || n < 1 || n > limit {
			return Turn{Reply: fmt.Sprintf("Please reply with a number between 1 and %d.\n\n%s", limit, formGroundPrompt(t))}, nil
		}
		form.GroundIndex = n
		return Turn{Reply: e.Prompt(s)}, nil
	}

	if form.Statement == "" {
		if len(trimmed) < 10 {
			return Turn{Reply: "Please give a fuller statement, at least 10 characters."}, nil
		}
		form.Statement = trimmed
	}

	doc, err := letter.GenerateForm(s.Record, form)
	if err != nil {
		return Turn{}, apperrors.Wrap(err, apperrors.ErrCodeStateIntegrity, "completed form failed to render")
	}
	form.Document = doc
	form.Complete = true

	if next, ok := s.Record.NextOutstandingForm(); ok {
		s.Stage = stageForForm(next.Type)
		return Turn{Reply: fmt.Sprintf("Form %s is complete.\n\n%s", t, e.Prompt(s))}, nil
	}
	s.Stage = StageEvidence
	return Turn{Reply: fmt.Sprintf("Form %s is complete.\n\n%s", t, e.Prompt(s))}, nil
}

func stageForForm(t appealcase.FormType) Stage {
	if t == appealcase.FormTE9 {
		return StageTE9Form
	}
	return StageTE7Form
}

func validFormField(field, value string) (string, bool) {
	switch {
	case value == "":
		return "Please enter a value.", false
	case field == "email" && !strings.Contains(value, "@"):
		return "That doesn't look like an email address. Please try again.", false
	case field == "phone" && digitCount(value) < 7:
		return "That doesn't look like a phone number. Please try again.", false
	case len(value) < 2:
		return "That looks too short. Please try again.", false
	}
	return "", true
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

var finalizeTokens = map[string]bool{
	"skip":     true,
	"continue": true,
	"done":     true,
	"submit":   true,
}

func (e *Engine) handleEvidence(ctx context.Context, s *Session, input string) (Turn, error) {
	trimmed := strings.TrimSpace(input)
	norm := strings.ToLower(trimmed)

	if !finalizeTokens[norm] {
		if len(trimmed) < 3 {
			return Turn{Reply: "Please name an evidence item, or type \"done\" to finish."}, nil
		}
		s.Record.AddEvidence(trimmed)
		return Turn{Reply: fmt.Sprintf("Added \"%s\" to your evidence (%d item(s) so far). Anything else? Type \"done\" when finished.",
			trimmed, len(s.Record.Evidence))}, nil
	}

	if e.submitter != nil {
		if err := e.submitter.Submit(ctx, s.Record); err != nil {
			e.logger.Warn("submission failed",
				logging.String("session", s.ID),
				logging.Err(err))
			return Turn{Reply: "I couldn't submit your appeal just now. Nothing has been lost; please type \"submit\" to try again in a moment."}, nil
		}
	}
	s.Stage = StageComplete
	return Turn{
		Reply:     completionSummary(s.Record),
		Completed: true,
	}, nil
}

func completionSummary(rec *appealcase.Record) string {
	var b strings.Builder
	b.WriteString("Your appeal has been submitted. Summary:\n")
	fmt.Fprintf(&b, "  Reference:    %s\n", rec.TicketNumber)
	fmt.Fprintf(&b, "  Vehicle:      %s\n", rec.VehicleReg)
	fmt.Fprintf(&b, "  Amount:       £%.2f\n", rec.FineAmount)
	fmt.Fprintf(&b, "  Location:     %s\n", rec.Location)
	fmt.Fprintf(&b, "  Evidence:     %d item(s)\n", len(rec.Evidence))
	if len(rec.SelectedForms) > 0 {
		forms := make([]string, 0, len(rec.SelectedForms))
		for _, t := range rec.SelectedForms {
			forms = append(forms, string(t))
		}
		fmt.Fprintf(&b, "  Court forms:  %s\n", strings.Join(forms, ", "))
	}
	b.WriteString("You will hear back from the authority in due course. Type \"restart\" to begin a new appeal.")
	return b.String()
}

func (e *Engine) handleComplete(_ context.Context, s *Session, _ string) (Turn, error) {
	return Turn{Reply: "This appeal is already complete. Type \"restart\" to begin a new one."}, nil
}
