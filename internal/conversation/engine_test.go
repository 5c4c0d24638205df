package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

type fakeSubmitter struct {
	calls int
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ *appealcase.Record) error {
	f.calls++
	return f.err
}

func newTestEngine(t *testing.T, sub Submitter) *Engine {
	t.Helper()
	predictor := prediction.NewEngine(grounds.Default(), prediction.NewStore(nil))
	return NewEngine(predictor, sub, nil)
}

// say runs one turn and fails the test on an engine error.
func say(t *testing.T, e *Engine, s *Session, input string) Turn {
	t.Helper()
	turn, err := e.HandleTurn(context.Background(), s, input)
	require.NoError(t, err, "input %q at stage %s", input, s.Stage)
	return turn
}

// advanceToReason walks a fresh session to the reason stage.
func advanceToReason(t *testing.T, e *Engine, s *Session, ticketType, ticketNumber string) {
	t.Helper()
	say(t, e, s, ticketType)
	say(t, e, s, ticketNumber)
	say(t, e, s, "AB12 CDE")
	say(t, e, s, "£65")
	say(t, e, s, "14/3/2024")
	say(t, e, s, "28/3/2024")
	say(t, e, s, "High Street, Leeds")
	require.Equal(t, StageReason, s.Stage)
}

func TestFullPCNFlow(t *testing.T) {
	sub := &fakeSubmitter{}
	e := newTestEngine(t, sub)
	s := NewSession("s1")

	turn := say(t, e, s, "parking ticket")
	assert.Equal(t, StageTicket, s.Stage)
	assert.Contains(t, turn.Reply, "Penalty Charge Notice")

	say(t, e, s, "WK12345678")
	assert.Equal(t, StageVehicleRegistration, s.Stage)
	assert.Equal(t, "WK12345678", s.Record.TicketNumber)

	say(t, e, s, "AB12 CDE")
	assert.Equal(t, "AB12CDE", s.Record.VehicleReg)

	say(t, e, s, "the fine is £65 I think")
	assert.Equal(t, 65.0, s.Record.FineAmount)

	say(t, e, s, "14/3/2024")
	assert.Equal(t, "2024-03-14", s.Record.IssueDate)

	say(t, e, s, "28-3-2024")
	assert.Equal(t, "2024-03-28", s.Record.DueDate)

	say(t, e, s, "High Street, Leeds")
	assert.Equal(t, StageReason, s.Stage)

	turn = say(t, e, s, "1")
	assert.Equal(t, "Invalid or unclear signage", s.Record.Reason)
	assert.Equal(t, StageDescription, s.Stage)
	require.NotNil(t, turn.Preview)

	say(t, e, s, "The sign on the street was completely faded and could not be read.")
	// PCN category skips the court-form stages.
	assert.Equal(t, StageEvidence, s.Stage)

	say(t, e, s, "photograph of signage")
	assert.Equal(t, []string{"photograph of signage"}, s.Record.Evidence)
	assert.Equal(t, StageEvidence, s.Stage)

	turn = say(t, e, s, "done")
	assert.Equal(t, StageComplete, s.Stage)
	assert.True(t, turn.Completed)
	assert.Equal(t, 1, sub.calls)

	// Terminal stage rejects further case input.
	turn = say(t, e, s, "add another thing")
	assert.Equal(t, StageComplete, s.Stage)
	assert.Contains(t, turn.Reply, "restart")
}

func TestSkipAnsweredStages(t *testing.T) {
	t.Run("advances past filled fields", func(t *testing.T) {
		s := NewSession("s1")
		s.Stage = StageTicket
		require.NoError(t, s.Record.SetTicketNumber("WK12345678"))
		require.NoError(t, s.Record.SetVehicleReg("AB12CDE"))

		s.SkipAnsweredStages()
		assert.Equal(t, StageAmount, s.Stage)
	})

	t.Run("no filled fields leaves stage alone", func(t *testing.T) {
		s := NewSession("s2")
		s.Stage = StageTicket
		s.SkipAnsweredStages()
		assert.Equal(t, StageTicket, s.Stage)
	})

	t.Run("every linear field filled lands on reason", func(t *testing.T) {
		s := NewSession("s3")
		s.Stage = StageTicket
		require.NoError(t, s.Record.SetTicketNumber("WK12345678"))
		require.NoError(t, s.Record.SetVehicleReg("AB12CDE"))
		require.NoError(t, s.Record.SetFineAmount(65))
		require.NoError(t, s.Record.SetIssueDate("2024-03-14"))
		require.NoError(t, s.Record.SetDueDate("2024-03-28"))
		require.NoError(t, s.Record.SetLocation("High Street, Leeds"))

		s.SkipAnsweredStages()
		assert.Equal(t, StageReason, s.Stage)
	})

	t.Run("non-linear stage is untouched", func(t *testing.T) {
		s := NewSession("s4")
		require.NoError(t, s.Record.SetTicketNumber("WK12345678"))

		s.SkipAnsweredStages()
		assert.Equal(t, InitialStage, s.Stage)
	})
}

func TestTicketTypeSelectionSkipsPrefilledTicket(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s")
	require.NoError(t, s.Record.SetTicketNumber("WK12345678"))

	// The record already knows the reference, so choosing a type must jump
	// straight to the registration question.
	turn := say(t, e, s, "pcn")
	assert.Equal(t, StageVehicleRegistration, turn.Stage)
	assert.Contains(t, turn.Reply, "vehicle registration")
}

func TestInvalidTicketNumberStaysInStage(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	say(t, e, s, "pcn")
	require.Equal(t, StageTicket, s.Stage)

	turn := say(t, e, s, "12")
	assert.Equal(t, StageTicket, s.Stage)
	assert.Empty(t, s.Record.TicketNumber)
	assert.Contains(t, turn.Reply, "valid reference")
}

func TestUnrecognisedTicketTypeReprompts(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")

	turn := say(t, e, s, "a letter from somebody")
	assert.Equal(t, StageTicketTypeSelection, s.Stage)
	assert.Contains(t, turn.Reply, "didn't recognise")
	assert.Contains(t, turn.Reply, "Penalty Charge Notice")
}

func TestReasonFreeTextAndOther(t *testing.T) {
	e := newTestEngine(t, nil)

	t.Run("other", func(t *testing.T) {
		s := NewSession("s1")
		advanceToReason(t, e, s, "pcn", "WK12345678")
		say(t, e, s, "other")
		assert.Equal(t, "Other", s.Record.Reason)
		assert.Equal(t, StageDescription, s.Stage)
	})

	t.Run("free text", func(t *testing.T) {
		s := NewSession("s2")
		advanceToReason(t, e, s, "pcn", "WK12345678")
		say(t, e, s, "the machine would not take my card")
		assert.Equal(t, "the machine would not take my card", s.Record.Reason)
	})

	t.Run("too short", func(t *testing.T) {
		s := NewSession("s3")
		advanceToReason(t, e, s, "pcn", "WK12345678")
		turn := say(t, e, s, "bad")
		assert.Equal(t, StageReason, s.Stage)
		assert.Contains(t, turn.Reply, "didn't catch")
	})
}

func TestGenerateDescription(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	advanceToReason(t, e, s, "pcn", "WK12345678")
	say(t, e, s, "1")

	turn := say(t, e, s, "generate")
	assert.Equal(t, StageEvidence, s.Stage)
	assert.GreaterOrEqual(t, len(s.Record.Description), 20)
	assert.Contains(t, s.Record.Description, "2024-03-14")
	assert.Contains(t, s.Record.Description, "High Street, Leeds")
	assert.Contains(t, turn.Reply, "drafted")
}

func TestTECBranchesToFormSelection(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	advanceToReason(t, e, s, "charge certificate", "WK12345678")
	require.Equal(t, appealcase.CategoryTEC, s.Record.Category)

	say(t, e, s, "1")
	say(t, e, s, "I never received the original notice at my address.")
	assert.Equal(t, StageFormSelection, s.Stage)
}

func TestFormSelectionHelpDoesNotTransition(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	advanceToReason(t, e, s, "charge certificate", "WK12345678")
	say(t, e, s, "1")
	say(t, e, s, "I never received the original notice at my address.")
	require.Equal(t, StageFormSelection, s.Stage)

	turn := say(t, e, s, "help")
	assert.Equal(t, StageFormSelection, s.Stage)
	assert.Contains(t, turn.Reply, "TE7")
	assert.Contains(t, turn.Reply, "TE9")
}

func TestTE9FormFlow(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	advanceToReason(t, e, s, "charge certificate", "WK12345678")
	say(t, e, s, "1")
	say(t, e, s, "I never received the original notice at my address.")
	say(t, e, s, "te9")
	require.Equal(t, StageTE9Form, s.Stage)

	say(t, e, s, "Sam Taylor")
	say(t, e, s, "1 Mill Lane, York")

	turn := say(t, e, s, "not a number")
	assert.Contains(t, turn.Reply, "phone")
	say(t, e, s, "07700 900123")

	turn = say(t, e, s, "not-an-email")
	assert.Contains(t, turn.Reply, "email")
	say(t, e, s, "sam@example.com")

	turn = say(t, e, s, "9")
	assert.Contains(t, turn.Reply, "between 1 and 4")
	say(t, e, s, "1")

	turn = say(t, e, s, "The notice was sent to my previous address and I only learned of it from the enforcement letter.")
	assert.Equal(t, StageEvidence, s.Stage)

	form := s.Record.Forms[appealcase.FormTE9]
	require.NotNil(t, form)
	assert.True(t, form.Complete)
	assert.Contains(t, form.Document, "TE9")
	assert.Contains(t, form.Document, "Sam Taylor")
	assert.Contains(t, form.Document, appealcase.TE9Grounds[0])
	assert.Contains(t, turn.Reply, "complete")
}

func TestBothFormsChain(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	advanceToReason(t, e, s, "charge certificate", "WK12345678")
	say(t, e, s, "1")
	say(t, e, s, "I never received the original notice at my address.")
	say(t, e, s, "both")
	require.Equal(t, StageTE7Form, s.Stage)

	fillForm := func() {
		say(t, e, s, "Sam Taylor")
		say(t, e, s, "1 Mill Lane, York")
		say(t, e, s, "07700 900123")
		say(t, e, s, "sam@example.com")
		say(t, e, s, "1")
		say(t, e, s, "The notice went to my old address and I moved in January.")
	}

	fillForm()
	assert.Equal(t, StageTE9Form, s.Stage)
	assert.True(t, s.Record.Forms[appealcase.FormTE7].Complete)

	fillForm()
	assert.Equal(t, StageEvidence, s.Stage)
	assert.True(t, s.Record.Forms[appealcase.FormTE9].Complete)
}

func TestRestartDuringTE9ClearsEverything(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	advanceToReason(t, e, s, "charge certificate", "WK12345678")
	say(t, e, s, "1")
	say(t, e, s, "I never received the original notice at my address.")
	say(t, e, s, "te9")
	say(t, e, s, "Sam Taylor")
	require.Equal(t, StageTE9Form, s.Stage)

	turn := say(t, e, s, "restart")
	assert.Equal(t, InitialStage, s.Stage)
	assert.Empty(t, s.Record.TicketNumber)
	assert.Empty(t, s.Record.Reason)
	assert.Empty(t, s.Record.Forms)
	assert.Empty(t, s.Record.SelectedForms)
	assert.Contains(t, turn.Reply, "Starting over")
}

func TestResetTokenInAnyStage(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	say(t, e, s, "pcn")
	say(t, e, s, "WK12345678")

	say(t, e, s, "ReSeT")
	assert.Equal(t, InitialStage, s.Stage)
	assert.Empty(t, s.Record.TicketNumber)
	assert.Empty(t, s.Record.TicketType)
}

func TestSubmissionFailureKeepsSessionRetryable(t *testing.T) {
	sub := &fakeSubmitter{err: apperrors.Collaborator("gateway down")}
	e := newTestEngine(t, sub)
	s := NewSession("s1")
	advanceToReason(t, e, s, "pcn", "WK12345678")
	say(t, e, s, "1")
	say(t, e, s, "The sign on the street was completely faded and unreadable.")
	require.Equal(t, StageEvidence, s.Stage)

	turn := say(t, e, s, "submit")
	assert.Equal(t, StageEvidence, s.Stage)
	assert.False(t, turn.Completed)
	assert.Contains(t, turn.Reply, "try again")
	assert.Equal(t, 1, sub.calls)

	sub.err = nil
	turn = say(t, e, s, "submit")
	assert.Equal(t, StageComplete, s.Stage)
	assert.True(t, turn.Completed)
	assert.Equal(t, 2, sub.calls)
}

func TestFormStageWithoutSelectionIsIntegrityError(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	s.Stage = StageTE7Form

	_, err := e.HandleTurn(context.Background(), s, "Sam Taylor")
	require.Error(t, err)
	assert.True(t, apperrors.IsIntegrity(err))
}

func TestFormSelectionForNonTECIsIntegrityError(t *testing.T) {
	e := newTestEngine(t, nil)
	s := NewSession("s1")
	say(t, e, s, "pcn")
	s.Stage = StageFormSelection

	_, err := e.HandleTurn(context.Background(), s, "te9")
	require.Error(t, err)
	assert.True(t, apperrors.IsIntegrity(err))
}

func TestEveryStageHasAPrompt(t *testing.T) {
	e := newTestEngine(t, nil)
	for stage := range stageTable {
		s := NewSession("s")
		s.Stage = stage
		assert.NotEmpty(t, e.Prompt(s), string(stage))
	}
}

func TestEveryTurnGetsAReply(t *testing.T) {
	e := newTestEngine(t, nil)
	inputs := []string{"", "???", "zz", "0", "99", "          "}
	for stage := range stageTable {
		for _, in := range inputs {
			s := NewSession("s")
			s.Stage = stage
			if stage == StageTicket || stage == StageFormSelection || stage == StageTE7Form || stage == StageTE9Form {
				continue // require prior state, covered above
			}
			turn, err := e.HandleTurn(context.Background(), s, in)
			require.NoError(t, err, "stage %s input %q", stage, in)
			assert.NotEmpty(t, turn.Reply, "stage %s input %q", stage, in)
		}
	}
}
