package conversation

import (
	"time"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
)

// Session holds one user's dialogue position and accumulated case. A session
// is exclusively owned by its caller: the engine never shares it across
// goroutines, and at most one turn may be in flight per session.
type Session struct {
	ID        string             `json:"id"`
	Stage     Stage              `json:"stage"`
	Record    *appealcase.Record `json:"record"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewSession returns a fresh session at the initial stage.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Stage:     InitialStage,
		Record:    appealcase.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset atomically wipes the case record and returns the dialogue to the
// initial stage. The session identity and creation time survive.
func (s *Session) Reset() {
	s.Record.Reset()
	s.Stage = InitialStage
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// linearStages pairs each single-field intake stage, in dialogue order, with
// a check for whether its field already holds a value.
var linearStages = []struct {
	stage  Stage
	filled func(*appealcase.Record) bool
}{
	{StageTicket, func(r *appealcase.Record) bool { return r.TicketNumber != "" }},
	{StageVehicleRegistration, func(r *appealcase.Record) bool { return r.VehicleReg != "" }},
	{StageAmount, func(r *appealcase.Record) bool { return r.FineAmount > 0 }},
	{StageIssueDate, func(r *appealcase.Record) bool { return r.IssueDate != "" }},
	{StageDueDate, func(r *appealcase.Record) bool { return r.DueDate != "" }},
	{StageLocation, func(r *appealcase.Record) bool { return r.Location != "" }},
}

// SkipAnsweredStages advances the session past stages whose field is already
// filled, such as after an accepted document extraction, so the dialogue
// never re-asks a question the case record can answer. It stops at the first
// unfilled stage; with every linear field filled it lands on the reason
// stage. Non-linear stages are left alone.
func (s *Session) SkipAnsweredStages() {
	for i, ls := range linearStages {
		if s.Stage != ls.stage {
			continue
		}
		target := StageReason
		for _, rest := range linearStages[i:] {
			if !rest.filled(s.Record) {
				target = rest.stage
				break
			}
		}
		if target != s.Stage {
			s.Stage = target
			s.touch()
		}
		return
	}
}

// advanceTo moves the dialogue to next, then past any stages the record can
// already answer.
func (s *Session) advanceTo(next Stage) {
	s.Stage = next
	s.SkipAnsweredStages()
}
