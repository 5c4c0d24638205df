// Package conversation implements the turn-by-turn intake dialogue that
// builds an appeal case. Each stage validates one field; bad input re-prompts
// in place and a turn makes at most one stage transition. The stage table is
// data, not control flow, so every entry is independently testable.
package conversation

// Stage names one state of the intake dialogue.
type Stage string

const (
	StageTicketTypeSelection Stage = "ticket_type_selection"
	StageTicket              Stage = "ticket"
	StageVehicleRegistration Stage = "vehicle_registration"
	StageAmount              Stage = "amount"
	StageIssueDate           Stage = "issue_date"
	StageDueDate             Stage = "due_date"
	StageLocation            Stage = "location"
	StageReason              Stage = "reason"
	StageDescription         Stage = "description"
	StageFormSelection       Stage = "form_selection"
	StageTE7Form             Stage = "te7_form"
	StageTE9Form             Stage = "te9_form"
	StageEvidence            Stage = "evidence"
	StageComplete            Stage = "complete"
)

// InitialStage is where every session, and every reset, starts.
const InitialStage = StageTicketTypeSelection

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	_, ok := stageTable[s]
	return ok
}

// Terminal reports whether the stage accepts no further case input.
func (s Stage) Terminal() bool { return s == StageComplete }
