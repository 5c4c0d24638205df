// Package appealcase holds the aggregate describing one user's in-progress
// appeal: the case record collected turn by turn, the fixed ticket-type
// table, and the normalization rules applied to raw field input.
package appealcase

import (
	"time"

	"github.com/roadpenalty/appealcore/pkg/errors"
)

// FormType identifies a statutory supplementary form.
type FormType string

const (
	FormTE7 FormType = "TE7" // application to file a statutory declaration out of time
	FormTE9 FormType = "TE9" // witness statement / statutory declaration
)

// FormFieldOrder is the fixed checklist order for the personal-detail fields
// of both statutory forms.  The conversation asks for the first unfilled
// entry on every turn.
var FormFieldOrder = []string{"full_name", "address", "phone", "email"}

// TE7Grounds are the selectable grounds for a late statutory declaration,
// addressed by their 1-based index.
var TE7Grounds = []string{
	"I did not receive the notice in time to respond",
	"I was unable to respond due to illness or absence",
	"I submitted a response that was not processed",
	"Other exceptional circumstances prevented a response",
}

// TE9Grounds are the selectable statutory declarations, addressed by their
// 1-based index.
var TE9Grounds = []string{
	"I did not receive the Notice to Owner / Enforcement Notice",
	"I made representations but received no rejection notice",
	"I appealed to the adjudicator but received no response",
	"The penalty has been paid in full",
}

// FormData accumulates one statutory form's answers during its sub-flow.
type FormData struct {
	Type        FormType          `json:"type"`
	Fields      map[string]string `json:"fields"`
	GroundIndex int               `json:"ground_index"` // 1-based into TE7Grounds / TE9Grounds; 0 = unset
	Statement   string            `json:"statement"`
	Document    string            `json:"document"` // synthesized form text, set on completion
	Complete    bool              `json:"complete"`
}

// NewFormData returns an empty form of the given type.
func NewFormData(t FormType) *FormData {
	return &FormData{Type: t, Fields: make(map[string]string)}
}

// NextField returns the name of the first unfilled checklist entry, or ""
// when all personal-detail fields are present.
func (f *FormData) NextField() string {
	for _, name := range FormFieldOrder {
		if f.Fields[name] == "" {
			return name
		}
	}
	return ""
}

// Record is the accumulated structured data describing one appeal.
// It is created empty at session start; every scalar field is write-once
// (immutable after a validated write) except via Reset, which wipes the
// whole record.
type Record struct {
	TicketNumber  string   `json:"ticket_number"`
	TicketType    string   `json:"ticket_type"` // TicketType.Key
	Category      Category `json:"category"`
	VehicleReg    string   `json:"vehicle_registration"`
	FineAmount    float64  `json:"fine_amount"`
	IssueDate     string   `json:"issue_date"` // ISO YYYY-MM-DD
	DueDate       string   `json:"due_date"`   // ISO YYYY-MM-DD
	Location      string   `json:"location"`
	Reason        string   `json:"reason"`
	Description   string   `json:"description"`
	Evidence      []string `json:"evidence"`
	Authority     string   `json:"authority,omitempty"`
	PriorAttempts int      `json:"prior_attempts"`

	SelectedForms []FormType             `json:"selected_forms,omitempty"`
	Forms         map[FormType]*FormData `json:"forms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty record stamped with the current time.
func New() *Record {
	now := time.Now().UTC()
	return &Record{
		Evidence:  []string{},
		Forms:     make(map[FormType]*FormData),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *Record) touch() { r.UpdatedAt = time.Now().UTC() }

func lockedErr(field string) error {
	return errors.New(errors.ErrCodeCaseFieldLocked, "field already set").WithDetail(field)
}

// SetTicketType records the classified type and its category together.
func (r *Record) SetTicketType(tt TicketType) error {
	if r.TicketType != "" {
		return lockedErr("ticket_type")
	}
	r.TicketType = tt.Key
	r.Category = tt.Category
	r.touch()
	return nil
}

// SetTicketNumber stores an already-normalized ticket reference.
func (r *Record) SetTicketNumber(v string) error {
	if r.TicketNumber != "" {
		return lockedErr("ticket_number")
	}
	r.TicketNumber = v
	r.touch()
	return nil
}

// SetVehicleReg stores an already-normalized registration mark.
func (r *Record) SetVehicleReg(v string) error {
	if r.VehicleReg != "" {
		return lockedErr("vehicle_registration")
	}
	r.VehicleReg = v
	r.touch()
	return nil
}

// SetFineAmount stores the parsed penalty amount.
func (r *Record) SetFineAmount(v float64) error {
	if r.FineAmount != 0 {
		return lockedErr("fine_amount")
	}
	r.FineAmount = v
	r.touch()
	return nil
}

// SetIssueDate stores the canonical ISO issue date.
func (r *Record) SetIssueDate(iso string) error {
	if r.IssueDate != "" {
		return lockedErr("issue_date")
	}
	r.IssueDate = iso
	r.touch()
	return nil
}

// SetDueDate stores the canonical ISO due date.
func (r *Record) SetDueDate(iso string) error {
	if r.DueDate != "" {
		return lockedErr("due_date")
	}
	r.DueDate = iso
	r.touch()
	return nil
}

// SetLocation stores the contravention location.
func (r *Record) SetLocation(v string) error {
	if r.Location != "" {
		return lockedErr("location")
	}
	r.Location = v
	r.touch()
	return nil
}

// SetReason stores the appeal reason label.
func (r *Record) SetReason(v string) error {
	if r.Reason != "" {
		return lockedErr("reason")
	}
	r.Reason = v
	r.touch()
	return nil
}

// SetDescription stores the free-text circumstances description.
func (r *Record) SetDescription(v string) error {
	if r.Description != "" {
		return lockedErr("description")
	}
	r.Description = v
	r.touch()
	return nil
}

// AddEvidence appends an evidence reference.  Evidence is an ordered list and
// intentionally not write-once.
func (r *Record) AddEvidence(ref string) {
	r.Evidence = append(r.Evidence, ref)
	r.touch()
}

// SelectForms records the statutory forms the user chose, in fill order, and
// initialises their working data.
func (r *Record) SelectForms(types ...FormType) {
	// Snapshots decoded from storage can carry a nil map.
	if r.Forms == nil {
		r.Forms = make(map[FormType]*FormData)
	}
	for _, t := range types {
		if _, ok := r.Forms[t]; ok {
			continue
		}
		r.SelectedForms = append(r.SelectedForms, t)
		r.Forms[t] = NewFormData(t)
	}
	r.touch()
}

// NextOutstandingForm returns the first selected form that is not complete.
func (r *Record) NextOutstandingForm() (*FormData, bool) {
	for _, t := range r.SelectedForms {
		if f := r.Forms[t]; f != nil && !f.Complete {
			return f, true
		}
	}
	return nil, false
}

// Reset wipes the record back to its empty state, preserving CreatedAt.
func (r *Record) Reset() {
	created := r.CreatedAt
	*r = *New()
	r.CreatedAt = created
}

// Clone returns a deep copy, used by GetSnapshot so callers can never mutate
// the session's record.
func (r *Record) Clone() *Record {
	c := *r
	c.Evidence = append([]string(nil), r.Evidence...)
	c.SelectedForms = append([]FormType(nil), r.SelectedForms...)
	c.Forms = make(map[FormType]*FormData, len(r.Forms))
	for t, f := range r.Forms {
		fc := *f
		fc.Fields = make(map[string]string, len(f.Fields))
		for k, v := range f.Fields {
			fc.Fields[k] = v
		}
		c.Forms[t] = &fc
	}
	return &c
}

// ReadyForSubmission reports whether every mandatory field has been collected
// and all selected forms are complete.
func (r *Record) ReadyForSubmission() bool {
	if r.TicketNumber == "" || r.TicketType == "" || r.VehicleReg == "" ||
		r.FineAmount == 0 || r.IssueDate == "" || r.DueDate == "" ||
		r.Location == "" || r.Reason == "" || r.Description == "" {
		return false
	}
	for _, t := range r.SelectedForms {
		if f := r.Forms[t]; f == nil || !f.Complete {
			return false
		}
	}
	return true
}
