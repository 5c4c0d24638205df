package appeal

import (
	"context"

	"github.com/roadpenalty/appealcore/internal/conversation"
)

// SessionStore persists dialogue sessions. The in-memory store is the
// default; the redis-backed store lets sessions survive restarts.
type SessionStore interface {
	Get(ctx context.Context, id string) (*conversation.Session, error)
	Save(ctx context.Context, s *conversation.Session) error
	Delete(ctx context.Context, id string) error
}

// DocumentRenderer turns template text and field values into a binary
// document. Rendering lives outside the core; the core supplies only text.
type DocumentRenderer interface {
	Render(ctx context.Context, formType string, fields map[string]string) ([]byte, error)
}

// DocumentStore archives rendered documents and returns a retrieval key.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// CasePatch is a partial set of case fields extracted from an uploaded
// document. Empty fields mean "not found".
type CasePatch struct {
	TicketNumber string  `json:"ticket_number,omitempty"`
	VehicleReg   string  `json:"vehicle_registration,omitempty"`
	FineAmount   float64 `json:"fine_amount,omitempty"`
	IssueDate    string  `json:"issue_date,omitempty"`
	DueDate      string  `json:"due_date,omitempty"`
	Location     string  `json:"location,omitempty"`
}

// Extraction is an unconfirmed OCR result. It is never merged into a case
// until the user explicitly accepts it.
type Extraction struct {
	Patch      CasePatch `json:"patch"`
	Confidence float64   `json:"confidence"`
}

// OCRExtractor reads case fields out of an uploaded document.
type OCRExtractor interface {
	Extract(ctx context.Context, document []byte) (Extraction, error)
}

// EventPublisher emits domain events (case submitted, calibration run).
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}
