package conversation

import (
	"fmt"
	"strings"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
)

// Prompt returns the question the session should ask next, from its current
// stage. Every stage always has a well-defined prompt.
func (e *Engine) Prompt(s *Session) string {
	switch s.Stage {
	case StageTicketTypeSelection:
		return ticketTypePrompt()
	case StageTicket:
		return ticketNumberPrompt(s.Record)
	case StageVehicleRegistration:
		return "What is the vehicle registration (number plate)?"
	case StageAmount:
		return "How much is the penalty? Enter the amount, e.g. 65 or 32.50."
	case StageIssueDate:
		return "What date was the penalty issued? Use day/month/year, e.g. 14/3/2024."
	case StageDueDate:
		return "What is the payment due date? Use day/month/year, e.g. 28/3/2024."
	case StageLocation:
		return "Where did this happen? Give the street and town."
	case StageReason:
		return reasonPrompt()
	case StageDescription:
		return "Describe in your own words what happened (at least 20 characters), or type \"generate\" and I will draft a description from what you have told me."
	case StageFormSelection:
		return formSelectionPrompt()
	case StageTE7Form:
		return formPrompt(s.Record, appealcase.FormTE7)
	case StageTE9Form:
		return formPrompt(s.Record, appealcase.FormTE9)
	case StageEvidence:
		return "List any evidence you have, one item per message (e.g. \"photograph of signage\"). Type \"done\" or \"submit\" when you are finished, or \"skip\" if you have none."
	case StageComplete:
		return "Your appeal has been prepared and submitted. Type \"restart\" to begin a new appeal."
	default:
		return "Something went wrong with this session. Type \"restart\" to begin again."
	}
}

func ticketTypePrompt() string {
	var b strings.Builder
	b.WriteString("What kind of penalty have you received? Reply with a number or name it:\n")
	for i, tt := range appealcase.TicketTypes() {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, tt.Label)
	}
	return strings.TrimRight(b.String(), "\n")
}

func ticketNumberPrompt(rec *appealcase.Record) string {
	if tt, ok := appealcase.TicketTypeByKey(rec.TicketType); ok && tt.NumberHint != "" {
		return fmt.Sprintf("What is the reference number on the notice? It should be %s.", tt.NumberHint)
	}
	return "What is the reference number on the notice?"
}

func reasonPrompt() string {
	var b strings.Builder
	b.WriteString("Why do you believe the penalty is wrong? Choose a number, or describe it in your own words:\n")
	for i := 1; i <= len(appealcase.ReasonLabels); i++ {
		fmt.Fprintf(&b, "  %d. %s\n", i, appealcase.ReasonLabels[fmt.Sprint(i)])
	}
	b.WriteString("  or type \"other\" / at least 10 characters of free text")
	return b.String()
}

func formSelectionPrompt() string {
	return strings.Join([]string{
		"Your case is registered with the Traffic Enforcement Centre, so statutory forms may apply:",
		"  te7  - apply to file a statutory declaration outside the time limit",
		"  te9  - witness statement that you did not receive the notice, had no response, or have paid",
		"  both - complete TE7 and TE9",
		"  skip - continue without court forms",
		"Type te7, te9, both, skip, or help for more detail.",
	}, "\n")
}

func formHelpText() string {
	return strings.Join([]string{
		"TE7 asks the court for permission to file a late statutory declaration; use it when the deadline has passed.",
		"TE9 is the statutory declaration itself: you did not receive the notice, made representations with no reply, appealed with no response, or have already paid.",
		"Most people who never received the original paperwork need both.",
		"Type te7, te9, both, or skip.",
	}, "\n")
}

var formFieldPrompts = map[string]string{
	"full_name": "your full name as it should appear on the form",
	"address":   "your full postal address",
	"phone":     "a daytime phone number",
	"email":     "your email address",
}

func formPrompt(rec *appealcase.Record, t appealcase.FormType) string {
	form, ok := rec.Forms[t]
	if !ok {
		return fmt.Sprintf("Let's complete form %s.", t)
	}
	if field := form.NextField(); field != "" {
		return fmt.Sprintf("For form %s, please give %s.", t, formFieldPrompts[field])
	}
	if form.GroundIndex == 0 {
		return formGroundPrompt(t)
	}
	if form.Statement == "" {
		return fmt.Sprintf("Finally for form %s, set out in your own words what happened (at least 10 characters).", t)
	}
	return fmt.Sprintf("Form %s is complete.", t)
}

func formGroundPrompt(t appealcase.FormType) string {
	list := appealcase.TE7Grounds
	if t == appealcase.FormTE9 {
		list = appealcase.TE9Grounds
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Which ground applies on form %s? Reply 1-%d:\n", t, len(list))
	for i, g := range list {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, g)
	}
	return strings.TrimRight(b.String(), "\n")
}
