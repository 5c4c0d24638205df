// Package letter assembles appeal letters and statutory form text from a
// case record and ranked grounds. Generation is pure template substitution;
// every ground shares the same slot vocabulary, so there are no per-ground
// code paths.
package letter

import (
	"fmt"
	"strings"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
)

const unknownSlot = "[to be confirmed]"

// Letter is the assembled four-part appeal letter plus its flattened text.
type Letter struct {
	Opening           string
	LegalArgument     string
	EvidenceSection   string
	Conclusion        string
	SupportingGrounds []string
	Text              string
}

// Generate builds an appeal letter from the case record and the grounds
// ranked for it, strongest first. The top ground's template drives the body;
// any further grounds are appended as supporting bullet summaries. With no
// grounds matched a plain mitigation letter is produced instead.
func Generate(rec *appealcase.Record, ranked []grounds.Definition) Letter {
	slots := slotValues(rec)

	var l Letter
	if len(ranked) == 0 {
		l = genericLetter(slots)
	} else {
		top := ranked[0]
		if top.LegalBasis != "" {
			slots["legal_basis"] = top.LegalBasis
		} else {
			slots["legal_basis"] = "the authority's published discretion policy"
		}
		l = Letter{
			Opening:         substitute(top.Template.Opening, slots),
			LegalArgument:   substitute(top.Template.LegalArgument, slots),
			EvidenceSection: substitute(top.Template.EvidenceSection, slots),
			Conclusion:      substitute(top.Template.Conclusion, slots),
		}
		for _, g := range ranked[1:] {
			l.SupportingGrounds = append(l.SupportingGrounds,
				fmt.Sprintf("%s: %s", g.Title, g.Description))
		}
	}

	l.Text = flatten(l)
	return l
}

func genericLetter(slots map[string]string) Letter {
	return Letter{
		Opening: substitute(
			"I write to appeal penalty notice {{ticket_number}} issued on {{issue_date}} at {{location}} in respect of vehicle {{vehicle_registration}}.", slots),
		LegalArgument: substitute(
			"I ask the authority to consider the following circumstances: {{description}}", slots),
		EvidenceSection: substitute(
			"I can provide the following in support: {{evidence_list}}.", slots),
		Conclusion: substitute(
			"In light of the above I respectfully request that the penalty of £{{fine_amount}} be cancelled or reduced.", slots),
	}
}

func flatten(l Letter) string {
	var b strings.Builder
	b.WriteString(l.Opening)
	b.WriteString("\n\n")
	b.WriteString(l.LegalArgument)
	b.WriteString("\n\n")
	b.WriteString(l.EvidenceSection)
	if len(l.SupportingGrounds) > 0 {
		b.WriteString("\n\nIn the alternative, I also rely on the following grounds:")
		for _, s := range l.SupportingGrounds {
			b.WriteString("\n- ")
			b.WriteString(s)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(l.Conclusion)
	b.WriteString("\n\nYours faithfully,")
	return b.String()
}

// slotValues flattens the case record into the uniform slot map. Unset
// fields render as a visible placeholder rather than an empty hole.
func slotValues(rec *appealcase.Record) map[string]string {
	label := rec.TicketType
	if tt, ok := appealcase.TicketTypeByKey(rec.TicketType); ok {
		label = tt.Label
	}
	slots := map[string]string{
		"ticket_type":          label,
		"ticket_number":        rec.TicketNumber,
		"vehicle_registration": rec.VehicleReg,
		"issue_date":           rec.IssueDate,
		"due_date":             rec.DueDate,
		"location":             rec.Location,
		"reason":               rec.Reason,
		"description":          rec.Description,
		"authority":            rec.Authority,
	}
	if rec.FineAmount > 0 {
		slots["fine_amount"] = fmt.Sprintf("%.2f", rec.FineAmount)
	}
	if len(rec.Evidence) > 0 {
		slots["evidence_list"] = strings.Join(rec.Evidence, "; ")
	} else {
		slots["evidence_list"] = "supporting evidence to follow"
	}
	for k, v := range slots {
		if v == "" {
			slots[k] = unknownSlot
		}
	}
	return slots
}

// incidentTemplate synthesizes a first-person account from collected facts,
// for users who ask the intake dialogue to write their description for them.
const incidentTemplate = "On {{issue_date}} at {{location}} I was issued a " +
	"{{ticket_type}} (reference {{ticket_number}}) for £{{fine_amount}}. " +
	"{{reason}}. I believe the penalty was issued unfairly and should be cancelled."

// DescribeIncident composes a case description from the record through the
// same slot engine the appeal letter uses.
func DescribeIncident(rec *appealcase.Record) string {
	return substitute(incidentTemplate, slotValues(rec))
}

// substitute replaces every {{name}} slot in tmpl with its value. Slots with
// no known value render as the placeholder.
func substitute(tmpl string, slots map[string]string) string {
	var b strings.Builder
	for {
		open := strings.Index(tmpl, "{{")
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.Index(tmpl[open:], "}}")
		if end < 0 {
			b.WriteString(tmpl)
			break
		}
		end += open
		b.WriteString(tmpl[:open])
		name := tmpl[open+2 : end]
		if v, ok := slots[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(unknownSlot)
		}
		tmpl = tmpl[end+2:]
	}
	return b.String()
}
