package letter

import (
	"fmt"
	"strings"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

var formTitles = map[appealcase.FormType]string{
	appealcase.FormTE7: "TE7 - Application to file a statutory declaration out of time",
	appealcase.FormTE9: "TE9 - Witness statement (unpaid penalty charge)",
}

// GenerateForm synthesizes the text of a completed TE7 or TE9 form from the
// collected form answers and the case record. All checklist fields, the
// ground selection and the statement must be present.
func GenerateForm(rec *appealcase.Record, form *appealcase.FormData) (string, error) {
	title, ok := formTitles[form.Type]
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeRenderFailed, "unknown form type").
			WithDetail("type=" + string(form.Type))
	}
	if missing := form.NextField(); missing != "" {
		return "", apperrors.New(apperrors.ErrCodeRenderFailed, "form field missing").
			WithDetail("field=" + missing)
	}
	ground, err := formGround(form)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(form.Statement) == "" {
		return "", apperrors.New(apperrors.ErrCodeRenderFailed, "form statement missing")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Penalty charge number: %s\n", orUnknown(rec.TicketNumber))
	fmt.Fprintf(&b, "Vehicle registration:  %s\n", orUnknown(rec.VehicleReg))
	fmt.Fprintf(&b, "Date of contravention: %s\n\n", orUnknown(rec.IssueDate))

	b.WriteString("Respondent details\n")
	fmt.Fprintf(&b, "  Full name: %s\n", form.Fields["full_name"])
	fmt.Fprintf(&b, "  Address:   %s\n", form.Fields["address"])
	fmt.Fprintf(&b, "  Phone:     %s\n", form.Fields["phone"])
	fmt.Fprintf(&b, "  Email:     %s\n\n", form.Fields["email"])

	fmt.Fprintf(&b, "Ground relied upon: %s\n\n", ground)
	b.WriteString("Statement of facts\n")
	b.WriteString(form.Statement)
	b.WriteString("\n\nI believe that the facts stated in this form are true.\n")
	return b.String(), nil
}

func formGround(form *appealcase.FormData) (string, error) {
	list := appealcase.TE7Grounds
	if form.Type == appealcase.FormTE9 {
		list = appealcase.TE9Grounds
	}
	if form.GroundIndex < 1 || form.GroundIndex > len(list) {
		return "", apperrors.New(apperrors.ErrCodeRenderFailed, "form ground not selected").
			WithDetail(fmt.Sprintf("index=%d", form.GroundIndex))
	}
	return list[form.GroundIndex-1], nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknownSlot
	}
	return s
}
