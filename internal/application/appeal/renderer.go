package appeal

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// TextRenderer produces plain-text documents from generated letter and
// form bodies. It exists so archiving works out of the box; deployments
// that need typeset output swap in their own DocumentRenderer.
type TextRenderer struct{}

// NewTextRenderer returns the default renderer.
func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

var kindHeadings = map[string]string{
	"appeal_letter": "PENALTY APPEAL LETTER",
	"te7":           "FORM TE7",
	"te9":           "FORM TE9",
}

// Render frames the body with a heading and generation date.
func (r *TextRenderer) Render(_ context.Context, formType string, fields map[string]string) ([]byte, error) {
	body, ok := fields["body"]
	if !ok || strings.TrimSpace(body) == "" {
		return nil, apperrors.New(apperrors.ErrCodeRenderFailed, "document body is empty").WithDetail("kind=" + formType)
	}

	heading, ok := kindHeadings[formType]
	if !ok {
		heading = strings.ToUpper(formType)
	}

	var sb strings.Builder
	sb.WriteString(heading)
	sb.WriteString("\nGenerated ")
	sb.WriteString(time.Now().UTC().Format("2 January 2006"))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}
