// Package grounds holds the immutable catalog of legal and mitigating bases
// for contesting a UK traffic penalty, together with lookup and search
// operations over it.  The catalog is read-only at runtime; declaration order
// is significant and used as the tie-break wherever grounds rank equally.
package grounds

// Category classifies the legal nature of a ground.
type Category string

const (
	Statutory  Category = "statutory"  // a ground the authority must accept if made out
	Mitigating Category = "mitigating" // discretionary compassionate grounds
	Procedural Category = "procedural" // defects in how the penalty was issued or served
)

// Strength is the catalog author's assessment of how well a ground performs
// at adjudication.
type Strength string

const (
	High   Strength = "high"
	Medium Strength = "medium"
	Low    Strength = "low"
)

// Template is the 4-part letter skeleton attached to every ground.  Slots use
// the {{name}} form and are uniform across all grounds; the letter generator
// substitutes case fields with no per-ground code paths.
type Template struct {
	Opening         string
	LegalArgument   string
	EvidenceSection string
	Conclusion      string
}

// Definition is one immutable catalog record.
type Definition struct {
	ID               string
	Title            string
	Description      string
	Category         Category
	Strength         Strength
	RequiredEvidence []string
	Scenarios        []string
	LegalBasis       string
	Template         Template
}
