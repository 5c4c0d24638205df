package prediction

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/letter"
)

// Input is everything the scoring engine looks at. It is a plain value so
// scoring stays a pure function; identical inputs always produce identical
// results.
type Input struct {
	Description   string
	Circumstances []string
	Location      string
	DaysSince     int // days since the incident, -1 when unknown
	Evidence      []string
	PriorAttempts int
	Authority     string
	FineAmount    float64
}

// InputFromRecord derives the scoring input from an accumulated case record.
func InputFromRecord(rec *appealcase.Record) Input {
	var circumstances []string
	if rec.Reason != "" {
		circumstances = append(circumstances, rec.Reason)
	}
	circumstances = append(circumstances, rec.Evidence...)
	return Input{
		Description:   rec.Description,
		Circumstances: circumstances,
		Location:      rec.Location,
		DaysSince:     appealcase.DaysSince(rec.IssueDate, time.Now().UTC()),
		Evidence:      rec.Evidence,
		PriorAttempts: rec.PriorAttempts,
		Authority:     rec.Authority,
		FineAmount:    rec.FineAmount,
	}
}

// RankedGround is one matched ground in the result, strongest first.
type RankedGround struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Category grounds.Category `json:"category"`
	Strength grounds.Strength `json:"strength"`
	Weight   float64          `json:"weight"`
}

// EvidenceGap is a required evidence item the user has not yet declared.
type EvidenceGap struct {
	GroundID     string `json:"ground_id"`
	Item         string `json:"item"`
	HighPriority bool   `json:"high_priority"`
}

// Result is the full advisory output of one prediction. It is derived on
// every call and never persisted as authority.
type Result struct {
	SuccessProbability float64        `json:"success_probability"`
	Confidence         float64        `json:"confidence"`
	WeightVersion      int            `json:"weight_version"`
	Grounds            []RankedGround `json:"grounds"`
	KeyFactors         []string       `json:"key_factors"`
	EvidenceGaps       []EvidenceGap  `json:"evidence_gaps"`
	RiskFactors        []string       `json:"risk_factors"`
	Strategy           string         `json:"strategy"`
	Letter             letter.Letter  `json:"letter"`
}

// Engine combines the matcher and the active weight table into predictions.
type Engine struct {
	catalog *grounds.Catalog
	matcher *Matcher
	weights *Store
}

// NewEngine returns an engine over the catalog and weight store.
func NewEngine(catalog *grounds.Catalog, weights *Store) *Engine {
	return &Engine{
		catalog: catalog,
		matcher: NewMatcher(catalog),
		weights: weights,
	}
}

// Weights exposes the engine's weight store for calibration.
func (e *Engine) Weights() *Store { return e.weights }

// Predict scores the input against the current weight snapshot.
func (e *Engine) Predict(in Input) Result {
	return e.predict(in, e.weights.Current(), nil)
}

// PredictRecord scores a case record and includes a draft appeal letter
// assembled from the top-ranked grounds.
func (e *Engine) PredictRecord(rec *appealcase.Record) Result {
	return e.predict(InputFromRecord(rec), e.weights.Current(), rec)
}

func (e *Engine) predict(in Input, table *WeightTable, rec *appealcase.Record) Result {
	matched := e.matcher.Match(table, in.Description, in.Circumstances)

	legal := legalStrength(table, matched.Grounds)
	quality, gaps, requiredCount, matchedCount := evidenceQuality(table, matched.Grounds, in.Evidence)
	timing := table.timing(in.DaysSince)
	attempt := table.attemptPenalty(in.PriorAttempts)
	location := authorityMultiplier(table, in.Authority)

	// The timing multiplier blends to neutral at the best step so a fresh
	// incident never inflates a weak case, while stale cases are damped.
	probability := legal *
		(1 + table.EvidenceFactor*quality) *
		(1 - table.TimingFactor + table.TimingFactor*timing) *
		attempt * location
	probability = clamp(probability, table.ProbabilityMin, table.ProbabilityMax)

	confidence := confidenceScore(table, in, matched)

	ranked, rankedDefs := topGrounds(matched.Grounds, table.TopGrounds)

	res := Result{
		SuccessProbability: probability,
		Confidence:         confidence,
		WeightVersion:      table.Version,
		Grounds:            ranked,
		KeyFactors:         keyFactors(in, matched.Grounds, quality, location),
		EvidenceGaps:       gaps,
		RiskFactors:        riskFactors(in, matched.Grounds, requiredCount, matchedCount),
		Strategy:           strategy(probability, ranked),
	}
	if rec != nil {
		res.Letter = letter.Generate(rec, rankedDefs)
	}
	return res
}

// legalStrength blends the strongest matched ground with the overall field.
func legalStrength(table *WeightTable, matched []Match) float64 {
	if len(matched) == 0 {
		return table.NoGroundsFloor
	}
	var strongest, sum float64
	for _, m := range matched {
		b := table.baseScore(m.Definition)
		sum += b
		if b > strongest {
			strongest = b
		}
	}
	mean := sum / float64(len(matched))
	breadth := 0.1 * float64(len(matched))
	if breadth > 1 {
		breadth = 1
	}
	return 0.6*strongest + 0.3*mean + 0.1*breadth
}

// evidenceQuality scores declared evidence against the requirements of every
// matched ground. Matching is substring containment in either direction,
// which the matcher inherits from reported behavior; it can over-match short
// generic words like "ticket". Returns the quality ratio, the outstanding
// gaps, and the required/matched item counts.
func evidenceQuality(table *WeightTable, matched []Match, declared []string) (float64, []EvidenceGap, int, int) {
	lowered := make([]string, len(declared))
	for i, d := range declared {
		lowered[i] = strings.ToLower(strings.TrimSpace(d))
	}

	var (
		gaps          []EvidenceGap
		sum           float64
		requiredCount int
		matchedCount  int
	)
	for _, m := range matched {
		missingForGround := 0
		for _, item := range m.Definition.RequiredEvidence {
			requiredCount++
			want := strings.ToLower(item)
			best := 0.0
			for _, have := range lowered {
				if have == "" {
					continue
				}
				if strings.Contains(have, want) || strings.Contains(want, have) {
					if q := declaredQuality(table, have); q > best {
						best = q
					}
				}
			}
			if best > 0 {
				sum += best
				matchedCount++
				continue
			}
			gaps = append(gaps, EvidenceGap{
				GroundID:     m.Definition.ID,
				Item:         item,
				HighPriority: missingForGround == 0,
			})
			missingForGround++
		}
	}
	if requiredCount == 0 {
		return 0, gaps, 0, 0
	}
	return sum / float64(requiredCount), gaps, requiredCount, matchedCount
}

// declaredQuality scores one declared evidence string by the strongest
// quality-table entry it contains.
func declaredQuality(table *WeightTable, declared string) float64 {
	best := table.DefaultEvidenceQuality
	for key, q := range table.EvidenceQuality {
		if strings.Contains(declared, key) && q > best {
			best = q
		}
	}
	return best
}

func authorityMultiplier(table *WeightTable, authority string) float64 {
	a := strings.ToLower(strings.TrimSpace(authority))
	if a == "" {
		return 1.0
	}
	keys := make([]string, 0, len(table.AuthorityMultipliers))
	for key := range table.AuthorityMultipliers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(a, key) {
			return table.AuthorityMultipliers[key]
		}
	}
	return 1.0
}

func confidenceScore(table *WeightTable, in Input, matched MatchResult) float64 {
	c := 0.3
	descLen := len(in.Description)
	if descLen > 150 {
		c += 0.25
	}
	if descLen > 300 {
		c += 0.15
	}
	if len(in.Circumstances) > 2 {
		c += 0.15
	}
	if len(in.Circumstances) > 4 {
		c += 0.10
	}
	for _, m := range matched.Grounds {
		if m.Definition.Strength == grounds.High {
			c += 0.2
		}
	}
	if len(in.Evidence) > 2 {
		c += 0.2
	}
	if len(in.Evidence) > 4 {
		c += 0.15
	}
	c += 0.05 * float64(matched.HighConfidenceHits)
	return clamp(c, 0, 1)
}

// topGrounds keeps the strongest high- or medium-strength grounds for
// presentation, at most limit of them. Low-strength matches still feed the
// score but are not shown as headline grounds.
func topGrounds(matched []Match, limit int) ([]RankedGround, []grounds.Definition) {
	if limit <= 0 {
		limit = 3
	}
	var (
		ranked []RankedGround
		defs   []grounds.Definition
	)
	for _, m := range matched {
		if m.Definition.Strength == grounds.Low {
			continue
		}
		ranked = append(ranked, RankedGround{
			ID:       m.Definition.ID,
			Title:    m.Definition.Title,
			Category: m.Definition.Category,
			Strength: m.Definition.Strength,
			Weight:   m.Weight,
		})
		defs = append(defs, m.Definition)
		if len(ranked) == limit {
			break
		}
	}
	return ranked, defs
}

func keyFactors(in Input, matched []Match, quality, location float64) []string {
	var factors []string
	if len(matched) > 0 {
		top := matched[0].Definition
		factors = append(factors, fmt.Sprintf("Strongest ground: %s (%s strength, %s)",
			top.Title, top.Strength, top.Category))
		factors = append(factors, fmt.Sprintf("%d legal ground(s) matched your circumstances", len(matched)))
	}
	if quality > 0 {
		factors = append(factors, fmt.Sprintf("Evidence covers %.0f%% of what the matched grounds require", quality*100))
	}
	if in.DaysSince >= 0 && in.DaysSince <= 14 {
		factors = append(factors, "Acting promptly: within 14 days of the incident")
	}
	if in.PriorAttempts == 0 {
		factors = append(factors, "No previous appeal attempts on record")
	}
	if location > 1.0 {
		factors = append(factors, "This authority accepts appeals at an above-average rate")
	}
	return factors
}

func riskFactors(in Input, matched []Match, requiredCount, matchedCount int) []string {
	var risks []string
	if len(matched) == 0 {
		risks = append(risks, "No recognised legal grounds matched your description")
	}
	if requiredCount > 0 && matchedCount*2 < requiredCount {
		risks = append(risks, "Less than half of the required evidence has been provided")
	}
	switch {
	case in.DaysSince > 56:
		risks = append(risks, "More than eight weeks have passed since the incident")
	case in.DaysSince > 28:
		risks = append(risks, "More than 28 days have passed since the incident")
	}
	switch {
	case in.PriorAttempts > 2:
		risks = append(risks, "Multiple previous appeal attempts have been rejected")
	case in.PriorAttempts > 0:
		risks = append(risks, "A previous appeal attempt was rejected")
	}
	switch {
	case len(in.Description) < 20:
		risks = append(risks, "The description is too brief to assess reliably")
	case len(in.Description) < 100:
		risks = append(risks, "A short description limits how much can be matched")
	}
	if in.FineAmount > 150 {
		risks = append(risks, "The amount suggests the charge has already escalated")
	}
	return risks
}

func strategy(probability float64, ranked []RankedGround) string {
	switch {
	case len(ranked) == 0:
		return "No strong legal ground was identified. Consider a mitigation-based appeal describing your circumstances in more detail, and gather any evidence you hold before deciding whether to pay the discounted amount."
	case probability >= 0.7:
		return fmt.Sprintf("You have a strong case. Lead with \"%s\", attach all listed evidence, and submit a formal challenge before the discount deadline.", ranked[0].Title)
	case probability >= 0.4:
		return fmt.Sprintf("Your case is arguable. Build the appeal around \"%s\" and close the evidence gaps listed before submitting.", ranked[0].Title)
	default:
		return fmt.Sprintf("Your case faces significant hurdles. \"%s\" is the best available ground, but consider whether paying the discounted amount is the safer option.", ranked[0].Title)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
