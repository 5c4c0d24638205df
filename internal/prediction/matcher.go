package prediction

import (
	"sort"
	"strings"

	"github.com/roadpenalty/appealcore/internal/domain/grounds"
)

// keywordRule maps a literal phrase in the user's text onto one or more
// grounds at a fixed weight. Rules are hand-tuned against reported appeal
// narratives; a phrase may support several grounds at different weights.
type keywordRule struct {
	Phrase  string
	Grounds []string
	Weight  float64
}

var keywordRules = []keywordRule{
	{"faded", []string{"signage-invalid"}, 0.9},
	{"obscured", []string{"signage-invalid"}, 0.9},
	{"no sign", []string{"signage-invalid"}, 0.85},
	{"sign missing", []string{"signage-invalid"}, 0.9},
	{"signage", []string{"signage-invalid"}, 0.7},
	{"markings worn", []string{"signage-invalid"}, 0.85},
	{"contradictory", []string{"signage-contradictory"}, 0.85},
	{"signs conflict", []string{"signage-contradictory"}, 0.85},
	{"confusing sign", []string{"signage-contradictory"}, 0.8},

	{"blue badge", []string{"blue-badge"}, 0.95},
	{"disabled", []string{"blue-badge"}, 0.8},

	{"stolen", []string{"vehicle-stolen"}, 0.9},
	{"without my consent", []string{"vehicle-stolen"}, 0.85},
	{"crime reference", []string{"vehicle-stolen"}, 0.85},

	{"broke down", []string{"vehicle-breakdown"}, 0.85},
	{"breakdown", []string{"vehicle-breakdown"}, 0.85},
	{"flat tyre", []string{"vehicle-breakdown"}, 0.8},
	{"would not start", []string{"vehicle-breakdown"}, 0.8},

	{"medical emergency", []string{"medical-emergency"}, 0.9},
	{"heart attack", []string{"medical-emergency"}, 0.9},
	{"taken ill", []string{"medical-emergency"}, 0.85},
	{"hospital", []string{"medical-emergency"}, 0.75},
	{"ambulance", []string{"emergency-services", "medical-emergency"}, 0.8},
	{"fire engine", []string{"emergency-services"}, 0.8},
	{"police closed", []string{"emergency-services"}, 0.8},

	{"never received", []string{"notice-not-served"}, 0.85},
	{"did not receive", []string{"notice-not-served"}, 0.85},
	{"didn't receive", []string{"notice-not-served"}, 0.85},
	{"bailiff", []string{"notice-not-served"}, 0.8},
	{"old address", []string{"notice-not-served"}, 0.75},

	{"loading", []string{"loading-unloading"}, 0.8},
	{"unloading", []string{"loading-unloading"}, 0.8},
	{"delivering", []string{"loading-unloading"}, 0.75},
	{"delivery", []string{"loading-unloading"}, 0.7},

	{"valid ticket", []string{"valid-ticket-displayed"}, 0.85},
	{"ticket displayed", []string{"valid-ticket-displayed"}, 0.8},
	{"paid for parking", []string{"valid-ticket-displayed"}, 0.85},
	{"pay and display", []string{"valid-ticket-displayed"}, 0.7},
	{"blew off", []string{"valid-ticket-displayed"}, 0.8},

	{"out of order", []string{"machine-fault"}, 0.85},
	{"machine", []string{"machine-fault"}, 0.7},
	{"rejected my card", []string{"machine-fault"}, 0.8},
	{"app would not", []string{"machine-fault"}, 0.75},

	{"permit", []string{"permit-valid"}, 0.8},
	{"resident", []string{"permit-valid"}, 0.7},

	{"sold the car", []string{"not-the-keeper"}, 0.9},
	{"sold the vehicle", []string{"not-the-keeper"}, 0.9},
	{"not my car", []string{"not-the-keeper"}, 0.8},
	{"new keeper", []string{"not-the-keeper"}, 0.85},

	{"already paid", []string{"already-paid"}, 0.9},
	{"paid the fine", []string{"already-paid"}, 0.85},

	{"grace period", []string{"grace-period"}, 0.85},
	{"minutes over", []string{"short-overstay", "grace-period"}, 0.75},
	{"few minutes", []string{"short-overstay"}, 0.7},

	{"wrong date", []string{"notice-defective"}, 0.8},
	{"wrong registration", []string{"notice-defective"}, 0.8},
	{"incorrect details", []string{"notice-defective"}, 0.75},

	{"arrived late", []string{"late-service"}, 0.7},
	{"weeks later", []string{"late-service"}, 0.75},
	{"out of time", []string{"late-service"}, 0.75},

	{"no evidence", []string{"no-evidence-of-contravention"}, 0.75},
	{"photos do not show", []string{"no-evidence-of-contravention"}, 0.8},

	{"never replied", []string{"representations-ignored"}, 0.8},
	{"no response", []string{"representations-ignored"}, 0.75},
	{"heard nothing", []string{"representations-ignored"}, 0.75},

	{"camera car", []string{"cctv-unauthorised"}, 0.75},
	{"by post from cctv", []string{"cctv-unauthorised"}, 0.8},

	{"funeral", []string{"bereavement"}, 0.8},
	{"bereavement", []string{"bereavement"}, 0.85},
	{"passed away", []string{"bereavement"}, 0.8},

	{"first time", []string{"first-contravention"}, 0.7},
	{"first offence", []string{"first-contravention"}, 0.75},
	{"clean record", []string{"first-contravention"}, 0.75},

	{"hardship", []string{"financial-hardship"}, 0.75},
	{"cannot afford", []string{"financial-hardship"}, 0.75},

	{"roadworks", []string{"road-works-diversion"}, 0.8},
	{"road works", []string{"road-works-diversion"}, 0.8},
	{"diversion", []string{"road-works-diversion"}, 0.8},

	{"warden said", []string{"misleading-advice"}, 0.8},
	{"warden told", []string{"misleading-advice"}, 0.8},
	{"directed by police", []string{"misleading-advice"}, 0.8},
	{"website said", []string{"misleading-advice"}, 0.75},

	{"private parking", []string{"keeper-liability-not-established"}, 0.7},
	{"parking charge notice", []string{"keeper-liability-not-established"}, 0.7},
	{"disproportionate", []string{"charge-disproportionate"}, 0.75},
}

// Match is one matched ground with its confidence weight.
type Match struct {
	Definition grounds.Definition
	Weight     float64
}

// MatchResult is the ranked output of the matcher.
type MatchResult struct {
	Grounds []Match
	// HighConfidenceHits counts keyword rules at or above the table's
	// high-confidence threshold that fired on the input. Feeds the
	// confidence score, not the ranking.
	HighConfidenceHits int
}

// Matcher maps free text to a weighted subset of the grounds catalog.
type Matcher struct {
	catalog *grounds.Catalog
}

// NewMatcher returns a matcher over the given catalog.
func NewMatcher(catalog *grounds.Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match scores the description plus circumstance phrases against the
// catalog. Candidates are seeded by catalog search at the seed weight, then
// keyword rules upsert the maximum weight observed per ground. Grounds below
// the table's match threshold are dropped; the rest are sorted by descending
// weight with catalog declaration order as the tie-break.
func (m *Matcher) Match(table *WeightTable, description string, circumstances []string) MatchResult {
	var b strings.Builder
	b.WriteString(description)
	for _, c := range circumstances {
		b.WriteString(" ")
		b.WriteString(c)
	}
	input := strings.ToLower(b.String())

	weights := make(map[string]float64)
	for _, d := range m.catalog.Search(input) {
		weights[d.ID] = table.CatalogSeedWeight
	}

	var highHits int
	for _, rule := range keywordRules {
		if !strings.Contains(input, rule.Phrase) {
			continue
		}
		if rule.Weight >= table.HighConfidenceKeyword {
			highHits++
		}
		for _, id := range rule.Grounds {
			if !m.catalog.Has(id) {
				continue
			}
			if rule.Weight > weights[id] {
				weights[id] = rule.Weight
			}
		}
	}

	matches := make([]Match, 0, len(weights))
	for id, w := range weights {
		if w < table.MatchThreshold {
			continue
		}
		d, err := m.catalog.ByID(id)
		if err != nil {
			continue
		}
		matches = append(matches, Match{Definition: d, Weight: w})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Weight != matches[j].Weight {
			return matches[i].Weight > matches[j].Weight
		}
		return m.catalog.Order(matches[i].Definition.ID) < m.catalog.Order(matches[j].Definition.ID)
	})

	return MatchResult{Grounds: matches, HighConfidenceHits: highHits}
}
