// Package prediction turns a case record's free text and facts into a ranked
// set of appeal grounds, a success-probability estimate and supporting
// narrative. Scoring is deterministic: the only state is an immutable weight
// table snapshot, replaced wholesale by calibration.
package prediction

import (
	"sync/atomic"

	"github.com/roadpenalty/appealcore/internal/domain/grounds"
)

// TimingStep maps an upper bound on days since the incident to a timing
// score. Steps are evaluated in order; the first bound >= days wins.
type TimingStep struct {
	MaxDays int
	Score   float64
}

// WeightTable is one immutable snapshot of every scoring constant. Snapshots
// are never mutated after publication; calibration builds a modified copy
// with a higher version.
type WeightTable struct {
	Version int

	// Ground base scores by assessed strength, plus the statutory uplift.
	BaseScores     map[grounds.Strength]float64
	StatutoryBonus float64
	NoGroundsFloor float64

	// Matcher constants.
	CatalogSeedWeight float64
	MatchThreshold    float64

	// TopGrounds caps how many headline grounds a result carries.
	TopGrounds int

	// Probability composition factors.
	EvidenceFactor float64
	TimingFactor   float64
	AttemptStep    float64
	AttemptFloor   float64
	ProbabilityMin float64
	ProbabilityMax float64

	TimingSteps   []TimingStep
	DefaultTiming float64

	// EvidenceQuality scores a declared evidence string by the strongest
	// table entry it contains.
	EvidenceQuality        map[string]float64
	DefaultEvidenceQuality float64

	// AuthorityMultipliers adjusts probability for authorities with
	// reported acceptance rates away from the norm. Lookup is
	// case-insensitive substring; absent authorities score 1.0.
	AuthorityMultipliers map[string]float64

	// Keywords at or above this weight count as high-confidence hits in
	// the confidence formula.
	HighConfidenceKeyword float64
}

// DefaultTable returns the version-1 snapshot shipped with the engine.
func DefaultTable() *WeightTable {
	return &WeightTable{
		Version: 1,

		BaseScores: map[grounds.Strength]float64{
			grounds.High:   0.85,
			grounds.Medium: 0.55,
			grounds.Low:    0.25,
		},
		StatutoryBonus: 0.10,
		NoGroundsFloor: 0.15,

		CatalogSeedWeight: 0.6,
		MatchThreshold:    0.5,
		TopGrounds:        3,

		EvidenceFactor: 0.75,
		TimingFactor:   0.65,
		AttemptStep:    0.15,
		AttemptFloor:   0.3,
		ProbabilityMin: 0.02,
		ProbabilityMax: 0.98,

		TimingSteps: []TimingStep{
			{MaxDays: 14, Score: 1.0},
			{MaxDays: 28, Score: 0.9},
			{MaxDays: 56, Score: 0.7},
			{MaxDays: 84, Score: 0.4},
			{MaxDays: 365, Score: 0.2},
		},
		DefaultTiming: 0.05,

		EvidenceQuality: map[string]float64{
			"video":           0.95,
			"cctv":            0.9,
			"photograph":      0.9,
			"photo":           0.85,
			"police":          0.95,
			"crime reference": 0.95,
			"medical":         0.9,
			"hospital":        0.9,
			"blue badge":      0.9,
			"receipt":         0.85,
			"bank statement":  0.85,
			"permit":          0.85,
			"witness":         0.85,
			"ticket":          0.8,
			"invoice":         0.8,
			"breakdown":       0.8,
			"delivery note":   0.8,
			"postmark":        0.75,
			"letter":          0.7,
			"correspondence":  0.7,
			"statement":       0.7,
			"order":           0.7,
			"notice":          0.65,
			"email":           0.65,
			"map":             0.6,
			"record":          0.6,
			"document":        0.55,
		},
		DefaultEvidenceQuality: 0.5,

		AuthorityMultipliers: map[string]float64{
			"tfl":            1.05,
			"transport for":  1.05,
			"westminster":    0.9,
			"kensington":     0.9,
			"lambeth":        1.0,
			"manchester":     1.05,
			"birmingham":     1.0,
			"parkingeye":     0.85,
			"euro car parks": 0.9,
		},
		HighConfidenceKeyword: 0.85,
	}
}

// timing returns the step score for days elapsed since the incident.
// Negative days indicate an unparseable date and score as the worst step.
func (t *WeightTable) timing(days int) float64 {
	if days < 0 {
		return t.DefaultTiming
	}
	for _, s := range t.TimingSteps {
		if days <= s.MaxDays {
			return s.Score
		}
	}
	return t.DefaultTiming
}

// baseScore returns the ground's base contribution to legal strength.
func (t *WeightTable) baseScore(d grounds.Definition) float64 {
	s := t.BaseScores[d.Strength]
	if d.Category == grounds.Statutory {
		s += t.StatutoryBonus
	}
	return s
}

// attemptPenalty discounts probability for repeated appeal attempts.
func (t *WeightTable) attemptPenalty(priorAttempts int) float64 {
	if priorAttempts <= 0 {
		return 1.0
	}
	p := 1.0 - t.AttemptStep*float64(priorAttempts)
	if p < t.AttemptFloor {
		return t.AttemptFloor
	}
	return p
}

// clone deep-copies the table so calibration can adjust a snapshot without
// touching the one in live use.
func (t *WeightTable) clone() *WeightTable {
	c := *t
	c.BaseScores = make(map[grounds.Strength]float64, len(t.BaseScores))
	for k, v := range t.BaseScores {
		c.BaseScores[k] = v
	}
	c.TimingSteps = make([]TimingStep, len(t.TimingSteps))
	copy(c.TimingSteps, t.TimingSteps)
	c.EvidenceQuality = make(map[string]float64, len(t.EvidenceQuality))
	for k, v := range t.EvidenceQuality {
		c.EvidenceQuality[k] = v
	}
	c.AuthorityMultipliers = make(map[string]float64, len(t.AuthorityMultipliers))
	for k, v := range t.AuthorityMultipliers {
		c.AuthorityMultipliers[k] = v
	}
	return &c
}

// Store publishes the active weight table. Readers call Current on every
// prediction; calibration swaps in a new snapshot atomically so a reader
// never observes a half-updated table.
type Store struct {
	current atomic.Pointer[WeightTable]
}

// NewStore returns a store seeded with the given snapshot, or the default
// table when nil.
func NewStore(t *WeightTable) *Store {
	if t == nil {
		t = DefaultTable()
	}
	s := &Store{}
	s.current.Store(t)
	return s
}

// Current returns the active snapshot. The caller must treat it as
// read-only.
func (s *Store) Current() *WeightTable {
	return s.current.Load()
}

// Swap publishes a new snapshot and returns the one it replaced.
func (s *Store) Swap(t *WeightTable) *WeightTable {
	return s.current.Swap(t)
}
