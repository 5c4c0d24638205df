package prediction

import (
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// Outcome pairs a historical scoring input with how the appeal actually
// ended.
type Outcome struct {
	Input   Input
	Success bool
}

// GroundRate is the observed success rate of appeals whose top-matched
// ground was this one.
type GroundRate struct {
	Successes int     `json:"successes"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// Report summarizes one calibration run.
type Report struct {
	Samples     int                   `json:"samples"`
	Accuracy    float64               `json:"accuracy"`
	Precision   float64               `json:"precision"`
	Recall      float64               `json:"recall"`
	F1          float64               `json:"f1"`
	GroundRates map[string]GroundRate `json:"ground_rates"`
	Adjusted    bool                  `json:"adjusted"`
	OldVersion  int                   `json:"old_version"`
	NewVersion  int                   `json:"new_version"`
}

// Calibrator replays historical outcomes through the engine and, when
// measured accuracy falls below the threshold, publishes a nudged weight
// snapshot. The snapshot in live use is never mutated; readers see either
// the old table or the new one, complete.
type Calibrator struct {
	engine *Engine

	// AccuracyThreshold is the accuracy below which weights are adjusted.
	AccuracyThreshold float64
	// NudgeFactor multiplies the adjusted constants, > 1.
	NudgeFactor float64
	// MinSamples gates adjustment; metrics are still reported below it.
	MinSamples int
	// DecisionThreshold converts a probability into a predicted outcome.
	DecisionThreshold float64
}

// NewCalibrator returns a calibrator with the given tuning.
func NewCalibrator(engine *Engine, accuracyThreshold, nudgeFactor float64, minSamples int) *Calibrator {
	return &Calibrator{
		engine:            engine,
		AccuracyThreshold: accuracyThreshold,
		NudgeFactor:       nudgeFactor,
		MinSamples:        minSamples,
		DecisionThreshold: 0.5,
	}
}

// Run scores every outcome against the current snapshot, reports the
// classification metrics and per-ground success rates, and swaps in an
// upward-nudged snapshot when accuracy is below threshold with enough
// samples.
func (c *Calibrator) Run(outcomes []Outcome) (Report, error) {
	if len(outcomes) == 0 {
		return Report{}, apperrors.New(apperrors.ErrCodeOutcomeHistoryEmpty, "no outcomes to calibrate against")
	}

	table := c.engine.Weights().Current()
	report := Report{
		Samples:     len(outcomes),
		GroundRates: make(map[string]GroundRate),
		OldVersion:  table.Version,
		NewVersion:  table.Version,
	}

	var tp, tn, fp, fn int
	tallies := make(map[string]*GroundRate)
	for _, o := range outcomes {
		res := c.engine.predict(o.Input, table, nil)
		predicted := res.SuccessProbability >= c.DecisionThreshold
		switch {
		case predicted && o.Success:
			tp++
		case predicted && !o.Success:
			fp++
		case !predicted && o.Success:
			fn++
		default:
			tn++
		}
		if len(res.Grounds) > 0 {
			id := res.Grounds[0].ID
			t := tallies[id]
			if t == nil {
				t = &GroundRate{}
				tallies[id] = t
			}
			t.Total++
			if o.Success {
				t.Successes++
			}
		}
	}

	report.Accuracy = float64(tp+tn) / float64(len(outcomes))
	report.Precision = ratio(tp, tp+fp)
	report.Recall = ratio(tp, tp+fn)
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}
	for id, t := range tallies {
		t.Rate = float64(t.Successes) / float64(t.Total)
		report.GroundRates[id] = *t
	}

	if len(outcomes) >= c.MinSamples && report.Accuracy < c.AccuracyThreshold {
		next := c.nudged(table)
		c.engine.Weights().Swap(next)
		report.Adjusted = true
		report.NewVersion = next.Version
	}
	return report, nil
}

// nudged builds the next snapshot with the global strength constants scaled
// up. Per-ground weights are never touched; only the shared base scores and
// the evidence factor move, within fixed caps.
func (c *Calibrator) nudged(table *WeightTable) *WeightTable {
	next := table.clone()
	next.Version = table.Version + 1
	for k, v := range next.BaseScores {
		next.BaseScores[k] = capped(v*c.NudgeFactor, 0.95)
	}
	next.StatutoryBonus = capped(next.StatutoryBonus*c.NudgeFactor, 0.15)
	next.EvidenceFactor = capped(next.EvidenceFactor*c.NudgeFactor, 0.9)
	return next
}

func capped(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
