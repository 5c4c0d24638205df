// Package calibration runs the offline weight-calibration batch: replay
// recorded appeal outcomes through the scoring engine, report the metrics,
// and let the calibrator publish an adjusted weight snapshot when accuracy
// drifts below threshold.
package calibration

import (
	"context"
	"time"

	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/metrics"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// EventCalibrationCompleted is published after every run.
const EventCalibrationCompleted = "appeal.calibration_completed"

// OutcomeRepository supplies the historical (input, outcome) pairs and
// records new ones as authorities decide appeals.
type OutcomeRepository interface {
	ListOutcomes(ctx context.Context, limit int) ([]prediction.Outcome, error)
	RecordOutcome(ctx context.Context, o prediction.Outcome) error
}

// EventPublisher matches the appeal package's publisher shape.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Service orchestrates calibration runs over stored outcomes.
type Service struct {
	repo       OutcomeRepository
	calibrator *prediction.Calibrator
	weights    *prediction.Store
	events     EventPublisher
	metrics    *metrics.Metrics
	logger     logging.Logger

	// BatchLimit bounds how much history one run replays.
	BatchLimit int
}

// NewService wires the calibration service. events and m may be nil.
func NewService(repo OutcomeRepository, calibrator *prediction.Calibrator, weights *prediction.Store, events EventPublisher, m *metrics.Metrics, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		repo:       repo,
		calibrator: calibrator,
		weights:    weights,
		events:     events,
		metrics:    m,
		logger:     logger.Named("calibration"),
		BatchLimit: 5000,
	}
}

// RecordOutcome stores one decided appeal for future calibration runs.
func (s *Service) RecordOutcome(ctx context.Context, o prediction.Outcome) error {
	return s.repo.RecordOutcome(ctx, o)
}

// RunOnce performs a single calibration pass over the stored history.
func (s *Service) RunOnce(ctx context.Context) (prediction.Report, error) {
	outcomes, err := s.repo.ListOutcomes(ctx, s.BatchLimit)
	if err != nil {
		return prediction.Report{}, apperrors.Wrap(err, apperrors.ErrCodeCalibrationFailed, "loading outcome history")
	}
	report, err := s.calibrator.Run(outcomes)
	if err != nil {
		return prediction.Report{}, err
	}

	if m := s.metrics; m != nil {
		adjusted := "false"
		if report.Adjusted {
			adjusted = "true"
		}
		m.CalibrationRunsTotal.WithLabelValues(adjusted).Inc()
		m.CalibrationAccuracy.Set(report.Accuracy)
		m.WeightSnapshotVersion.Set(float64(s.weights.Current().Version))
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, EventCalibrationCompleted, report); err != nil {
			s.logger.Warn("event publish failed", logging.Err(err))
		}
	}
	s.logger.Info("calibration run complete",
		logging.Int("samples", report.Samples),
		logging.Float64("accuracy", report.Accuracy),
		logging.Bool("adjusted", report.Adjusted),
		logging.Int("weight_version", report.NewVersion))
	return report, nil
}

// RunPeriodically blocks, running a calibration pass on every tick until the
// context is cancelled. Used by the worker entry point.
func (s *Service) RunPeriodically(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				if apperrors.IsCode(err, apperrors.ErrCodeOutcomeHistoryEmpty) {
					s.logger.Debug("no outcome history yet, skipping run")
					continue
				}
				s.logger.Error("calibration run failed", logging.Err(err))
			}
		}
	}
}
