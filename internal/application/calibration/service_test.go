package calibration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

type memRepo struct {
	outcomes []prediction.Outcome
	err      error
}

func (m *memRepo) ListOutcomes(_ context.Context, limit int) ([]prediction.Outcome, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.outcomes) > limit {
		return m.outcomes[:limit], nil
	}
	return m.outcomes, nil
}

func (m *memRepo) RecordOutcome(_ context.Context, o prediction.Outcome) error {
	m.outcomes = append(m.outcomes, o)
	return nil
}

type capturingPublisher struct {
	events []string
}

func (c *capturingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	c.events = append(c.events, eventType)
	return nil
}

func newTestService(repo OutcomeRepository, threshold float64) (*Service, *prediction.Store, *capturingPublisher) {
	store := prediction.NewStore(nil)
	engine := prediction.NewEngine(grounds.Default(), store)
	cal := prediction.NewCalibrator(engine, threshold, 1.05, 1)
	pub := &capturingPublisher{}
	return NewService(repo, cal, store, pub, nil, nil), store, pub
}

func TestRunOnce(t *testing.T) {
	repo := &memRepo{outcomes: []prediction.Outcome{
		{Input: prediction.Input{Description: "the sign was faded and unreadable", DaysSince: 5, Evidence: []string{"photograph of signage"}}, Success: true},
		{Input: prediction.Input{Description: "nothing in particular happened", DaysSince: 300}, Success: false},
	}}
	svc, store, pub := newTestService(repo, 0.5)

	report, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Samples)
	assert.InDelta(t, 1.0, report.Accuracy, 1e-9)
	assert.False(t, report.Adjusted)
	assert.Equal(t, 1, store.Current().Version)
	assert.Contains(t, pub.events, EventCalibrationCompleted)
}

func TestRunOnceAdjusts(t *testing.T) {
	repo := &memRepo{outcomes: []prediction.Outcome{
		{Input: prediction.Input{Description: "the sign was faded and unreadable", DaysSince: 5, Evidence: []string{"photograph of signage"}}, Success: false},
	}}
	svc, store, _ := newTestService(repo, 0.99)

	report, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Adjusted)
	assert.Equal(t, 2, store.Current().Version)
}

func TestRunOnceEmptyHistory(t *testing.T) {
	svc, _, _ := newTestService(&memRepo{}, 0.5)
	_, err := svc.RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOutcomeHistoryEmpty))
}

func TestRunOnceRepoFailure(t *testing.T) {
	svc, _, _ := newTestService(&memRepo{err: apperrors.Internal("db down")}, 0.5)
	_, err := svc.RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCalibrationFailed))
}

func TestRecordOutcome(t *testing.T) {
	repo := &memRepo{}
	svc, _, _ := newTestService(repo, 0.5)
	err := svc.RecordOutcome(context.Background(), prediction.Outcome{Success: true})
	require.NoError(t, err)
	assert.Len(t, repo.outcomes, 1)
}
