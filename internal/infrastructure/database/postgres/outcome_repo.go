package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// querier is the subset of pgxpool.Pool the repository needs. Tests
// substitute a fake.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	listOutcomesSQL = `
		SELECT description, circumstances, location, days_since,
		       evidence, prior_attempts, authority, fine_amount, success
		FROM appeal_outcomes
		ORDER BY recorded_at DESC
		LIMIT $1`

	insertOutcomeSQL = `
		INSERT INTO appeal_outcomes
			(description, circumstances, location, days_since,
			 evidence, prior_attempts, authority, fine_amount, success)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

// OutcomeRepo persists decided appeal outcomes for the calibration batch.
type OutcomeRepo struct {
	db     querier
	logger logging.Logger
}

// NewOutcomeRepo wires the repository to a pgx pool.
func NewOutcomeRepo(db querier, logger logging.Logger) *OutcomeRepo {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &OutcomeRepo{db: db, logger: logger.Named("outcome_repo")}
}

// ListOutcomes returns up to limit outcomes, most recent first.
func (r *OutcomeRepo) ListOutcomes(ctx context.Context, limit int) ([]prediction.Outcome, error) {
	rows, err := r.db.Query(ctx, listOutcomesSQL, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "list appeal outcomes")
	}
	defer rows.Close()

	var outcomes []prediction.Outcome
	for rows.Next() {
		var o prediction.Outcome
		if err := rows.Scan(
			&o.Input.Description,
			&o.Input.Circumstances,
			&o.Input.Location,
			&o.Input.DaysSince,
			&o.Input.Evidence,
			&o.Input.PriorAttempts,
			&o.Input.Authority,
			&o.Input.FineAmount,
			&o.Success,
		); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "scan appeal outcome")
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "iterate appeal outcomes")
	}
	return outcomes, nil
}

// RecordOutcome stores one decided appeal.
func (r *OutcomeRepo) RecordOutcome(ctx context.Context, o prediction.Outcome) error {
	_, err := r.db.Exec(ctx, insertOutcomeSQL,
		o.Input.Description,
		o.Input.Circumstances,
		o.Input.Location,
		o.Input.DaysSince,
		o.Input.Evidence,
		o.Input.PriorAttempts,
		o.Input.Authority,
		o.Input.FineAmount,
		o.Success,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "insert appeal outcome")
	}
	r.logger.Debug("recorded appeal outcome",
		logging.Bool("success", o.Success),
		logging.String("authority", o.Input.Authority),
	)
	return nil
}
