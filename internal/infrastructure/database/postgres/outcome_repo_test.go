package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/internal/prediction"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

type fakeRows struct {
	data [][]any
	idx  int
	err  error
}

func (f *fakeRows) Close()                                       {}
func (f *fakeRows) Err() error                                   { return f.err }
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.data) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *[]string:
			*p = row[i].([]string)
		case *int:
			*p = row[i].(int)
		case *float64:
			*p = row[i].(float64)
		case *bool:
			*p = row[i].(bool)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeDB struct {
	rows     *fakeRows
	queryErr error
	execErr  error

	gotSQL  string
	gotArgs []any
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.gotSQL, f.gotArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.gotSQL, f.gotArgs = sql, args
	return pgconn.CommandTag{}, f.execErr
}

func TestListOutcomes(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{
		{"faded sign on arrival", []string{"Parking ticket (PCN)"}, "High Street", 10,
			[]string{"photographs"}, 0, "Westminster", 65.0, true},
		{"overstayed by five minutes", []string{}, "", 40,
			[]string{}, 1, "", 100.0, false},
	}}}
	repo := NewOutcomeRepo(db, nil)

	outcomes, err := repo.ListOutcomes(context.Background(), 500)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, []any{500}, db.gotArgs)
	assert.Equal(t, "faded sign on arrival", outcomes[0].Input.Description)
	assert.Equal(t, []string{"photographs"}, outcomes[0].Input.Evidence)
	assert.True(t, outcomes[0].Success)
	assert.Equal(t, 40, outcomes[1].Input.DaysSince)
	assert.Equal(t, 1, outcomes[1].Input.PriorAttempts)
	assert.False(t, outcomes[1].Success)
}

func TestListOutcomesQueryError(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("connection refused")}
	repo := NewOutcomeRepo(db, nil)

	_, err := repo.ListOutcomes(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDatabaseError))
}

func TestListOutcomesRowsError(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{err: errors.New("broken pipe")}}
	repo := NewOutcomeRepo(db, nil)

	_, err := repo.ListOutcomes(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDatabaseError))
}

func TestRecordOutcome(t *testing.T) {
	db := &fakeDB{}
	repo := NewOutcomeRepo(db, nil)

	o := prediction.Outcome{
		Input: prediction.Input{
			Description:   "machine would not accept payment",
			Circumstances: []string{"Pay and display machine was broken"},
			Location:      "Church Road car park",
			DaysSince:     7,
			Evidence:      []string{"photograph of machine"},
			Authority:     "Lambeth",
			FineAmount:    80,
		},
		Success: true,
	}
	require.NoError(t, repo.RecordOutcome(context.Background(), o))
	require.Len(t, db.gotArgs, 9)
	assert.Equal(t, "machine would not accept payment", db.gotArgs[0])
	assert.Equal(t, true, db.gotArgs[8])
}

func TestRecordOutcomeError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("deadlock detected")}
	repo := NewOutcomeRepo(db, nil)

	err := repo.RecordOutcome(context.Background(), prediction.Outcome{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDatabaseError))
}

func TestMigrateURLScheme(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/appeals?sslmode=disable",
		migrateURL("postgres://u:p@db:5432/appeals?sslmode=disable"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}
