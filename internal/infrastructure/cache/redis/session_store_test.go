package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/internal/conversation"
	"github.com/roadpenalty/appealcore/internal/domain/appealcase"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

type fakeCommands struct {
	store map[string][]byte
	ttls  map[string]time.Duration
	fail  error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{store: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCommands) Get(_ context.Context, key string) *redis.StringCmd {
	if f.fail != nil {
		return redis.NewStringResult("", f.fail)
	}
	raw, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(raw), nil)
}

func (f *fakeCommands) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.fail != nil {
		return redis.NewStatusResult("", f.fail)
	}
	f.store[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCommands) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.fail != nil {
		return redis.NewIntResult(0, f.fail)
	}
	for _, k := range keys {
		delete(f.store, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	rdb := newFakeCommands()
	store := NewSessionStore(rdb, "appeal:session:", 30*time.Minute, nil)
	ctx := context.Background()

	sess := conversation.NewSession("abc-123")
	require.NoError(t, sess.Record.SetTicketNumber("WK12345678"))
	require.NoError(t, store.Save(ctx, sess))

	assert.Contains(t, rdb.store, "appeal:session:abc-123")
	assert.Equal(t, 30*time.Minute, rdb.ttls["appeal:session:abc-123"])

	got, err := store.Get(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Stage, got.Stage)
	assert.Equal(t, "WK12345678", got.Record.TicketNumber)
}

func TestSessionStoreRehydratedFormSelection(t *testing.T) {
	rdb := newFakeCommands()
	store := NewSessionStore(rdb, "appeal:session:", time.Hour, nil)
	ctx := context.Background()

	// A session saved before form selection carries no form data; the
	// rehydrated record must still accept a selection.
	sess := conversation.NewSession("tec-1")
	tt, ok := appealcase.TicketTypeByKey("charge_certificate")
	require.True(t, ok)
	require.NoError(t, sess.Record.SetTicketType(tt))
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "tec-1")
	require.NoError(t, err)

	require.NotPanics(t, func() { got.Record.SelectForms(appealcase.FormTE7) })
	require.Contains(t, got.Record.Forms, appealcase.FormTE7)
	assert.Equal(t, []appealcase.FormType{appealcase.FormTE7}, got.Record.SelectedForms)
}

func TestSessionStoreMiss(t *testing.T) {
	store := NewSessionStore(newFakeCommands(), "appeal:session:", time.Hour, nil)

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestSessionStoreCorruptSnapshot(t *testing.T) {
	rdb := newFakeCommands()
	rdb.store["appeal:session:bad"] = []byte("{not json")
	store := NewSessionStore(rdb, "appeal:session:", time.Hour, nil)

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCaseSnapshotLoad))
}

func TestSessionStoreBackendError(t *testing.T) {
	rdb := newFakeCommands()
	rdb.fail = errors.New("connection reset")
	store := NewSessionStore(rdb, "appeal:session:", time.Hour, nil)
	ctx := context.Background()

	_, err := store.Get(ctx, "x")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCacheError))
	assert.True(t, apperrors.IsCode(store.Save(ctx, conversation.NewSession("x")), apperrors.ErrCodeCacheError))
	assert.True(t, apperrors.IsCode(store.Delete(ctx, "x"), apperrors.ErrCodeCacheError))
}

func TestSessionStoreDelete(t *testing.T) {
	rdb := newFakeCommands()
	store := NewSessionStore(rdb, "s:", time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, conversation.NewSession("gone")))
	require.NoError(t, store.Delete(ctx, "gone"))
	_, err := store.Get(ctx, "gone")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestSnapshotIsPlainJSON(t *testing.T) {
	rdb := newFakeCommands()
	store := NewSessionStore(rdb, "s:", time.Hour, nil)

	sess := conversation.NewSession("j")
	require.NoError(t, store.Save(context.Background(), sess))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rdb.store["s:j"], &decoded))
	assert.Equal(t, "j", decoded["id"])
	assert.Equal(t, string(conversation.InitialStage), decoded["stage"])
}
