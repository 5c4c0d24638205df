package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roadpenalty/appealcore/internal/conversation"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// commands is the subset of redis.Client the store needs. Tests
// substitute a fake.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore persists conversation sessions as JSON snapshots with a
// sliding TTL. Every Save rearms the expiry, so a session dies only after
// the user has been silent for the full TTL.
type SessionStore struct {
	rdb    commands
	prefix string
	ttl    time.Duration
	logger logging.Logger
}

// NewSessionStore wires a snapshot store over a redis client. A zero ttl
// means snapshots never expire.
func NewSessionStore(rdb commands, prefix string, ttl time.Duration, logger logging.Logger) *SessionStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SessionStore{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger.Named("session_store")}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

// Get loads and decodes a session snapshot.
func (s *SessionStore) Get(ctx context.Context, id string) (*conversation.Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "session not found").WithDetail("id=" + id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "load session snapshot")
	}

	var sess conversation.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCaseSnapshotLoad, "decode session snapshot")
	}
	return &sess, nil
}

// Save writes the session snapshot and rearms its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *conversation.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "encode session snapshot")
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "store session snapshot")
	}
	s.logger.Debug("saved session snapshot",
		logging.String("session_id", sess.ID),
		logging.String("stage", string(sess.Stage)),
	)
	return nil
}

// Delete removes a session snapshot. Missing keys are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "delete session snapshot")
	}
	return nil
}
