package appeal

import (
	"context"
	"sync"

	"github.com/roadpenalty/appealcore/internal/conversation"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// MemStore is a process-local SessionStore.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]*conversation.Session
}

// NewMemStore returns an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]*conversation.Session)}
}

func (m *MemStore) Get(_ context.Context, id string) (*conversation.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "session not found").WithDetail("id=" + id)
	}
	return s, nil
}

func (m *MemStore) Save(_ context.Context, s *conversation.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
