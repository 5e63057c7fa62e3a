package session

import (
	"context"
	"sync"

	"vinworld/models"
)

// MemoryStore keeps sessions for the lifetime of the process. It backs
// logins without "remember me" and everything in tests.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]models.Session
	remembered string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Save(ctx context.Context, sess *models.Session) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := sess
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) SaveRememberedUsername(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = username
	return nil
}

func (s *MemoryStore) RememberedUsername(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remembered, nil
}

func (s *MemoryStore) DeleteRememberedUsername(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = ""
	return nil
}
