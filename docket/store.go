package docket

import "sync"

// FormStore holds the single open form per session. Drafts are in-memory
// only; an abandoned session's draft goes with it.
type FormStore struct {
	mu    sync.RWMutex
	forms map[string]*Form
}

func NewFormStore() *FormStore {
	return &FormStore{forms: make(map[string]*Form)}
}

// Open replaces any existing draft for the session with a fresh form.
func (s *FormStore) Open(sessionID string, cfg FormConfig) *Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := NewForm(cfg)
	s.forms[sessionID] = f
	return f
}

func (s *FormStore) Get(sessionID string) (*Form, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[sessionID]
	return f, ok
}

func (s *FormStore) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, sessionID)
}
