package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vinworld/models"
)

// Manager mints and verifies sessions on top of two stores: the ephemeral
// one for plain logins and the persistent one for "remember me". Token
// secrets are bcrypt-hashed at rest; the client holds "<id>.<secret>".
type Manager struct {
	Ephemeral  Store
	Persistent Store
	Now        func() time.Time
}

func NewManager(ephemeral, persistent Store) *Manager {
	return &Manager{Ephemeral: ephemeral, Persistent: persistent, Now: time.Now}
}

// Begin creates a session for a freshly authenticated profile and returns
// it together with the opaque credential the client must present back.
func (m *Manager) Begin(ctx context.Context, user models.UserProfile, remember bool) (*models.Session, string, error) {
	now := m.Now()
	secret := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	s := &models.Session{
		ID:        fmt.Sprintf("session_%d_%s", now.UnixMilli(), uuid.NewString()[:9]),
		User:      user,
		Token:     string(hash),
		LoggedIn:  true,
		LoginTime: now,
		ExpiresAt: now.Add(models.SessionTTL),
		Remember:  remember,
	}

	if err := m.store(remember).Save(ctx, s); err != nil {
		return nil, "", err
	}
	return s, s.ID + "." + secret, nil
}

// Load resolves a client credential to a live session. An expired session
// is logged out on the spot: the entry and the remembered username are
// cleared, exactly like the load-time check on the screens. Load is also
// invoked before every submission to close the stale-session gap.
func (m *Manager) Load(ctx context.Context, credential string) (*models.Session, error) {
	id, secret, ok := strings.Cut(credential, ".")
	if !ok || id == "" || secret == "" {
		return nil, ErrNotFound
	}

	s, store, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.Token), []byte(secret)); err != nil {
		return nil, ErrNotFound
	}
	if s.Expired(m.Now()) {
		_ = store.Delete(ctx, id)
		_ = store.DeleteRememberedUsername(ctx)
		return nil, ErrExpired
	}
	return s, nil
}

// End logs the session out everywhere and clears the remembered username.
func (m *Manager) End(ctx context.Context, credential string) error {
	id, _, _ := strings.Cut(credential, ".")
	if id == "" {
		return nil
	}
	_ = m.Ephemeral.Delete(ctx, id)
	_ = m.Ephemeral.DeleteRememberedUsername(ctx)
	if m.Persistent != nil {
		_ = m.Persistent.Delete(ctx, id)
		_ = m.Persistent.DeleteRememberedUsername(ctx)
	}
	return nil
}

// RememberUsername stores or clears the login screen convenience value.
func (m *Manager) RememberUsername(ctx context.Context, username string, remember bool) error {
	store := m.store(true)
	if !remember {
		return store.DeleteRememberedUsername(ctx)
	}
	return store.SaveRememberedUsername(ctx, username)
}

func (m *Manager) RememberedUsername(ctx context.Context) (string, error) {
	return m.store(true).RememberedUsername(ctx)
}

func (m *Manager) store(remember bool) Store {
	if remember && m.Persistent != nil {
		return m.Persistent
	}
	return m.Ephemeral
}

func (m *Manager) lookup(ctx context.Context, id string) (*models.Session, Store, error) {
	s, err := m.Ephemeral.Get(ctx, id)
	if err != nil && err != ErrNotFound {
		return nil, nil, err
	}
	if s != nil {
		return s, m.Ephemeral, nil
	}
	if m.Persistent != nil {
		s, err = m.Persistent.Get(ctx, id)
		if err != nil && err != ErrNotFound {
			return nil, nil, err
		}
		if s != nil {
			return s, m.Persistent, nil
		}
	}
	return nil, nil, ErrNotFound
}
