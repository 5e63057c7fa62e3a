package session

import (
	"context"
	"errors"

	"vinworld/models"
)

var (
	// ErrNotFound covers both a missing session and a bad token; callers
	// cannot tell them apart.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned once for an expired session; the store entry
	// and the remembered username are already cleared by then.
	ErrExpired = errors.New("session expired")
)

// Store persists sessions and the login screen's remembered-username
// convenience value. The memory store backs plain logins (gone on restart,
// like sessionStorage); postgres and mongo back "remember me".
type Store interface {
	Save(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error

	// The remembered username lives independently of any session's
	// lifecycle, except that logout clears it.
	SaveRememberedUsername(ctx context.Context, username string) error
	RememberedUsername(ctx context.Context) (string, error)
	DeleteRememberedUsername(ctx context.Context) error
}
