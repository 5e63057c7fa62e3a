package session

import (
	"context"
	"database/sql"
	"time"

	"vinworld/models"
)

// PostgresStore persists remember-me sessions so they survive restarts.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (r *PostgresStore) Save(ctx context.Context, s *models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_session(
			id, token_hash, emp_code, emp_name, role_name,
			location_id, location_name, logged_in, login_time, expires_at, remember
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT(id) DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			logged_in  = EXCLUDED.logged_in,
			expires_at = EXCLUDED.expires_at
	`, s.ID, s.Token, s.User.EmpCode, s.User.EmpName, s.User.RoleName,
		s.User.LocationID, s.User.LocationName, s.LoggedIn, s.LoginTime, s.ExpiresAt, s.Remember)
	return err
}

func (r *PostgresStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	var loginTime, expiresAt time.Time
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, token_hash, emp_code, emp_name, role_name,
		       location_id, location_name, logged_in, login_time, expires_at, remember
		FROM user_session WHERE id = $1
	`, id).Scan(&s.ID, &s.Token, &s.User.EmpCode, &s.User.EmpName, &s.User.RoleName,
		&s.User.LocationID, &s.User.LocationName, &s.LoggedIn, &loginTime, &expiresAt, &s.Remember)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.LoginTime = loginTime
	s.ExpiresAt = expiresAt
	return &s, nil
}

func (r *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM user_session WHERE id = $1`, id)
	return err
}

// The remembered username is a single-row preference, same pattern as any
// other app-level setting.

func (r *PostgresStore) SaveRememberedUsername(ctx context.Context, username string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_preference(key, value) VALUES('remembered_username', $1)
		ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value
	`, username)
	return err
}

func (r *PostgresStore) RememberedUsername(ctx context.Context) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM app_preference WHERE key = 'remembered_username'`).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *PostgresStore) DeleteRememberedUsername(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM app_preference WHERE key = 'remembered_username'`)
	return err
}
