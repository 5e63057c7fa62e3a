package models

import "time"

// SessionTTL is how long a login stays valid. Expiry is checked when the
// session is loaded and again before any submission.
const SessionTTL = 8 * time.Hour

// UserProfile is the identity returned by login.php. Every component reads
// it for LocationId / EmpCode stamping; nothing in the docket workflow
// mutates it.
type UserProfile struct {
	EmpCode      string `json:"EmpCode" db:"emp_code" bson:"emp_code"`
	EmpName      string `json:"EmpName" db:"emp_name" bson:"emp_name"`
	RoleName     string `json:"RoleName" db:"role_name" bson:"role_name"`
	LocationID   int64  `json:"LocationId" db:"location_id" bson:"location_id"`
	LocationName string `json:"LocationName" db:"location_name" bson:"location_name"`
}

// Session is the authenticated state for one user.
type Session struct {
	ID        string      `json:"sessionId" db:"id" bson:"_id"`
	User      UserProfile `json:"user" db:"-" bson:"user"`
	Token     string      `json:"-" db:"token_hash" bson:"token_hash"`
	LoggedIn  bool        `json:"loggedIn" db:"logged_in" bson:"logged_in"`
	LoginTime time.Time   `json:"loginTime" db:"login_time" bson:"login_time"`
	ExpiresAt time.Time   `json:"expiresAt" db:"expires_at" bson:"expires_at"`
	Remember  bool        `json:"-" db:"remember" bson:"remember"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
