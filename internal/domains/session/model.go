package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a durable login session. The ID doubles as the cookie value,
// so it is a random UUID string rather than a database sequence.
type Session struct {
	ID        string    `json:"id" db:"session_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// URL is the site-relative address of the session resource.
func (s *Session) URL() string {
	return "/sessions/" + s.ID
}

// NewSession mints a session for a user with a fresh random identifier.
func NewSession(userID uuid.UUID) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
	}
}
