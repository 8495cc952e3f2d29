package session

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// LoginRequest - POST /v1/sessions
// Identifier is an email address or an exact account name.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required.Error("identifier is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// SessionResponse carries the session plus the authenticated user. Token
// is a bearer token for API clients that cannot hold the cookie; it is
// only set on login.
type SessionResponse struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	URL       string    `json:"url"`
	UserName  string    `json:"user_name"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) ToResponse(userName string) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		URL:       s.URL(),
		UserName:  userName,
		CreatedAt: s.CreatedAt,
	}
}
