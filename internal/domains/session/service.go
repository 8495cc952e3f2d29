package session

import (
	"context"

	"pressroom-backend/internal/domains/user"
	"pressroom-backend/internal/shared/middleware"
)

// Service is the Session business-logic surface.
type Service interface {
	// Create authenticates the identifier/password pair and returns the
	// user's session, reusing an existing session row when one exists.
	// Any authentication failure is collapsed into ErrInvalidLogin.
	Create(ctx context.Context, req LoginRequest) (*Session, *user.User, error)

	// Get returns ErrSessionNotFound when the id is empty or unknown.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete ends a session (logout).
	Delete(ctx context.Context, id string) error

	// ResolveCookie maps a session cookie value to the owning user, for
	// the auth middleware.
	ResolveCookie(ctx context.Context, sessionID string) (*middleware.CurrentUser, error)
}
