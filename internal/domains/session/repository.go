package session

import (
	"context"

	"github.com/google/uuid"

	"pressroom-backend/internal/domains/user"
)

// Repository is the Session data access surface.
type Repository interface {
	// Create inserts a new session row and returns the stored row.
	Create(ctx context.Context, s *Session) (*Session, error)

	// GetByID returns ErrSessionNotFound when absent.
	GetByID(ctx context.Context, id string) (*Session, error)

	// GetByUserID returns the user's session. A unique index on user_id
	// guarantees at most one row.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Session, error)

	// GetWithUser joins the session to its owning user.
	// Returns ErrSessionNotFound when the session or user is gone.
	GetWithUser(ctx context.Context, id string) (*Session, *user.User, error)

	// Delete removes a session row; absent rows are not an error.
	Delete(ctx context.Context, id string) error
}
