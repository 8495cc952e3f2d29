package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the User data access surface.
type Repository interface {
	// GetByID returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail returns ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByIdentifier resolves a login identifier: an email address or an
	// exact account name. Returns ErrUserNotFound when absent.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)

	// ExistsByID is a lightweight existence check for reference validation.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
