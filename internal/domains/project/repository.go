package project

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the Project data access surface.
type Repository interface {
	// Create inserts the project inside one transaction that also locks
	// and checks the target ebook, then marks it in progress.
	// Errors: ebook.ErrEbookNotFound, ErrEbookNotPlaceholder,
	// ErrProjectExists.
	Create(ctx context.Context, p *Project) (*Project, error)

	// Update saves all mutable fields. When the status transitions to
	// abandoned the ebook's in-progress flag is cleared in the same
	// transaction (the post-save hook).
	Update(ctx context.Context, p *Project) (*Project, error)

	// GetByID returns ErrProjectNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// GetAllByStatus returns projects in a status, most recently
	// started first.
	GetAllByStatus(ctx context.Context, status Status) ([]Project, error)

	// GetAllByManagerUserID returns a manager's projects.
	GetAllByManagerUserID(ctx context.Context, userID uuid.UUID) ([]Project, error)

	// GetAllByReviewerUserID returns a reviewer's projects.
	GetAllByReviewerUserID(ctx context.Context, userID uuid.UUID) ([]Project, error)
}
