package artist

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the Artist data access surface.
type Repository interface {
	// Create inserts the artist and its alternate names in one
	// transaction and returns the stored row.
	Create(ctx context.Context, a *Artist) (*Artist, error)

	// GetByID returns ErrArtistNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Artist, error)

	// GetByURLName looks an artist up by its primary slug.
	GetByURLName(ctx context.Context, urlName string) (*Artist, error)

	// GetByAlternateURLName looks an artist up by an alternate-name slug.
	GetByAlternateURLName(ctx context.Context, urlName string) (*Artist, error)

	// GetAll returns every artist sorted by name.
	GetAll(ctx context.Context) ([]Artist, error)

	// GetOrCreate returns the artist matching the candidate's primary or
	// any alternate slug, creating the candidate when none matches. The
	// check-then-create runs under an advisory lock keyed on the slug so
	// concurrent requests for the same name cannot create duplicates.
	GetOrCreate(ctx context.Context, candidate *Artist) (*Artist, error)

	// Delete removes the artist row and all of its alternate-name rows in
	// one transaction. Returns ErrArtistNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
