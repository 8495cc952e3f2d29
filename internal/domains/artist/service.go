package artist

import (
	"context"

	"github.com/google/uuid"
)

// Service is the Artist business-logic surface.
type Service interface {
	// Create validates and inserts a new artist.
	// Errors: validation.Errors aggregate on invalid input.
	Create(ctx context.Context, req *CreateArtistRequest) (*Artist, error)

	// GetOrCreate returns an existing artist matching the candidate's
	// primary or alternate slug, creating it when none matches.
	GetOrCreate(ctx context.Context, req *CreateArtistRequest) (*Artist, error)

	// GetByID returns ErrArtistNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Artist, error)

	// GetByURLName resolves a primary slug; falls back to alternate-name
	// slugs before giving up with ErrArtistNotFound.
	GetByURLName(ctx context.Context, urlName string) (*Artist, error)

	// GetAll returns every artist sorted by name.
	GetAll(ctx context.Context) ([]Artist, error)

	// Delete removes the artist and its alternate names.
	Delete(ctx context.Context, id uuid.UUID) error
}
