package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pressroom-backend/internal/domains/artist"
)

type artistService struct {
	repo artist.Repository
}

func NewArtistService(repo artist.Repository) artist.Service {
	return &artistService{repo: repo}
}

func (s *artistService) Create(ctx context.Context, req *artist.CreateArtistRequest) (*artist.Artist, error) {
	a := req.ToEntity()

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, a)
}

func (s *artistService) GetOrCreate(ctx context.Context, req *artist.CreateArtistRequest) (*artist.Artist, error) {
	candidate := req.ToEntity()

	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	return s.repo.GetOrCreate(ctx, candidate)
}

func (s *artistService) GetByID(ctx context.Context, id uuid.UUID) (*artist.Artist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *artistService) GetByURLName(ctx context.Context, urlName string) (*artist.Artist, error) {
	a, err := s.repo.GetByURLName(ctx, urlName)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, artist.ErrArtistNotFound) {
		return nil, err
	}

	return s.repo.GetByAlternateURLName(ctx, urlName)
}

func (s *artistService) GetAll(ctx context.Context) ([]artist.Artist, error) {
	return s.repo.GetAll(ctx)
}

func (s *artistService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
