package service

import (
	"context"
	"errors"
	"fmt"

	"pressroom-backend/internal/domains/session"
	"pressroom-backend/internal/domains/user"
	"pressroom-backend/internal/shared/middleware"
	"pressroom-backend/pkg/logger"
)

type sessionService struct {
	repo  session.Repository
	users user.Repository
}

func NewSessionService(repo session.Repository, users user.Repository) session.Service {
	return &sessionService{
		repo:  repo,
		users: users,
	}
}

func (s *sessionService) Create(ctx context.Context, req session.LoginRequest) (*session.Session, *user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	u, err := s.users.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Collapsed so callers cannot learn which identifiers exist.
			return nil, nil, session.ErrInvalidLogin
		}
		return nil, nil, fmt.Errorf("resolve login identifier: %w", err)
	}

	if !u.CheckPassword(req.Password) {
		return nil, nil, session.ErrInvalidLogin
	}

	// Reuse the user's existing session so repeated logins keep the same
	// session id and creation time.
	existing, err := s.repo.GetByUserID(ctx, u.ID)
	if err == nil {
		return existing, u, nil
	}
	if !errors.Is(err, session.ErrSessionNotFound) {
		return nil, nil, fmt.Errorf("look up existing session: %w", err)
	}

	created, err := s.repo.Create(ctx, session.NewSession(u.ID))
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	logger.Info("session created", map[string]interface{}{
		"user_id": u.ID.String(),
	})

	return created, u, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, session.ErrSessionNotFound
	}

	return s.repo.GetByID(ctx, id)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	return s.repo.Delete(ctx, id)
}

func (s *sessionService) ResolveCookie(ctx context.Context, sessionID string) (*middleware.CurrentUser, error) {
	_, u, err := s.repo.GetWithUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &middleware.CurrentUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}
