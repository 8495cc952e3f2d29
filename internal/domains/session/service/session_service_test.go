package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pressroom-backend/internal/domains/session"
	"pressroom-backend/internal/domains/user"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == identifier || u.Name == identifier {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakeSessionRepo struct {
	sessions map[string]*session.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*session.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *session.Session) (*session.Session, error) {
	stored := *s
	stored.CreatedAt = time.Now().UTC()
	f.sessions[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*session.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, session.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*session.Session, error) {
	for _, s := range f.sessions {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, session.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetWithUser(_ context.Context, id string) (*session.Session, *user.User, error) {
	return nil, nil, session.ErrSessionNotFound
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func newTestUser(t *testing.T, name, email, password string) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
}

func TestSessionCreate(t *testing.T) {
	ctx := context.Background()

	u := newTestUser(t, "alice", "alice@example.com", "correct horse")
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{u.ID: u}}

	t.Run("login by email", func(t *testing.T) {
		svc := NewSessionService(newFakeSessionRepo(), users)

		s, got, err := svc.Create(ctx, session.LoginRequest{
			Identifier: "alice@example.com",
			Password:   "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, u.ID, s.UserID)
		assert.Equal(t, u.ID, got.ID)
		assert.NotEmpty(t, s.ID)
	})

	t.Run("login by name", func(t *testing.T) {
		svc := NewSessionService(newFakeSessionRepo(), users)

		s, _, err := svc.Create(ctx, session.LoginRequest{
			Identifier: "alice",
			Password:   "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, u.ID, s.UserID)
	})

	t.Run("repeated login reuses the existing session", func(t *testing.T) {
		repo := newFakeSessionRepo()
		svc := NewSessionService(repo, users)

		req := session.LoginRequest{Identifier: "alice@example.com", Password: "correct horse"}

		first, _, err := svc.Create(ctx, req)
		require.NoError(t, err)

		second, _, err := svc.Create(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.Len(t, repo.sessions, 1)
	})

	t.Run("wrong password is masked", func(t *testing.T) {
		svc := NewSessionService(newFakeSessionRepo(), users)

		_, _, err := svc.Create(ctx, session.LoginRequest{
			Identifier: "alice@example.com",
			Password:   "wrong",
		})
		assert.ErrorIs(t, err, session.ErrInvalidLogin)
	})

	t.Run("unknown identifier is masked identically", func(t *testing.T) {
		svc := NewSessionService(newFakeSessionRepo(), users)

		_, _, err := svc.Create(ctx, session.LoginRequest{
			Identifier: "nobody@example.com",
			Password:   "correct horse",
		})
		assert.ErrorIs(t, err, session.ErrInvalidLogin)
	})

	t.Run("blank request fails validation", func(t *testing.T) {
		svc := NewSessionService(newFakeSessionRepo(), users)

		_, _, err := svc.Create(ctx, session.LoginRequest{})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, session.ErrInvalidLogin)
	})
}

func TestSessionDelete(t *testing.T) {
	ctx := context.Background()

	u := newTestUser(t, "bob", "bob@example.com", "hunter2")
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{u.ID: u}}

	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, users)

	s, _, err := svc.Create(ctx, session.LoginRequest{Identifier: "bob", Password: "hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, s.ID))
	assert.Empty(t, repo.sessions)

	// Deleting a gone session is a no-op.
	assert.NoError(t, svc.Delete(ctx, s.ID))
	assert.NoError(t, svc.Delete(ctx, ""))
}
