package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pressroom-backend/internal/domains/session"
	"pressroom-backend/internal/domains/user"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) session.Repository {
	return &postgresRepository{pool: pool}
}

func scanSession(row pgx.Row) (*session.Session, error) {
	var s session.Session
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) Create(ctx context.Context, s *session.Session) (*session.Session, error) {
	query := `
        INSERT INTO sessions (session_id, user_id)
        VALUES ($1, $2)
        RETURNING session_id, user_id, created_at
    `

	created, err := scanSession(r.pool.QueryRow(ctx, query, s.ID, s.UserID))
	if err != nil {
		// A concurrent login can win the unique race on user_id; the
		// existing row is the session to reuse.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return r.GetByUserID(ctx, s.UserID)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	query := `SELECT session_id, user_id, created_at FROM sessions WHERE session_id = $1`

	return scanSession(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*session.Session, error) {
	// No ORDER BY: the unique index on user_id means at most one row can
	// exist, so any match is the match.
	query := `SELECT session_id, user_id, created_at FROM sessions WHERE user_id = $1 LIMIT 1`

	return scanSession(r.pool.QueryRow(ctx, query, userID))
}

func (r *postgresRepository) GetWithUser(ctx context.Context, id string) (*session.Session, *user.User, error) {
	query := `
        SELECT s.session_id, s.user_id, s.created_at,
               u.id, u.name, u.email, u.password_hash, u.created_at, u.updated_at
        FROM sessions s
        INNER JOIN users u ON u.id = s.user_id
        WHERE s.session_id = $1
    `

	var s session.Session
	var u user.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.CreatedAt,
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, session.ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("failed to scan session with user: %w", err)
	}

	return &s, &u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
