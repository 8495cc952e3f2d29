package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pressroom-backend/internal/domains/ebook"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ebook.Repository {
	return &postgresRepository{pool: pool}
}

const ebookColumns = `id, title, is_placeholder, in_progress, created_at, updated_at`

func scanEbook(row pgx.Row) (*ebook.Ebook, error) {
	var e ebook.Ebook
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.IsPlaceholder,
		&e.InProgress,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ebook.ErrEbookNotFound
		}
		return nil, fmt.Errorf("failed to scan ebook: %w", err)
	}
	return &e, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*ebook.Ebook, error) {
	query := `SELECT ` + ebookColumns + ` FROM ebooks WHERE id = $1`

	return scanEbook(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*ebook.Ebook, error) {
	// FOR UPDATE so concurrent project creation against the same ebook
	// serializes on the row.
	query := `SELECT ` + ebookColumns + ` FROM ebooks WHERE id = $1 FOR UPDATE`

	return scanEbook(tx.QueryRow(ctx, query, id))
}

func (r *postgresRepository) SetInProgressTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, inProgress bool) error {
	query := `UPDATE ebooks SET in_progress = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := tx.Exec(ctx, query, inProgress, id)
	if err != nil {
		return fmt.Errorf("failed to update ebook in-progress flag: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ebook.ErrEbookNotFound
	}

	return nil
}
