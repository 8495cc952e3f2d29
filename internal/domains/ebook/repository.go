package ebook

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository is the Ebook data access surface. The Tx variants exist so the
// project domain can read and flag ebooks inside its own transactions.
type Repository interface {
	// GetByID returns ErrEbookNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Ebook, error)

	// GetByIDTx is GetByID inside an existing transaction, locking the row.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*Ebook, error)

	// SetInProgressTx flips the in-progress flag inside a transaction.
	SetInProgressTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, inProgress bool) error
}
