package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pressroom-backend/internal/domains/ebook"
	"pressroom-backend/internal/domains/project"
	"pressroom-backend/pkg/database"
)

// postgresRepository implements project.Repository. It composes the ebook
// repository so project transactions can lock and flag ebook rows.
type postgresRepository struct {
	pool   *pgxpool.Pool
	ebooks ebook.Repository
}

func NewPostgresRepository(pool *pgxpool.Pool, ebooks ebook.Repository) project.Repository {
	return &postgresRepository{
		pool:   pool,
		ebooks: ebooks,
	}
}

const projectColumns = `
    id, ebook_id, status, producer_name, producer_email,
    discussion_url, vcs_url, started, ended,
    manager_user_id, reviewer_user_id,
    last_commit_timestamp, last_discussion_timestamp,
    created_at, updated_at
`

func scanProject(row pgx.Row) (*project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID,
		&p.EbookID,
		&p.Status,
		&p.ProducerName,
		&p.ProducerEmail,
		&p.DiscussionURL,
		&p.VCSURL,
		&p.Started,
		&p.Ended,
		&p.ManagerUserID,
		&p.ReviewerUserID,
		&p.LastCommitTimestamp,
		&p.LastDiscussionTimestamp,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*project.Project, error) {
		// Row lock on the ebook serializes concurrent creates against it.
		e, err := r.ebooks.GetByIDTx(ctx, tx, p.EbookID)
		if err != nil {
			return nil, err
		}

		if !e.IsPlaceholder {
			return nil, project.ErrEbookNotPlaceholder
		}

		// One active project per ebook, enforced at application level.
		// A partial unique index on projects(ebook_id) WHERE status IN
		// ('in_progress', 'stalled') backs this up at the schema level.
		var hasActive bool
		err = tx.QueryRow(ctx, `
            SELECT EXISTS(
                SELECT 1 FROM projects
                WHERE ebook_id = $1 AND status IN ($2, $3)
            )
        `, p.EbookID, project.StatusInProgress, project.StatusStalled).Scan(&hasActive)
		if err != nil {
			return nil, fmt.Errorf("failed to check active project: %w", err)
		}
		if hasActive {
			return nil, project.ErrProjectExists
		}

		created, err := scanProject(tx.QueryRow(ctx, `
            INSERT INTO projects (
                ebook_id, status, producer_name, producer_email,
                discussion_url, vcs_url, started, ended,
                manager_user_id, reviewer_user_id,
                last_commit_timestamp, last_discussion_timestamp
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            RETURNING `+projectColumns, p.EbookID, p.Status, p.ProducerName, p.ProducerEmail,
			p.DiscussionURL, p.VCSURL, p.Started, p.Ended,
			p.ManagerUserID, p.ReviewerUserID,
			p.LastCommitTimestamp, p.LastDiscussionTimestamp,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}

		if err := r.ebooks.SetInProgressTx(ctx, tx, p.EbookID, true); err != nil {
			return nil, err
		}

		return created, nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*project.Project, error) {
		var prevStatus project.Status
		err := tx.QueryRow(ctx, `SELECT status FROM projects WHERE id = $1 FOR UPDATE`, p.ID).Scan(&prevStatus)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, project.ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to lock project: %w", err)
		}

		updated, err := scanProject(tx.QueryRow(ctx, `
            UPDATE projects SET
                status = $1, producer_name = $2, producer_email = $3,
                discussion_url = $4, vcs_url = $5, started = $6, ended = $7,
                manager_user_id = $8, reviewer_user_id = $9,
                last_commit_timestamp = $10, last_discussion_timestamp = $11,
                updated_at = NOW()
            WHERE id = $12
            RETURNING `+projectColumns, p.Status, p.ProducerName, p.ProducerEmail,
			p.DiscussionURL, p.VCSURL, p.Started, p.Ended,
			p.ManagerUserID, p.ReviewerUserID,
			p.LastCommitTimestamp, p.LastDiscussionTimestamp,
			p.ID,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}

		if err := r.afterSaveHook(ctx, tx, prevStatus, updated); err != nil {
			return nil, err
		}

		return updated, nil
	})
}

// afterSaveHook runs cross-entity side effects of a save. Abandoning a
// project frees its ebook placeholder for a new production attempt.
func (r *postgresRepository) afterSaveHook(ctx context.Context, tx pgx.Tx, prevStatus project.Status, p *project.Project) error {
	if p.Status == project.StatusAbandoned && prevStatus != project.StatusAbandoned {
		return r.ebooks.SetInProgressTx(ctx, tx, p.EbookID, false)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]project.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

func (r *postgresRepository) GetAllByStatus(ctx context.Context, status project.Status) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = $1 ORDER BY started DESC`

	return r.queryProjects(ctx, query, status)
}

func (r *postgresRepository) GetAllByManagerUserID(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE manager_user_id = $1 ORDER BY started DESC`

	return r.queryProjects(ctx, query, userID)
}

func (r *postgresRepository) GetAllByReviewerUserID(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE reviewer_user_id = $1 ORDER BY started DESC`

	return r.queryProjects(ctx, query, userID)
}
