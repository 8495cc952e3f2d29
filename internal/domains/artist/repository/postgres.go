package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"pressroom-backend/internal/domains/artist"
	"pressroom-backend/internal/shared/utils"
	"pressroom-backend/pkg/cache"
	"pressroom-backend/pkg/database"
)

// postgresRepository implements artist.Repository on pgxpool with a Redis
// read cache in front of single-entity lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) artist.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	artistCacheKeyPrefix = "artist:"
	artistSlugKeyPrefix  = "artist:slug:"
	artistListKeyPrefix  = "artists:list:"
	cacheTTL             = 15 * time.Minute
)

// selectArtist aggregates alternate names into a text array so one round
// trip loads the full entity.
const selectArtist = `
    SELECT a.id, a.name, a.death_year, a.created_at, a.updated_at,
           COALESCE(array_agg(an.name ORDER BY an.name) FILTER (WHERE an.name IS NOT NULL), '{}')
    FROM artists a
    LEFT JOIN artist_alternate_names an ON an.artist_id = a.id
`

func scanArtist(row pgx.Row) (*artist.Artist, error) {
	var a artist.Artist
	var names pq.StringArray

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.DeathYear,
		&a.CreatedAt,
		&a.UpdatedAt,
		&names,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, artist.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}

	a.AlternateNames = []string(names)
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *artist.Artist) (*artist.Artist, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*artist.Artist, error) {
		return createInTx(ctx, tx, a)
	})
	if err != nil {
		return nil, err
	}

	r.invalidateListCache(ctx)

	return created, nil
}

// createInTx inserts the artist row plus its alternate names. Shared by
// Create and GetOrCreate.
func createInTx(ctx context.Context, tx pgx.Tx, a *artist.Artist) (*artist.Artist, error) {
	query := `
        INSERT INTO artists (name, death_year, url_name)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `

	created := *a
	err := tx.QueryRow(ctx, query, a.Name, a.DeathYear, a.URLName()).Scan(
		&created.ID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	for _, name := range a.AlternateNames {
		_, err := tx.Exec(ctx, `
            INSERT INTO artist_alternate_names (artist_id, name, url_name)
            VALUES ($1, $2, $3)
        `, created.ID, name, utils.GenerateSlug(name))
		if err != nil {
			return nil, fmt.Errorf("failed to create alternate name: %w", err)
		}
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*artist.Artist, error) {
	cacheKey := artistCacheKeyPrefix + id.String()

	var cached artist.Artist
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := selectArtist + ` WHERE a.id = $1 GROUP BY a.id`

	a, err := scanArtist(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return a, nil
}

func (r *postgresRepository) GetByURLName(ctx context.Context, urlName string) (*artist.Artist, error) {
	cacheKey := artistSlugKeyPrefix + urlName

	var cached artist.Artist
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := selectArtist + ` WHERE a.url_name = $1 GROUP BY a.id`

	a, err := scanArtist(r.pool.QueryRow(ctx, query, urlName))
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)
	r.cache.Set(ctx, artistCacheKeyPrefix+a.ID.String(), a, cacheTTL)

	return a, nil
}

func (r *postgresRepository) GetByAlternateURLName(ctx context.Context, urlName string) (*artist.Artist, error) {
	query := selectArtist + `
        WHERE a.id IN (SELECT artist_id FROM artist_alternate_names WHERE url_name = $1)
        GROUP BY a.id
    `

	return scanArtist(r.pool.QueryRow(ctx, query, urlName))
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]artist.Artist, error) {
	query := selectArtist + ` GROUP BY a.id ORDER BY a.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []artist.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, nil
}

func (r *postgresRepository) GetOrCreate(ctx context.Context, candidate *artist.Artist) (*artist.Artist, error) {
	slug := candidate.URLName()

	result, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*artist.Artist, error) {
		// Advisory lock keyed on the slug serializes concurrent
		// get-or-create calls for the same name. Held until commit.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, slug); err != nil {
			return nil, fmt.Errorf("failed to take advisory lock: %w", err)
		}

		existing, err := scanArtist(tx.QueryRow(ctx, selectArtist+` WHERE a.url_name = $1 GROUP BY a.id`, slug))
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, artist.ErrArtistNotFound) {
			return nil, err
		}

		existing, err = scanArtist(tx.QueryRow(ctx, selectArtist+`
            WHERE a.id IN (SELECT artist_id FROM artist_alternate_names WHERE url_name = $1)
            GROUP BY a.id
        `, slug))
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, artist.ErrArtistNotFound) {
			return nil, err
		}

		return createInTx(ctx, tx, candidate)
	})
	if err != nil {
		return nil, err
	}

	r.invalidateListCache(ctx)

	return result, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Slug fetched up front for cache invalidation.
	var slug string
	err := r.pool.QueryRow(ctx, `SELECT url_name FROM artists WHERE id = $1`, id).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return artist.ErrArtistNotFound
		}
		return fmt.Errorf("failed to load artist for delete: %w", err)
	}

	err = database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM artist_alternate_names WHERE artist_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete alternate names: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete artist: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return artist.ErrArtistNotFound
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.cache.Delete(ctx, artistCacheKeyPrefix+id.String(), artistSlugKeyPrefix+slug)
	r.invalidateListCache(ctx)

	return nil
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	r.cache.DeletePattern(ctx, artistListKeyPrefix+"*")
}
