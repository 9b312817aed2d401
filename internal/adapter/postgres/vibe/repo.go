// Package vibe implements the vibe repository using PostgreSQL.
// List-valued fields use native text[] columns; tracks and icons are stored
// as jsonb documents.
package vibe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vibecraft/vibecraft-backend/internal/adapter/postgres"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var vibeColumns = []string{
	"id", "user_id", "input", "title", "mood", "description",
	"music", "food", "fashion", "travel", "decor",
	"colors", "image_urls", "categories", "tracks", "icons",
	"is_saved", "share_id", "created_at",
}

// Repo provides vibe persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vibe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a vibe and returns the persisted value.
func (r *Repo) Create(ctx context.Context, v *domain.Vibe) (*domain.Vibe, error) {
	tracks, err := json.Marshal(v.Tracks)
	if err != nil {
		return nil, fmt.Errorf("marshal tracks: %w", err)
	}
	icons, err := json.Marshal(v.Icons)
	if err != nil {
		return nil, fmt.Errorf("marshal icons: %w", err)
	}

	query := psql.Insert("vibes").
		Columns(vibeColumns...).
		Values(
			v.ID, v.UserID, v.Input, v.Title, v.Mood, v.Description,
			v.Music, v.Food, v.Fashion, v.Travel, v.Decor,
			v.Colors, v.ImageURLs, v.Categories, tracks, icons,
			v.IsSaved, v.ShareID, v.CreatedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return nil, mapError(err, "vibe", v.ID)
	}

	return v, nil
}

// GetByID returns a vibe by primary key with user_id filter.
// Returns domain.ErrNotFound if the vibe does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, vibeID uuid.UUID) (*domain.Vibe, error) {
	query := psql.Select(vibeColumns...).
		From("vibes").
		Where(sq.Eq{"id": vibeID, "user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	v, err := scanVibe(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "vibe", vibeID)
	}
	return v, nil
}

// ListByUser returns all vibes for a user, newest first.
// Returns an empty slice (not nil) when the user has no vibes.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vibe, error) {
	query := psql.Select(vibeColumns...).
		From("vibes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list vibes: %w", err)
	}
	defer rows.Close()

	vibes := []domain.Vibe{}
	for rows.Next() {
		v, err := scanVibe(rows)
		if err != nil {
			return nil, fmt.Errorf("list vibes: %w", err)
		}
		vibes = append(vibes, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vibes: %w", err)
	}

	return vibes, nil
}

// MarkSaved sets is_saved on a vibe. Idempotent.
// Returns domain.ErrNotFound if the vibe does not exist or belongs to another user.
func (r *Repo) MarkSaved(ctx context.Context, userID, vibeID uuid.UUID) error {
	query := psql.Update("vibes").
		Set("is_saved", true).
		Where(sq.Eq{"id": vibeID, "user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "vibe", vibeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vibe %s: %w", vibeID, domain.ErrNotFound)
	}

	return nil
}

// SetShareID assigns a share token to a vibe that has none yet and returns
// the token now stored on the row. If another caller already assigned one,
// the stored token wins and is returned instead of shareID.
func (r *Repo) SetShareID(ctx context.Context, userID, vibeID uuid.UUID, shareID string) (string, error) {
	query := psql.Update("vibes").
		Set("share_id", shareID).
		Where(sq.Eq{"id": vibeID, "user_id": userID}).
		Where("share_id IS NULL")

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("build update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return "", mapError(err, "vibe", vibeID)
	}
	if tag.RowsAffected() > 0 {
		return shareID, nil
	}

	// Lost the race or the token was already set: read the stored one.
	selectSQL, selectArgs, err := psql.Select("share_id").
		From("vibes").
		Where(sq.Eq{"id": vibeID, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build select: %w", err)
	}

	var stored *string
	if err := querier.QueryRow(ctx, selectSQL, selectArgs...).Scan(&stored); err != nil {
		return "", mapError(err, "vibe", vibeID)
	}
	if stored == nil {
		return "", fmt.Errorf("vibe %s: %w", vibeID, domain.ErrNotFound)
	}
	return *stored, nil
}

// GetByShareID returns a vibe by its public share token, regardless of owner.
// Returns domain.ErrNotFound for unknown tokens.
func (r *Repo) GetByShareID(ctx context.Context, shareID string) (*domain.Vibe, error) {
	query := psql.Select(vibeColumns...).
		From("vibes").
		Where(sq.Eq{"share_id": shareID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	v, err := scanVibe(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "vibe", uuid.Nil)
	}
	return v, nil
}

// scanVibe scans one row into a domain.Vibe. Works for both pgx.Row and
// pgx.Rows since both expose Scan.
func scanVibe(row pgx.Row) (*domain.Vibe, error) {
	var (
		v      domain.Vibe
		tracks []byte
		icons  []byte
	)

	err := row.Scan(
		&v.ID, &v.UserID, &v.Input, &v.Title, &v.Mood, &v.Description,
		&v.Music, &v.Food, &v.Fashion, &v.Travel, &v.Decor,
		&v.Colors, &v.ImageURLs, &v.Categories, &tracks, &icons,
		&v.IsSaved, &v.ShareID, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tracks, &v.Tracks); err != nil {
		return nil, fmt.Errorf("unmarshal tracks: %w", err)
	}
	if err := json.Unmarshal(icons, &v.Icons); err != nil {
		return nil, fmt.Errorf("unmarshal icons: %w", err)
	}

	return &v, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
