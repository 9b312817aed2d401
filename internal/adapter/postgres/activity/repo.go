// Package activity implements the activity-feed repository using PostgreSQL.
package activity

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vibecraft/vibecraft-backend/internal/adapter/postgres"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts an activity entry.
func (r *Repo) Create(ctx context.Context, a domain.Activity) error {
	query := psql.Insert("activities").
		Columns("id", "user_id", "vibe_title", "created_at").
		Values(a.ID, a.UserID, a.VibeTitle, a.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	return nil
}

// ListByUser returns the newest activity entries for a user, capped at limit.
// Returns an empty slice (not nil) when the user has no activity.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error) {
	query := psql.Select("id", "user_id", "vibe_title", "created_at").
		From("activities").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.VibeTitle, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("list activities: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return activities, nil
}
