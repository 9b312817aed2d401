package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibecraft/vibecraft-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// BuildVibe returns a fully populated domain.Vibe for a user, not yet persisted.
func BuildVibe(userID uuid.UUID) domain.Vibe {
	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	return domain.Vibe{
		ID:          uuid.New(),
		UserID:      userID,
		Input:       "test input " + suffix,
		Title:       "A Test " + suffix + " Experience",
		Mood:        "Curious",
		Description: "A vibe seeded for tests.",
		Music:       []string{"genre-" + suffix, "artist-" + suffix, "album-" + suffix},
		Food:        []string{"dish-1", "dish-2", "dish-3"},
		Fashion:     []string{"style-1", "style-2", "style-3"},
		Travel:      []string{"city-1", "city-2", "city-3"},
		Decor:       []string{"item-1", "item-2", "item-3"},
		Colors:      []string{"#AABBCC", "#112233", "#445566"},
		ImageURLs:   []string{"https://img.test/1", "https://img.test/2", "https://img.test/3"},
		Categories:  []string{"music", "food", "fashion", "travel", "decor"},
		Tracks: []domain.Track{
			{ID: "trk-" + suffix, Name: "Track " + suffix, Artist: "Artist " + suffix, PreviewURL: "https://p.test/" + suffix},
		},
		Icons:     domain.DefaultIcons(),
		CreatedAt: now,
	}
}

// SeedVibe inserts a fully populated vibe for the given user and returns it.
func SeedVibe(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Vibe {
	t.Helper()
	ctx := context.Background()

	v := BuildVibe(userID)

	tracks, err := json.Marshal(v.Tracks)
	if err != nil {
		t.Fatalf("testhelper: SeedVibe marshal tracks: %v", err)
	}
	icons, err := json.Marshal(v.Icons)
	if err != nil {
		t.Fatalf("testhelper: SeedVibe marshal icons: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO vibes (
			id, user_id, input, title, mood, description,
			music, food, fashion, travel, decor,
			colors, image_urls, categories, tracks, icons,
			is_saved, share_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		v.ID, v.UserID, v.Input, v.Title, v.Mood, v.Description,
		v.Music, v.Food, v.Fashion, v.Travel, v.Decor,
		v.Colors, v.ImageURLs, v.Categories, tracks, icons,
		v.IsSaved, v.ShareID, v.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVibe insert vibe: %v", err)
	}

	return v
}

// SeedActivity inserts an activity entry for the given user and returns it.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, createdAt time.Time) domain.Activity {
	t.Helper()
	ctx := context.Background()

	a := domain.Activity{
		ID:        uuid.New(),
		UserID:    userID,
		VibeTitle: "A Seeded " + uniqueSuffix() + " Experience",
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO activities (id, user_id, vibe_title, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.UserID, a.VibeTitle, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity insert activity: %v", err)
	}

	return a
}
