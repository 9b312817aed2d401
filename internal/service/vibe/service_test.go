package vibe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
	"github.com/vibecraft/vibecraft-backend/internal/provider"
	"github.com/vibecraft/vibecraft-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockEntitySearcher struct {
	SearchFunc func(ctx context.Context, query string, limit int) ([]provider.Entity, error)
}

func (m *mockEntitySearcher) Search(ctx context.Context, query string, limit int) ([]provider.Entity, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil, nil
}

type mockInsightsProvider struct {
	RecommendationsFunc func(ctx context.Context, req provider.InsightsRequest) ([]provider.Entity, error)
}

func (m *mockInsightsProvider) Recommendations(ctx context.Context, req provider.InsightsRequest) ([]provider.Entity, error) {
	if m.RecommendationsFunc != nil {
		return m.RecommendationsFunc(ctx, req)
	}
	return nil, nil
}

type mockTextGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateFunc(ctx, prompt)
}

type mockImageSearcher struct {
	SearchPhotosFunc func(ctx context.Context, query string, perPage int) ([]string, error)
}

func (m *mockImageSearcher) SearchPhotos(ctx context.Context, query string, perPage int) ([]string, error) {
	if m.SearchPhotosFunc != nil {
		return m.SearchPhotosFunc(ctx, query, perPage)
	}
	return nil, nil
}

type mockMusicCatalog struct {
	SearchTracksFunc func(ctx context.Context, query string, limit int) ([]provider.TrackResult, error)
}

func (m *mockMusicCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]provider.TrackResult, error) {
	if m.SearchTracksFunc != nil {
		return m.SearchTracksFunc(ctx, query, limit)
	}
	return nil, nil
}

type mockVibeRepo struct {
	CreateFunc       func(ctx context.Context, v *domain.Vibe) (*domain.Vibe, error)
	GetByIDFunc      func(ctx context.Context, userID, vibeID uuid.UUID) (*domain.Vibe, error)
	ListByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.Vibe, error)
	MarkSavedFunc    func(ctx context.Context, userID, vibeID uuid.UUID) error
	SetShareIDFunc   func(ctx context.Context, userID, vibeID uuid.UUID, shareID string) (string, error)
	GetByShareIDFunc func(ctx context.Context, shareID string) (*domain.Vibe, error)
}

func (m *mockVibeRepo) Create(ctx context.Context, v *domain.Vibe) (*domain.Vibe, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return v, nil
}

func (m *mockVibeRepo) GetByID(ctx context.Context, userID, vibeID uuid.UUID) (*domain.Vibe, error) {
	return m.GetByIDFunc(ctx, userID, vibeID)
}

func (m *mockVibeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vibe, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockVibeRepo) MarkSaved(ctx context.Context, userID, vibeID uuid.UUID) error {
	return m.MarkSavedFunc(ctx, userID, vibeID)
}

func (m *mockVibeRepo) SetShareID(ctx context.Context, userID, vibeID uuid.UUID, shareID string) (string, error) {
	return m.SetShareIDFunc(ctx, userID, vibeID, shareID)
}

func (m *mockVibeRepo) GetByShareID(ctx context.Context, shareID string) (*domain.Vibe, error) {
	return m.GetByShareIDFunc(ctx, shareID)
}

type mockActivityRepo struct {
	CreateFunc     func(ctx context.Context, a domain.Activity) error
	ListByUserFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error) {
	return m.ListByUserFunc(ctx, userID, limit)
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testDeps struct {
	entities   *mockEntitySearcher
	insights   *mockInsightsProvider
	generator  *mockTextGenerator
	images     *mockImageSearcher
	music      *mockMusicCatalog
	vibes      *mockVibeRepo
	activities *mockActivityRepo
	tx         *mockTxManager
}

func newTestDeps() *testDeps {
	return &testDeps{
		entities:   &mockEntitySearcher{},
		insights:   &mockInsightsProvider{},
		generator:  &mockTextGenerator{GenerateFunc: func(context.Context, string) (string, error) { return validGeneration, nil }},
		images:     &mockImageSearcher{},
		music:      &mockMusicCatalog{},
		vibes:      &mockVibeRepo{},
		activities: &mockActivityRepo{},
		tx:         &mockTxManager{},
	}
}

func newTestService(d *testDeps) *Service {
	return NewService(
		slog.Default(),
		d.entities, d.insights, d.generator, d.images, d.music,
		d.vibes, d.activities, d.tx,
	)
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// validGeneration is a complete, well-formed model response.
const validGeneration = `{
  "title": "A Cozy Rainy Day Experience",
  "mood": "Contemplative",
  "description": "Warm drinks and slow music while the rain does its thing.",
  "music": ["lo-fi beats", "Norah Jones", "ambient piano"],
  "food": ["ramen", "hot chocolate", "fresh bread"],
  "fashion": ["oversized knits", "wool socks", "flannel"],
  "travel": ["Portland", "Edinburgh", "Bergen"],
  "decor": ["warm lamps", "heavy blankets", "bookshelves"],
  "colors": ["#AABBCC", "#112233", "#445566"],
  "imageUrls": ["x", "y", "z"],
  "categories": ["ignored"],
  "icons": {"music": "Music", "food": "Utensils", "fashion": "Shirt", "travel": "MapPin", "decor": "Home"}
}`
