// Package vibe implements the vibe-generation orchestration pipeline and the
// lifecycle operations (save, share, narrate) on generated vibes.
package vibe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
	"github.com/vibecraft/vibecraft-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entitySearcher interface {
	Search(ctx context.Context, query string, limit int) ([]provider.Entity, error)
}

type insightsProvider interface {
	Recommendations(ctx context.Context, req provider.InsightsRequest) ([]provider.Entity, error)
}

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type imageSearcher interface {
	SearchPhotos(ctx context.Context, query string, perPage int) ([]string, error)
}

type musicCatalog interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]provider.TrackResult, error)
}

type vibeRepo interface {
	Create(ctx context.Context, v *domain.Vibe) (*domain.Vibe, error)
	GetByID(ctx context.Context, userID, vibeID uuid.UUID) (*domain.Vibe, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vibe, error)
	MarkSaved(ctx context.Context, userID, vibeID uuid.UUID) error
	SetShareID(ctx context.Context, userID, vibeID uuid.UUID, shareID string) (string, error)
	GetByShareID(ctx context.Context, shareID string) (*domain.Vibe, error)
}

type activityRepo interface {
	Create(ctx context.Context, a domain.Activity) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Pipeline constants
// ---------------------------------------------------------------------------

const (
	entitySearchLimit  = 10
	insightsLimit      = 8
	recommendationsCap = 5
	signalPlacesCap    = 3
	signalBrandsCap    = 2
	imageCount         = 3
	trackLimit         = 3
	activityLimit      = 10
)

// defaultImageURLs is the stock set used when image search degrades; the
// final image list is always padded to imageCount by cycling this set.
var defaultImageURLs = []string{
	"https://images.unsplash.com/photo-1497515114629-f71d767d0461",
	"https://images.unsplash.com/photo-1507525428034-b723cf961d3e",
	"https://images.unsplash.com/photo-1519985176271-adb1088fa94c",
}

// intentFilterTypes maps each intent to the insights filter type.
var intentFilterTypes = map[domain.Intent]string{
	domain.IntentTravel:        "urn:entity:place",
	domain.IntentFood:          "urn:entity:restaurant",
	domain.IntentEntertainment: "urn:entity:movie",
	domain.IntentShopping:      "urn:entity:brand",
	domain.IntentGeneral:       "urn:entity:place",
}

// Service orchestrates vibe generation and owns the degrade-to-default
// policy for every best-effort external call.
type Service struct {
	log        *slog.Logger
	entities   entitySearcher
	insights   insightsProvider
	generator  textGenerator
	images     imageSearcher
	music      musicCatalog
	vibes      vibeRepo
	activities activityRepo
	tx         txManager
}

// NewService creates a vibe service. All collaborators are injected so tests
// can substitute fakes for the external providers.
func NewService(
	logger *slog.Logger,
	entities entitySearcher,
	insights insightsProvider,
	generator textGenerator,
	images imageSearcher,
	music musicCatalog,
	vibes vibeRepo,
	activities activityRepo,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "vibe"),
		entities:   entities,
		insights:   insights,
		generator:  generator,
		images:     images,
		music:      music,
		vibes:      vibes,
		activities: activities,
		tx:         tx,
	}
}

// logDegraded records a best-effort stage that fell back to its default.
// Degraded stages never surface to the caller.
func (s *Service) logDegraded(ctx context.Context, stage, reason string) {
	s.log.WarnContext(ctx, "stage degraded",
		slog.String("stage", stage),
		slog.String("reason", reason),
	)
}
