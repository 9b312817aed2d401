package vibe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
	"github.com/vibecraft/vibecraft-backend/internal/provider"
	"github.com/vibecraft/vibecraft-backend/pkg/ctxutil"
)

// Generate runs the full vibe pipeline for the authenticated user: sanitize
// input, gather taste signals, call the generative model, repair the payload,
// enrich with images and music, and persist the result.
//
// Only input validation, the generative call, payload parsing, and
// persistence are fatal. Every other stage degrades to a documented default.
func (s *Service) Generate(ctx context.Context, rawInput string) (*domain.Vibe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input := domain.SanitizeInput(rawInput)
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}

	entRes := s.searchEntities(ctx, input)
	if entRes.Degraded {
		s.logDegraded(ctx, "entity_search", entRes.Reason)
	}
	entities := entRes.Value
	if entities.IsEmpty() {
		s.log.DebugContext(ctx, "no taste entities for input", "input", input)
	}

	intent := domain.ClassifyIntent(input)

	recRes := s.fetchRecommendations(ctx, entities, intent)
	if recRes.Degraded {
		s.logDegraded(ctx, "recommendations", recRes.Reason)
	}
	recommendations := recRes.Value

	prompt := buildPrompt(input, recommendations)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, domain.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
		}
		return nil, fmt.Errorf("generative call: %w", err)
	}

	payload, err := parseGeneration(raw)
	if err != nil {
		return nil, fmt.Errorf("parse generation: %w", err)
	}

	payload.repair(input)
	colors := repairColors(payload.Colors)
	categories := deriveCategories(payload, intent)

	imgRes := s.fetchImages(ctx, payload.Mood, input)
	if imgRes.Degraded {
		s.logDegraded(ctx, "image_search", imgRes.Reason)
	}

	musicRes := s.fetchTracks(ctx, payload.Music, payload.Mood, input)
	if musicRes.Degraded {
		s.logDegraded(ctx, "music_search", musicRes.Reason)
	}

	v := &domain.Vibe{
		ID:          uuid.New(),
		UserID:      userID,
		Input:       input,
		Title:       payload.Title,
		Mood:        payload.Mood,
		Description: payload.Description,
		Music:       payload.Music,
		Food:        payload.Food,
		Fashion:     payload.Fashion,
		Travel:      payload.Travel,
		Decor:       payload.Decor,
		Colors:      colors,
		ImageURLs:   imgRes.Value,
		Categories:  categories,
		Tracks:      musicRes.Value,
		Icons:       domain.IconSet(payload.Icons),
		CreatedAt:   time.Now().UTC(),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.vibes.Create(ctx, v)
		if err != nil {
			return fmt.Errorf("create vibe: %w", err)
		}
		v = created

		activity := domain.Activity{
			ID:        uuid.New(),
			UserID:    userID,
			VibeTitle: v.Title,
			CreatedAt: v.CreatedAt,
		}
		if err := s.activities.Create(ctx, activity); err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save vibe: %w: %w", domain.ErrPersistence, err)
	}

	s.log.InfoContext(ctx, "vibe generated",
		"vibe_id", v.ID,
		"user_id", userID,
		"intent", string(intent),
	)
	return v, nil
}

// searchEntities resolves the raw input into categorized taste entities.
// Degrades to an empty set on provider failure.
func (s *Service) searchEntities(ctx context.Context, input string) provider.Result[domain.ContextualEntities] {
	found, err := s.entities.Search(ctx, input, entitySearchLimit)
	if err != nil {
		return provider.Degraded(domain.ContextualEntities{}, err.Error())
	}
	return provider.Ok(categorizeEntities(found))
}

// fetchRecommendations asks the insights provider for related entities,
// seeded by the strongest signals found during entity search. Degrades to an
// empty list when there are no signals or the provider fails.
func (s *Service) fetchRecommendations(ctx context.Context, entities domain.ContextualEntities, intent domain.Intent) provider.Result[[]provider.Entity] {
	if !entities.HasSignals() {
		return provider.Degraded([]provider.Entity{}, "no signal entities")
	}

	req := provider.InsightsRequest{
		FilterType:      intentFilterTypes[intent],
		SignalEntityIDs: signalEntityIDs(entities),
		Limit:           insightsLimit,
	}
	recs, err := s.insights.Recommendations(ctx, req)
	if err != nil {
		return provider.Degraded([]provider.Entity{}, err.Error())
	}
	return provider.Ok(filterRecommendations(recs))
}

// signalEntityIDs picks the strongest signals: the first three places and the
// first two brands, in that order.
func signalEntityIDs(entities domain.ContextualEntities) []string {
	ids := make([]string, 0, signalPlacesCap+signalBrandsCap)
	for i, e := range entities.Places {
		if i == signalPlacesCap {
			break
		}
		ids = append(ids, e.ID)
	}
	for i, e := range entities.Brands {
		if i == signalBrandsCap {
			break
		}
		ids = append(ids, e.ID)
	}
	return ids
}

// fetchImages looks up mood imagery and guarantees exactly imageCount URLs,
// padding with the stock set by cycling it.
func (s *Service) fetchImages(ctx context.Context, mood, input string) provider.Result[[]string] {
	query := mood + " " + input
	urls, err := s.images.SearchPhotos(ctx, query, imageCount)
	if err != nil {
		return provider.Degraded(padImageURLs(nil), err.Error())
	}
	return provider.Ok(padImageURLs(urls))
}

// padImageURLs returns exactly imageCount URLs, topping up from the default
// set in round-robin order.
func padImageURLs(urls []string) []string {
	out := make([]string, 0, imageCount)
	for _, u := range urls {
		if len(out) == imageCount {
			break
		}
		out = append(out, u)
	}
	for len(out) < imageCount {
		out = append(out, defaultImageURLs[len(out)%len(defaultImageURLs)])
	}
	return out
}

// fetchTracks searches the music catalog using the best available query:
// the first music suggestion, then the mood, then the raw input. Degrades to
// an empty track list.
func (s *Service) fetchTracks(ctx context.Context, music []string, mood, input string) provider.Result[[]domain.Track] {
	query := input
	if mood != "" {
		query = mood
	}
	if len(music) > 0 && music[0] != "" {
		query = music[0]
	}

	found, err := s.music.SearchTracks(ctx, query, trackLimit)
	if err != nil {
		return provider.Degraded([]domain.Track{}, err.Error())
	}

	tracks := make([]domain.Track, 0, len(found))
	for i, t := range found {
		if i == trackLimit {
			break
		}
		tracks = append(tracks, domain.Track{
			ID:         t.ID,
			Name:       t.Name,
			Artist:     t.Artist,
			PreviewURL: t.PreviewURL,
		})
	}
	return provider.Ok(tracks)
}
