package vibe

import (
	"strings"

	"github.com/vibecraft/vibecraft-backend/internal/domain"
	"github.com/vibecraft/vibecraft-backend/internal/provider"
)

// categorizeEntities buckets raw search entities by type keyword and drops
// both unmatched types and entities with irrelevant names (schools, courses
// and similar institutional noise).
func categorizeEntities(entities []provider.Entity) domain.ContextualEntities {
	var out domain.ContextualEntities
	for _, e := range entities {
		if domain.IsIrrelevantName(e.Name) {
			continue
		}

		ce := domain.CategorizedEntity{ID: e.ID, Name: e.Name, Type: e.Type}
		t := strings.ToLower(e.Type)
		switch {
		case strings.Contains(t, "place") || strings.Contains(t, "location"):
			out.Places = append(out.Places, ce)
		case strings.Contains(t, "brand") || strings.Contains(t, "business"):
			out.Brands = append(out.Brands, ce)
		case strings.Contains(t, "movie") || strings.Contains(t, "tv") || strings.Contains(t, "music"):
			out.Entertainment = append(out.Entertainment, ce)
		case strings.Contains(t, "restaurant") || strings.Contains(t, "food"):
			out.Food = append(out.Food, ce)
		}
	}
	return out
}

// filterRecommendations drops recommendations with irrelevant names (the
// extended blocklist, which also covers medical facilities) and caps the
// result at recommendationsCap.
func filterRecommendations(recs []provider.Entity) []provider.Entity {
	out := make([]provider.Entity, 0, recommendationsCap)
	for _, r := range recs {
		if domain.IsIrrelevantRecommendation(r.Name) {
			continue
		}
		out = append(out, r)
		if len(out) == recommendationsCap {
			break
		}
	}
	return out
}
