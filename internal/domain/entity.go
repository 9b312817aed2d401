package domain

import "strings"

// CategorizedEntity is one taste-graph entity that survived irrelevance
// filtering and landed in a ContextualEntities bucket.
type CategorizedEntity struct {
	ID   string
	Name string
	Type string
}

// ContextualEntities holds search-discovered entities partitioned by kind.
// Built once per generation request; never mutated after categorization.
type ContextualEntities struct {
	Places        []CategorizedEntity
	Brands        []CategorizedEntity
	Entertainment []CategorizedEntity
	Food          []CategorizedEntity
}

// IsEmpty reports whether no bucket holds any entity.
func (c ContextualEntities) IsEmpty() bool {
	return len(c.Places) == 0 && len(c.Brands) == 0 &&
		len(c.Entertainment) == 0 && len(c.Food) == 0
}

// HasSignals reports whether the entity set can seed a recommendation call.
// Only places and brands are used as interest signals.
func (c ContextualEntities) HasSignals() bool {
	return len(c.Places) > 0 || len(c.Brands) > 0
}

// irrelevantNameKeywords filters out entities that never belong in a
// lifestyle vibe regardless of their type tag.
var irrelevantNameKeywords = []string{
	"school", "training", "course", "education", "academy", "institute",
}

// irrelevantRecommendationKeywords is the extended list applied to
// recommendation results. It deliberately differs from the categorization
// list (adds medical venues); the two stages filter independently.
var irrelevantRecommendationKeywords = append(
	[]string{"hospital", "diagnostic", "clinic"},
	irrelevantNameKeywords...,
)

// IsIrrelevantName reports whether an entity name matches the base
// irrelevance blocklist (case-insensitive substring match).
func IsIrrelevantName(name string) bool {
	return matchesAny(name, irrelevantNameKeywords)
}

// IsIrrelevantRecommendation reports whether a recommendation name matches
// the extended irrelevance blocklist.
func IsIrrelevantRecommendation(name string) bool {
	return matchesAny(name, irrelevantRecommendationKeywords)
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
