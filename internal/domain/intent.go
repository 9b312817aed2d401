package domain

import "strings"

// Intent is the coarse classification of what kind of recommendation domain
// best matches the user's input.
type Intent string

const (
	IntentTravel        Intent = "travel"
	IntentFood          Intent = "food"
	IntentEntertainment Intent = "entertainment"
	IntentShopping      Intent = "shopping"
	IntentGeneral       Intent = "general"
)

func (i Intent) String() string { return string(i) }

// intentKeywords maps each intent to the substrings that trigger it.
// Classification checks intents in intentPriority order; first match wins.
var intentKeywords = map[Intent][]string{
	IntentTravel:        {"travel", "vacation", "trip"},
	IntentFood:          {"food", "restaurant", "eat"},
	IntentEntertainment: {"music", "concert", "song"},
	IntentShopping:      {"shop", "buy", "brand"},
}

var intentPriority = []Intent{IntentTravel, IntentFood, IntentEntertainment, IntentShopping}

// ClassifyIntent derives the primary intent from free-form input text.
// Matching is case-insensitive substring search; IntentGeneral if nothing matches.
// Pure function: same input always yields the same intent.
func ClassifyIntent(text string) Intent {
	lower := strings.ToLower(text)
	for _, intent := range intentPriority {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lower, kw) {
				return intent
			}
		}
	}
	return IntentGeneral
}
