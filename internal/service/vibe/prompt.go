package vibe

import (
	"fmt"
	"strings"

	"github.com/vibecraft/vibecraft-backend/internal/provider"
)

const promptWithRecommendations = `Create a compelling lifestyle vibe based on the user's request: "%[1]s"

Here are some relevant places/brands for inspiration (use selectively, don't force all):
%[2]s

INSTRUCTIONS:
- Create a cohesive lifestyle experience that genuinely matches "%[1]s"
- Only include travel destinations that make sense for the vibe (no schools, training centers, hospitals)
- Focus on creating an aspirational but authentic experience
- Use the provided recommendations as inspiration, not mandatory inclusions
- If the input is about a mood/feeling, create recommendations that enhance that mood
- Make the description engaging and experiential

Return ONLY valid JSON in this exact format:
{
  "title": "A [descriptive] [input-based] Experience",
  "mood": "[mood that captures the essence of the input]",
  "description": "[engaging 2-3 sentence description of the experience]",
  "music": ["genre or artist that fits the vibe", "another music recommendation", "third recommendation"],
  "food": ["food that fits the experience", "another food recommendation", "third food recommendation"],
  "fashion": ["fashion style that matches", "another fashion element", "third fashion element"],
  "travel": ["meaningful travel destination 1", "meaningful travel destination 2", "meaningful travel destination 3"],
  "decor": ["decor style 1", "decor style 2", "decor style 3"],
  "colors": ["#hexcolor1", "#hexcolor2", "#hexcolor3"],
  "imageUrls": ["placeholder1", "placeholder2", "placeholder3"],
  "categories": ["category1", "category2"],
  "icons": {"music": "Music", "food": "Utensils", "fashion": "Shirt", "travel": "MapPin", "decor": "Home"}
}`

const promptWithoutRecommendations = `Create an authentic lifestyle vibe based on: "%[1]s"

Focus on creating a genuine experience that someone would actually want to have. Think about:
- What mood does "%[1]s" evoke?
- What activities, places, music, food would enhance this mood?
- What would make this experience memorable and shareable?

Return ONLY valid JSON in this exact format:
{
  "title": "A [descriptive] %[1]s Experience",
  "mood": "[authentic mood based on input]",
  "description": "[compelling 2-3 sentence description]",
  "music": ["music genre/artist 1", "music genre/artist 2", "music genre/artist 3"],
  "food": ["food recommendation 1", "food recommendation 2", "food recommendation 3"],
  "fashion": ["fashion element 1", "fashion element 2", "fashion element 3"],
  "travel": ["travel destination 1", "travel destination 2", "travel destination 3"],
  "decor": ["decor style 1", "decor style 2", "decor style 3"],
  "colors": ["#hexcolor1", "#hexcolor2", "#hexcolor3"],
  "imageUrls": ["placeholder1", "placeholder2", "placeholder3"],
  "categories": ["relevant category 1", "relevant category 2"],
  "icons": {"music": "Music", "food": "Utensils", "fashion": "Shirt", "travel": "MapPin", "decor": "Home"}
}`

// buildPrompt assembles the generative prompt. Recommendations, when
// present, are formatted as a numbered inspiration list; the model is told
// to treat them as optional context, never mandatory content.
func buildPrompt(input string, recommendations []provider.Entity) string {
	if len(recommendations) == 0 {
		return fmt.Sprintf(promptWithoutRecommendations, input)
	}
	return fmt.Sprintf(promptWithRecommendations, input, formatRecommendations(recommendations))
}

func formatRecommendations(recs []provider.Entity) string {
	lines := make([]string, 0, len(recs))
	for i, rec := range recs {
		name := rec.Name
		if name == "" {
			name = "Unknown"
		}
		kind := rec.Subtype
		if kind == "" {
			kind = rec.Type
		}
		if kind == "" {
			kind = "Unknown"
		}
		line := fmt.Sprintf("%d. %s (%s)", i+1, name, kind)
		if rec.Description != "" {
			line += " - " + rec.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
