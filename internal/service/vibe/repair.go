package vibe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/vibecraft/vibecraft-backend/internal/domain"
)

// minListLen is the minimum length every content list is padded to.
const minListLen = 3

var codeFenceRe = regexp.MustCompile("```json\n|```")

// stringList tolerates a wrong-typed value in the generated JSON: anything
// that is not an array of strings decodes to nil instead of failing the
// whole payload, and padding fills it back in.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// generationPayload is the model's JSON contract. The imageUrls and
// categories fields the model returns are deliberately ignored: images come
// from the image provider and categories are derived. Icons are kept when
// present and defaulted otherwise.
type generationPayload struct {
	Title       string         `json:"title"`
	Mood        string         `json:"mood"`
	Description string         `json:"description"`
	Music       stringList     `json:"music"`
	Food        stringList     `json:"food"`
	Fashion     stringList     `json:"fashion"`
	Travel      stringList     `json:"travel"`
	Decor       stringList     `json:"decor"`
	Colors      stringList `json:"colors"`
	Icons       iconSet    `json:"icons"`
}

// iconSet tolerates a wrong-typed icons value the same way stringList does:
// anything that is not an icon object decodes to zero and repair defaults it.
type iconSet domain.IconSet

func (s *iconSet) UnmarshalJSON(data []byte) error {
	var v domain.IconSet
	if err := json.Unmarshal(data, &v); err != nil {
		*s = iconSet{}
		return nil
	}
	*s = iconSet(v)
	return nil
}

// parseGeneration strips markdown code fences and decodes the model output.
// A payload that is not valid JSON is fatal; partial content inside valid
// JSON is repairable, malformed JSON is not trustworthy enough to guess at.
func parseGeneration(raw string) (*generationPayload, error) {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	var p generationPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationParse, err)
	}
	return &p, nil
}

// repair fills missing scalar fields with input-derived defaults and pads
// every content list to at least minListLen entries.
func (p *generationPayload) repair(input string) {
	if p.Title == "" {
		p.Title = fmt.Sprintf("A %s Experience", input)
	}
	if p.Mood == "" {
		p.Mood = "Inspired"
	}
	if p.Description == "" {
		p.Description = fmt.Sprintf("An experience centered around %s.", input)
	}

	if domain.IconSet(p.Icons).IsZero() {
		p.Icons = iconSet(domain.DefaultIcons())
	}

	p.Music = padList(p.Music, "music")
	p.Food = padList(p.Food, "food")
	p.Fashion = padList(p.Fashion, "fashion")
	p.Travel = padList(p.Travel, "travel")
	p.Decor = padList(p.Decor, "decor")
}

func padList(items stringList, category string) stringList {
	for len(items) < minListLen {
		items = append(items, fmt.Sprintf("%s recommendation %d", category, len(items)+1))
	}
	return items
}

// repairColors returns exactly three valid hex colors. A well-shaped palette
// keeps its first three entries with invalid ones replaced by random colors;
// anything shorter than three entries is replaced wholesale by the fallback
// palette.
func repairColors(colors []string) []string {
	if len(colors) < minListLen {
		out := make([]string, len(domain.FallbackPalette))
		copy(out, domain.FallbackPalette)
		return out
	}

	out := make([]string, 0, minListLen)
	for _, c := range colors[:minListLen] {
		if !domain.IsHexColor(c) {
			c = domain.RandomHexColor()
		}
		out = append(out, c)
	}
	return out
}

// deriveCategories names the content dimensions the vibe actually filled in.
// Called after repair every list is non-empty, so the guard only fires if
// padding is ever bypassed.
func deriveCategories(p *generationPayload, intent domain.Intent) []string {
	var out []string
	for _, c := range []struct {
		name  string
		items stringList
	}{
		{"music", p.Music},
		{"food", p.Food},
		{"fashion", p.Fashion},
		{"travel", p.Travel},
		{"decor", p.Decor},
	} {
		if len(c.items) > 0 {
			out = append(out, c.name)
		}
	}
	if len(out) == 0 {
		if intent == "" || intent == domain.IntentGeneral {
			return []string{"lifestyle"}
		}
		return []string{string(intent)}
	}
	return out
}
