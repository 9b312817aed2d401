package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vibe is the structured lifestyle-recommendation record produced by one
// generation request. It is created atomically at the end of the generation
// pipeline and mutated exactly twice afterwards: Save (IsSaved false→true)
// and Share (ShareID nil→token).
type Vibe struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Input       string
	Title       string
	Mood        string
	Description string

	Music   []string
	Food    []string
	Fashion []string
	Travel  []string
	Decor   []string

	Colors     []string
	ImageURLs  []string
	Categories []string

	Tracks []Track
	Icons  IconSet

	IsSaved   bool
	ShareID   *string
	CreatedAt time.Time
}

// Track is one audio track attached to a vibe.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	PreviewURL string `json:"preview_url"`
}

// IconSet maps each content category to an icon label for the UI.
type IconSet struct {
	Music   string `json:"music"`
	Food    string `json:"food"`
	Fashion string `json:"fashion"`
	Travel  string `json:"travel"`
	Decor   string `json:"decor"`
}

// DefaultIcons returns the icon set used when the model response carries none.
func DefaultIcons() IconSet {
	return IconSet{
		Music:   "Music",
		Food:    "Utensils",
		Fashion: "Shirt",
		Travel:  "MapPin",
		Decor:   "Home",
	}
}

// IsZero reports whether no icon label is set.
func (s IconSet) IsZero() bool {
	return s == IconSet{}
}

// Shareable reports whether a share token may be minted for the vibe.
// Only saved vibes can be shared.
func (v *Vibe) Shareable() bool {
	return v.IsSaved
}

// Activity is one append-only audit record, written once per successful
// generation and read-only thereafter.
type Activity struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	VibeTitle string
	CreatedAt time.Time
}
