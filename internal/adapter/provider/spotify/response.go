package spotify

import "github.com/vibecraft/vibecraft-backend/internal/provider"

// tokenResponse is the client-credentials token envelope.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// searchResponse is the envelope of the /v1/search endpoint (type=track).
type searchResponse struct {
	Tracks struct {
		Items []apiTrack `json:"items"`
	} `json:"tracks"`
}

// apiTrack is one track result.
type apiTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	PreviewURL string `json:"preview_url"`
}

func (t apiTrack) toTrack() provider.TrackResult {
	artist := "Unknown Artist"
	if len(t.Artists) > 0 && t.Artists[0].Name != "" {
		artist = t.Artists[0].Name
	}
	return provider.TrackResult{
		ID:         t.ID,
		Name:       t.Name,
		Artist:     artist,
		PreviewURL: t.PreviewURL,
	}
}
