package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vibecraft/vibecraft-backend/internal/provider"
)

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"

	tokenTimeout  = 30 * time.Second
	searchTimeout = 10 * time.Second
)

// Provider searches the Spotify track catalog using the client-credentials
// flow. A bearer token is obtained per search; a token failure fails only
// the search that needed it.
type Provider struct {
	accountsURL  string
	apiURL       string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	log          *slog.Logger
}

// NewProvider creates a Provider against the public Spotify endpoints.
func NewProvider(clientID, clientSecret string, logger *slog.Logger) *Provider {
	return NewProviderWithURLs(defaultAccountsURL, defaultAPIURL, clientID, clientSecret, logger)
}

// NewProviderWithURLs creates a Provider with custom endpoints (for testing).
func NewProviderWithURLs(accountsURL, apiURL, clientID, clientSecret string, logger *slog.Logger) *Provider {
	return &Provider{
		accountsURL:  strings.TrimRight(accountsURL, "/"),
		apiURL:       strings.TrimRight(apiURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{},
		log:          logger.With("adapter", "spotify"),
	}
}

// SearchTracks searches the catalog and returns up to limit tracks.
func (p *Provider) SearchTracks(ctx context.Context, query string, limit int) ([]provider.TrackResult, error) {
	token, err := p.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	reqURL := p.apiURL + "/v1/search?" + url.Values{
		"q":      {query},
		"type":   {"track"},
		"limit":  {strconv.Itoa(limit)},
		"market": {"US"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "spotify search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("spotify: search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: unexpected search status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spotify: read search body: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("spotify: decode search json: %w", err)
	}

	tracks := make([]provider.TrackResult, 0, len(sr.Tracks.Items))
	for _, item := range sr.Tracks.Items {
		tracks = append(tracks, item.toTrack())
	}

	p.log.DebugContext(ctx, "spotify search",
		slog.String("query", query),
		slog.Int("tracks", len(tracks)),
	)
	return tracks, nil
}

// fetchToken obtains a client-credentials bearer token.
func (p *Provider) fetchToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.accountsURL+"/api/token", form)
	if err != nil {
		return "", fmt.Errorf("spotify: create token request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(p.clientID + ":" + p.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "spotify token fetch failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("spotify: token fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify: unexpected token status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("spotify: decode token json: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("spotify: token response missing access_token")
	}

	return tr.AccessToken, nil
}
