package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.unsplash.com"

const searchTimeout = 10 * time.Second

// Provider searches the Unsplash photo catalog and returns regular-size
// image URLs. Failures are absorbed by the caller's image fallback.
type Provider struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider against the public Unsplash API.
func NewProvider(accessKey string, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, accessKey, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, accessKey string, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessKey:  accessKey,
		httpClient: &http.Client{},
		log:        logger.With("adapter", "unsplash"),
	}
}

// SearchPhotos searches for landscape photos matching the query.
func (p *Provider) SearchPhotos(ctx context.Context, query string, perPage int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	reqURL := p.baseURL + "/search/photos?" + url.Values{
		"query":          {query},
		"per_page":       {strconv.Itoa(perPage)},
		"orientation":    {"landscape"},
		"content_filter": {"high"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("unsplash: create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+p.accessKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "unsplash request failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("unsplash: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unsplash: read body: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("unsplash: decode json: %w", err)
	}

	urls := make([]string, 0, len(sr.Results))
	for _, photo := range sr.Results {
		if photo.URLs.Regular != "" {
			urls = append(urls, photo.URLs.Regular)
		}
	}

	p.log.DebugContext(ctx, "unsplash search",
		slog.String("query", query),
		slog.Int("photos", len(urls)),
	)
	return urls, nil
}
