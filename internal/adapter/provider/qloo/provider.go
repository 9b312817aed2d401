package qloo

import (
	"bytes"
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

	"github.com/vibecraft/vibecraft-backend/internal/provider"
)

const defaultBaseURL = "https://hackathon.api.qloo.com"

const (
	searchTimeout   = 15 * time.Second
	insightsTimeout = 20 * time.Second
)

// Provider fetches entities and recommendations from the Qloo taste-graph API.
// Each call is attempted exactly once; callers degrade on failure.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider against the default Qloo API URL.
func NewProvider(apiKey string, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, apiKey, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, apiKey string, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		log:        logger.With("adapter", "qloo"),
	}
}

// Search queries the entity-search endpoint for entities related to the query.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]provider.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	reqURL := p.baseURL + "/search?" + url.Values{
		"query": {query},
		"limit": {strconv.Itoa(limit)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("qloo: create search request: %w", err)
	}
	p.setHeaders(req)

	var resp searchResponse
	if err := p.do(req, &resp); err != nil {
		p.log.ErrorContext(ctx, "qloo search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	entities := make([]provider.Entity, 0, len(resp.Results))
	for _, item := range resp.Results {
		entities = append(entities, item.toEntity())
	}

	p.log.DebugContext(ctx, "qloo search",
		slog.String("query", query),
		slog.Int("entities", len(entities)),
	)
	return entities, nil
}

// Recommendations calls the insights endpoint with interest-signal entity IDs.
// Returns the recommended entities; an unsuccessful insights envelope yields
// an empty slice, not an error.
func (p *Provider) Recommendations(ctx context.Context, req provider.InsightsRequest) ([]provider.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, insightsTimeout)
	defer cancel()

	body, err := json.Marshal(insightsRequestBody{
		FilterType:     req.FilterType,
		SignalEntities: strings.Join(req.SignalEntityIDs, ","),
		Limit:          req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("qloo: marshal insights request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v2/insights", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("qloo: create insights request: %w", err)
	}
	p.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	var resp insightsResponse
	if err := p.do(httpReq, &resp); err != nil {
		p.log.ErrorContext(ctx, "qloo insights failed",
			slog.String("filter_type", req.FilterType),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if !resp.Success {
		p.log.WarnContext(ctx, "qloo insights unsuccessful", slog.String("filter_type", req.FilterType))
		return []provider.Entity{}, nil
	}

	entities := make([]provider.Entity, 0, len(resp.Results.Entities))
	for _, item := range resp.Results.Entities {
		entities = append(entities, item.toEntity())
	}

	p.log.DebugContext(ctx, "qloo insights",
		slog.String("filter_type", req.FilterType),
		slog.Int("entities", len(entities)),
	)
	return entities, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (p *Provider) do(req *http.Request, out any) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qloo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qloo: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("qloo: read body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("qloo: decode json: %w", err)
	}
	return nil
}
