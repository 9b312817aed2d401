package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vibecraft/vibecraft-backend/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-pro"

	generateTimeout = 30 * time.Second
)

// Provider calls the Gemini generateContent API and returns the raw model
// text. Parsing and repair of the response happen downstream; any failure
// here is fatal for the request that issued it.
type Provider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider against the public Gemini API.
// An empty model selects the default.
func NewProvider(apiKey, model string, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, apiKey, model, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, apiKey, model string, logger *slog.Logger) *Provider {
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		log:        logger.With("adapter", "gemini"),
	}
}

// Generate sends the prompt and returns the model's raw text response.
// Errors are wrapped in domain.ErrGenerationFailed so the orchestrator can
// map them to the fatal generation error kind.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "gemini request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini: request failed: %w: %w", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.ErrorContext(ctx, "gemini unexpected status", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("gemini: unexpected status %d: %w", resp.StatusCode, domain.ErrGenerationFailed)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read body: %w: %w", domain.ErrGenerationFailed, err)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("gemini: decode envelope: %w: %w", domain.ErrGenerationFailed, err)
	}

	text := gr.text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response: %w", domain.ErrGenerationFailed)
	}

	p.log.DebugContext(ctx, "gemini response",
		slog.String("model", p.model),
		slog.Int("length", len(text)),
	)
	return text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// text concatenates all parts of the first candidate.
func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, pt := range r.Candidates[0].Content.Parts {
		b.WriteString(pt.Text)
	}
	return b.String()
}
