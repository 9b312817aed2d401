//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/vibecraft/vibecraft-backend/internal/adapter/postgres"
	activityrepo "github.com/vibecraft/vibecraft-backend/internal/adapter/postgres/activity"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/postgres/testhelper"
	viberepo "github.com/vibecraft/vibecraft-backend/internal/adapter/postgres/vibe"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/gemini"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/qloo"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/spotify"
	"github.com/vibecraft/vibecraft-backend/internal/adapter/provider/unsplash"
	authpkg "github.com/vibecraft/vibecraft-backend/internal/auth"
	"github.com/vibecraft/vibecraft-backend/internal/config"
	"github.com/vibecraft/vibecraft-backend/internal/service/vibe"
	"github.com/vibecraft/vibecraft-backend/internal/transport/middleware"
	"github.com/vibecraft/vibecraft-backend/internal/transport/rest"
)

const (
	testJWTSecret   = "e2e-test-secret-at-least-32-characters-long"
	testFrontendURL = "http://localhost:5173"
)

// vibeJSON is the canonical model output served by the fake Gemini,
// wrapped in a markdown code fence to exercise fence stripping.
const vibeJSON = "```json\n" + `{
  "title": "Neon Tokyo Nights",
  "mood": "Electric",
  "description": "A night of city lights, synth sounds and street food.",
  "music": ["City Pop Classics", "Vaporwave Mix", "Tokyo Jazz"],
  "food": ["Ramen", "Takoyaki", "Matcha Soft Serve"],
  "fashion": ["Techwear Jacket", "Platform Sneakers", "Neon Accessories"],
  "travel": ["Shibuya Crossing", "Golden Gai", "TeamLab Planets"],
  "decor": ["LED Strips", "Lo-fi Posters", "Paper Lanterns"],
  "colors": ["#FF6B6B", "#4ECDC4", "#45B7D1"]
}` + "\n```"

// ---------------------------------------------------------------------------
// Fake external providers.
// ---------------------------------------------------------------------------

// fakeProviders runs httptest stand-ins for all four external APIs.
// narrationAudio can be overridden per test before issuing requests.
type fakeProviders struct {
	qloo     *httptest.Server
	gemini   *httptest.Server
	unsplash *httptest.Server
	spotify  *httptest.Server

	narrationAudio string
}

func startFakeProviders(t *testing.T) *fakeProviders {
	t.Helper()

	f := &fakeProviders{narrationAudio: "QXVkaW8gYnl0ZXM="}

	f.qloo = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search":
			writeBody(w, map[string]any{
				"results": []map[string]any{
					{"entity_id": "place-1", "name": "Blue Note Jazz Club", "types": []string{"urn:entity:place"}},
					{"entity_id": "brand-1", "name": "Moleskine", "types": []string{"urn:entity:brand"}},
				},
			})
		case r.URL.Path == "/v2/insights":
			writeBody(w, map[string]any{
				"success": true,
				"results": map[string]any{
					"entities": []map[string]any{
						{"id": "rec-1", "name": "Nakameguro Canal", "subtype": "urn:entity:place"},
						{"id": "rec-2", "name": "Vinyl Cafe", "subtype": "urn:entity:place"},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.qloo.Close)

	f.gemini = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prompt := readGeminiPrompt(t, r)
		text := vibeJSON
		if strings.Contains(prompt, "base64-encoded MP3") {
			text = f.narrationAudio
		}
		writeBody(w, map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
	}))
	t.Cleanup(f.gemini.Close)

	f.unsplash = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, map[string]any{
			"results": []map[string]any{
				{"urls": map[string]any{"regular": "https://images.test/1"}},
				{"urls": map[string]any{"regular": "https://images.test/2"}},
				{"urls": map[string]any{"regular": "https://images.test/3"}},
			},
		})
	}))
	t.Cleanup(f.unsplash.Close)

	f.spotify = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token" {
			writeBody(w, map[string]any{"access_token": "e2e-token", "token_type": "Bearer", "expires_in": 3600})
			return
		}
		writeBody(w, map[string]any{
			"tracks": map[string]any{
				"items": []map[string]any{
					{
						"id":          "track-1",
						"name":        "Plastic Love",
						"artists":     []map[string]any{{"name": "Mariya Takeuchi"}},
						"preview_url": "https://audio.test/1.mp3",
					},
				},
			},
		})
	}))
	t.Cleanup(f.spotify.Close)

	return f
}

func writeBody(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func readGeminiPrompt(t *testing.T, r *http.Request) string {
	t.Helper()

	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	require.NotEmpty(t, req.Contents)
	require.NotEmpty(t, req.Contents[0].Parts)
	return req.Contents[0].Parts[0].Text
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL       string
	Client    *http.Client
	Pool      *pgxpool.Pool
	Providers *fakeProviders

	jwt *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and fake external providers.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	providers := startFakeProviders(t)

	qlooProvider := qloo.NewProviderWithURL(providers.qloo.URL, "test-key", logger)
	geminiProvider := gemini.NewProviderWithURL(providers.gemini.URL, "test-key", "gemini-test", logger)
	unsplashProvider := unsplash.NewProviderWithURL(providers.unsplash.URL, "test-key", logger)
	spotifyProvider := spotify.NewProviderWithURLs(providers.spotify.URL, providers.spotify.URL, "id", "secret", logger)

	vibeService := vibe.NewService(
		logger,
		qlooProvider,
		qlooProvider,
		geminiProvider,
		unsplashProvider,
		spotifyProvider,
		viberepo.New(pool),
		activityrepo.New(pool),
		postgres.NewTxManager(pool),
	)

	jwtManager := authpkg.NewJWTManager(testJWTSecret, "vibecraft", time.Hour)

	vibeHandler := rest.NewVibeHandler(vibeService, testFrontendURL, logger)
	healthHandler := rest.NewHealthHandler(pool, "e2e-test")

	router := rest.NewRouter(vibeHandler, healthHandler,
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   testFrontendURL,
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           600,
		}),
		middleware.Auth(jwtManager),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:       srv.URL,
		Client:    srv.Client(),
		Pool:      pool,
		Providers: providers,
		jwt:       jwtManager,
	}
}

// newUserToken mints an access token for a fresh user ID.
func (ts *testServer) newUserToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return userID, token
}

// doJSON issues a request with an optional bearer token and JSON body and
// decodes the JSON response into a generic map.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}
	return resp.StatusCode, result
}

// doJSONList is doJSON for endpoints returning a JSON array.
func (ts *testServer) doJSONList(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}
	return resp.StatusCode, result
}

// generateVibe creates one vibe through the API and returns its response body.
func (ts *testServer) generateVibe(t *testing.T, token, input string) map[string]any {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/vibes", token, map[string]string{"input": input})
	require.Equal(t, http.StatusCreated, status, "generate failed: %v", body)
	return body
}

// vibeID extracts the ID of a vibe response body.
func vibeID(t *testing.T, body map[string]any) string {
	t.Helper()

	id, ok := body["id"].(string)
	require.True(t, ok, "expected id string in %v", body)
	require.NotEmpty(t, id)
	return id
}

func savePath(id string) string    { return fmt.Sprintf("/api/vibes/%s/save", id) }
func sharePath(id string) string   { return fmt.Sprintf("/api/vibes/%s/share", id) }
func narratePath(id string) string { return fmt.Sprintf("/api/vibes/%s/narrate", id) }
