package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
)

// vibeService defines the minimal interface needed by VibeHandler.
type vibeService interface {
	Generate(ctx context.Context, input string) (*domain.Vibe, error)
	List(ctx context.Context) ([]domain.Vibe, error)
	Save(ctx context.Context, vibeID uuid.UUID) error
	Share(ctx context.Context, vibeID uuid.UUID) (string, error)
	SharedByToken(ctx context.Context, shareID string) (*domain.Vibe, error)
	Narrate(ctx context.Context, vibeID uuid.UUID) (string, error)
	ActivityFeed(ctx context.Context) ([]domain.Activity, error)
}

// VibeHandler serves the vibe REST endpoints.
type VibeHandler struct {
	svc         vibeService
	frontendURL string
	log         *slog.Logger
}

// NewVibeHandler creates a VibeHandler. frontendURL is the base used to
// build user-facing share links.
func NewVibeHandler(svc vibeService, frontendURL string, logger *slog.Logger) *VibeHandler {
	return &VibeHandler{
		svc:         svc,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         logger.With("handler", "vibe"),
	}
}

type generateRequest struct {
	Input string `json:"input"`
}

type vibeResponse struct {
	ID          string         `json:"id"`
	Input       string         `json:"input"`
	Title       string         `json:"title"`
	Mood        string         `json:"mood"`
	Description string         `json:"description"`
	Music       []string       `json:"music"`
	Food        []string       `json:"food"`
	Fashion     []string       `json:"fashion"`
	Travel      []string       `json:"travel"`
	Decor       []string       `json:"decor"`
	Colors      []string       `json:"colors"`
	ImageURLs   []string       `json:"imageUrls"`
	Categories  []string       `json:"categories"`
	Tracks      []domain.Track `json:"tracks"`
	Icons       domain.IconSet `json:"icons"`
	IsSaved     bool           `json:"isSaved"`
	ShareID     *string        `json:"shareId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type shareResponse struct {
	ShareLink string `json:"shareLink"`
}

type narrateResponse struct {
	Audio string `json:"audio"`
}

type activityResponse struct {
	ID        string    `json:"id"`
	VibeTitle string    `json:"vibeTitle"`
	CreatedAt time.Time `json:"createdAt"`
}

// Generate handles POST /api/vibes.
func (h *VibeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vibe, err := h.svc.Generate(r.Context(), req.Input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVibeResponse(vibe))
}

// List handles GET /api/vibes.
func (h *VibeHandler) List(w http.ResponseWriter, r *http.Request) {
	vibes, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]vibeResponse, 0, len(vibes))
	for i := range vibes {
		resp = append(resp, toVibeResponse(&vibes[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Save handles POST /api/vibes/{id}/save.
func (h *VibeHandler) Save(w http.ResponseWriter, r *http.Request) {
	vibeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Save(r.Context(), vibeID); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Share handles POST /api/vibes/{id}/share.
func (h *VibeHandler) Share(w http.ResponseWriter, r *http.Request) {
	vibeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	token, err := h.svc.Share(r.Context(), vibeID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shareResponse{
		ShareLink: h.frontendURL + "/shared/" + token,
	})
}

// Shared handles GET /api/shared/{shareId}. Public, no auth required.
func (h *VibeHandler) Shared(w http.ResponseWriter, r *http.Request) {
	vibe, err := h.svc.SharedByToken(r.Context(), r.PathValue("shareId"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toVibeResponse(vibe))
}

// Narrate handles POST /api/vibes/{id}/narrate.
func (h *VibeHandler) Narrate(w http.ResponseWriter, r *http.Request) {
	vibeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	audio, err := h.svc.Narrate(r.Context(), vibeID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, narrateResponse{Audio: audio})
}

// Activity handles GET /api/activity.
func (h *VibeHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.ActivityFeed(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, activityResponse{
			ID:        a.ID.String(),
			VibeTitle: a.VibeTitle,
			CreatedAt: a.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *VibeHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrGenerationParse):
		h.log.ErrorContext(r.Context(), "unparseable generation", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to parse generated response, please try again")
	case errors.Is(err, domain.ErrGenerationFailed):
		h.log.ErrorContext(r.Context(), "generation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to generate vibe, please try again")
	case errors.Is(err, domain.ErrPersistence):
		h.log.ErrorContext(r.Context(), "vibe not persisted", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to save vibe, please try again")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func toVibeResponse(v *domain.Vibe) vibeResponse {
	return vibeResponse{
		ID:          v.ID.String(),
		Input:       v.Input,
		Title:       v.Title,
		Mood:        v.Mood,
		Description: v.Description,
		Music:       v.Music,
		Food:        v.Food,
		Fashion:     v.Fashion,
		Travel:      v.Travel,
		Decor:       v.Decor,
		Colors:      v.Colors,
		ImageURLs:   v.ImageURLs,
		Categories:  v.Categories,
		Tracks:      v.Tracks,
		Icons:       v.Icons,
		IsSaved:     v.IsSaved,
		ShareID:     v.ShareID,
		CreatedAt:   v.CreatedAt,
	}
}
