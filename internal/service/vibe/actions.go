package vibe

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
	"github.com/vibecraft/vibecraft-backend/pkg/ctxutil"
)

const shareTokenBytes = 16

// List returns all vibes of the authenticated user, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Vibe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	vibes, err := s.vibes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list vibes: %w", err)
	}
	return vibes, nil
}

// Save marks a vibe of the authenticated user as saved. Saving is a
// prerequisite for sharing.
func (s *Service) Save(ctx context.Context, vibeID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.vibes.MarkSaved(ctx, userID, vibeID); err != nil {
		return fmt.Errorf("save vibe: %w", err)
	}

	s.log.InfoContext(ctx, "vibe saved", "vibe_id", vibeID, "user_id", userID)
	return nil
}

// Share returns a stable public share token for a saved vibe. The operation
// is idempotent: the first call mints a token, later calls return it again.
func (s *Service) Share(ctx context.Context, vibeID uuid.UUID) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	v, err := s.vibes.GetByID(ctx, userID, vibeID)
	if err != nil {
		return "", fmt.Errorf("share vibe: %w", err)
	}
	if !v.Shareable() {
		return "", domain.NewValidationError("vibeId", "vibe must be saved before sharing")
	}
	if v.ShareID != nil {
		return *v.ShareID, nil
	}

	token, err := newShareToken()
	if err != nil {
		return "", fmt.Errorf("share vibe: %w", err)
	}

	// The repo keeps an already-stored token if a concurrent share won.
	stored, err := s.vibes.SetShareID(ctx, userID, vibeID, token)
	if err != nil {
		return "", fmt.Errorf("share vibe: %w", err)
	}

	s.log.InfoContext(ctx, "vibe shared", "vibe_id", vibeID, "user_id", userID)
	return stored, nil
}

// SharedByToken resolves a public share token. Only saved vibes are
// reachable this way; an unsaved vibe behaves as if the token were unknown.
func (s *Service) SharedByToken(ctx context.Context, shareID string) (*domain.Vibe, error) {
	if shareID == "" {
		return nil, domain.NewValidationError("shareId", "required")
	}

	v, err := s.vibes.GetByShareID(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("lookup shared vibe: %w", err)
	}
	if !v.IsSaved {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// ActivityFeed returns the newest activity entries of the authenticated
// user, capped at ten.
func (s *Service) ActivityFeed(ctx context.Context) ([]domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	activities, err := s.activities.ListByUser(ctx, userID, activityLimit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return activities, nil
}

func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
