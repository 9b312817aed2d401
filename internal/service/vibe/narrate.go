package vibe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/vibecraft/vibecraft-backend/internal/domain"
	"github.com/vibecraft/vibecraft-backend/pkg/ctxutil"
)

const narrationPromptFmt = `Generate a base64-encoded MP3 audio for the following text: "%s". Return only the base64 string.`

var base64Re = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// placeholderAudio is served when the model returns something that is not
// base64.
var placeholderAudio = base64.StdEncoding.EncodeToString([]byte("Placeholder audio for TTS"))

// Narrate produces base64 MP3 narration for one of the caller's vibes. The
// generative call itself is fatal; a malformed payload degrades to a
// placeholder clip.
func (s *Service) Narrate(ctx context.Context, vibeID uuid.UUID) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	v, err := s.vibes.GetByID(ctx, userID, vibeID)
	if err != nil {
		return "", fmt.Errorf("narrate vibe: %w", err)
	}

	prompt := fmt.Sprintf(narrationPromptFmt, narrationText(v))

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, domain.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
		}
		return "", fmt.Errorf("narrate vibe: %w", err)
	}

	audio := strings.TrimSpace(raw)
	if audio == "" || !base64Re.MatchString(audio) {
		s.logDegraded(ctx, "narration", "model returned non-base64 audio")
		return placeholderAudio, nil
	}
	return audio, nil
}

// narrationText flattens the vibe into the sentence the narration reads.
func narrationText(v *domain.Vibe) string {
	return fmt.Sprintf(
		"%s. Mood: %s. %s. Music: %s. Food: %s. Fashion: %s. Travel: %s. Decor: %s.",
		v.Title,
		v.Mood,
		v.Description,
		strings.Join(v.Music, ", "),
		strings.Join(v.Food, ", "),
		strings.Join(v.Fashion, ", "),
		strings.Join(v.Travel, ", "),
		strings.Join(v.Decor, ", "),
	)
}
