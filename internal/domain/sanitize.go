package domain

import (
	"strings"
	"unicode"
)

// MaxInputLength is the maximum accepted length of a generation request, in runes.
const MaxInputLength = 500

// SanitizeInput prepares free-form user input for the generation pipeline:
//   - trims leading/trailing whitespace
//   - drops control characters
//   - compresses runs of whitespace into single spaces
//
// Case, punctuation, and diacritics are preserved.
func SanitizeInput(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		// Tab and newline are both control and space; they must collapse,
		// not vanish, so the space check comes first.
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// ValidateInput checks a sanitized input string against the size invariants:
// non-empty and at most MaxInputLength runes.
func ValidateInput(text string) error {
	if text == "" {
		return NewValidationError("input", "required")
	}
	if len([]rune(text)) > MaxInputLength {
		return NewValidationError("input", "must be at most 500 characters")
	}
	return nil
}
