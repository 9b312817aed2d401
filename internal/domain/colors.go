package domain

import (
	"fmt"
	"math/rand"
	"regexp"
)

// hexColorRe matches a 6-hex-digit CSS color with leading '#'.
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FallbackPalette is the palette used when the model returns colors in the
// wrong shape entirely (missing, too short, or not an array of strings).
var FallbackPalette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1"}

// IsHexColor reports whether s is a valid "#RRGGBB" color, case-insensitive.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// RandomHexColor returns a random "#RRGGBB" color. Used to replace single
// invalid entries in an otherwise well-shaped palette.
func RandomHexColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
