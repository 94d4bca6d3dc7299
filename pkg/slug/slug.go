package slug

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ForTitle builds a post slug: normalized title plus an 8 character random
// suffix so two posts may share a title without colliding.
func ForTitle(title string) string {
	base := normalize(title)
	if base == "" {
		base = "post"
	}
	return base + "-" + randomSuffix(8)
}

// ForName builds a deterministic slug for unique names (categories).
func ForName(name string) string {
	return normalize(name)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func randomSuffix(n int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing is not recoverable here; fall back to a fixed rune
			b.WriteByte('x')
			continue
		}
		b.WriteByte(suffixAlphabet[idx.Int64()])
	}
	return b.String()
}
