package entities

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	SuffixLength   = 6
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)

// RandomSuffix returns n lowercase alphanumeric characters.
func RandomSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	limit := big.NewInt(int64(len(suffixAlphabet)))
	for range n {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b.WriteByte(suffixAlphabet[idx.Int64()])
	}
	return b.String()
}

// WithSuffix appends "-<suffix>" to a site name.
func WithSuffix(name, suffix string) string {
	return name + "-" + suffix
}

// Slugify lowercases a display name and joins its words with hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}
