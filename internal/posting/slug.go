package posting

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	slugSuffixLen  = 6
	slugMaxBaseLen = 80
	slugAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL slug from the title and company name plus a
// random suffix. The suffix makes collisions unlikely but not impossible;
// the unique index on jobs.slug is the final guard.
func GenerateSlug(title, companyName string) string {
	base := slugBase(title + "-" + companyName)
	suffix := randomSuffix(slugSuffixLen)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func slugBase(s string) string {
	base := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	base = strings.Trim(base, "-")
	if len(base) > slugMaxBaseLen {
		base = strings.TrimRight(base[:slugMaxBaseLen], "-")
	}
	return base
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugAlphabet[rand.IntN(len(slugAlphabet))]
	}
	return string(b)
}
