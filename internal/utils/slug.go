package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)
	multipleDashRe    = regexp.MustCompile(`-+`)
)

// Slugify converts a category name to a URL-safe slug.
//
//	"Hello, World!"  → "hello-world"
//	"Café Crème"     → "cafe-creme"
//	"--Follow up--"  → "follow-up"
func Slugify(value string) string {
	// 分解重音字符后丢弃非 ASCII
	s := norm.NFKD.String(value)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumericRe.ReplaceAllString(s, "-")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CategorySlug is Slugify with a fallback for names that have letters or digits
// but none in ASCII, such as "客服". Those get "c-" plus a name-based UUIDv5
// prefix, so the same name always maps to the same slug.
func CategorySlug(value string) string {
	if slug := Slugify(value); slug != "" {
		return slug
	}
	folded := strings.ToLower(norm.NFKC.String(strings.TrimSpace(value)))
	if !strings.ContainsFunc(folded, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
		return ""
	}
	return "c-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(folded)).String()[:8]
}
