package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Letters that do not decompose to an ASCII base under NFKD.
	localeLetters = strings.NewReplacer("ə", "e", "Ə", "e", "ı", "i")

	slugInvalid = regexp.MustCompile(`[^\w\s-]`)
	slugSpacing = regexp.MustCompile(`[-\s]+`)
)

func asciiFold() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

// MaxSlugLength matches the width of the slug columns.
const MaxSlugLength = 191

// maxSlugBase leaves room for a "-N" suffix within MaxSlugLength.
const maxSlugBase = MaxSlugLength - 11

// Slugify turns a title into a lowercase, hyphen separated ASCII slug of at
// most maxSlugBase characters.
func Slugify(title string) string {
	s := localeLetters.Replace(title)
	if folded, _, err := transform.String(asciiFold(), s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpacing.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")
	return truncateSlug(s, maxSlugBase)
}

// truncateSlug cuts an ASCII slug to max bytes without leaving a trailing separator.
func truncateSlug(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-_")
}

// SlugCandidate returns the n-th candidate for base: base itself, then base-1, base-2, ...
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	suffix := fmt.Sprintf("-%d", n)
	return truncateSlug(base, MaxSlugLength-len(suffix)) + suffix
}
