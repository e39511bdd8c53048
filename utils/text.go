package utils

import (
	"strings"
	"unicode"
)

// TruncateSentences keeps the first n sentences of value. A sentence ends at
// '.', '!' or '?' followed by a single whitespace character, which is consumed.
func TruncateSentences(value string, n int) string {
	if n <= 0 {
		return ""
	}
	var parts []string
	runes := []rune(value)
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			continue
		}
		switch runes[i-1] {
		case '.', '!', '?':
			parts = append(parts, string(runes[start:i]))
			start = i + 1
			if len(parts) == n {
				return strings.Join(parts, " ")
			}
		}
	}
	parts = append(parts, string(runes[start:]))
	return strings.Join(parts, " ")
}
