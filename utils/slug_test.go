package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain words", "Foo Bar", "foo-bar"},
		{"punctuation dropped", "Hello, World!", "hello-world"},
		{"schwa and dotless i", "Əli və Ayşə qısa", "eli-ve-ayse-qisa"},
		{"accents folded", "Ölkə Çempionatı", "olke-cempionati"},
		{"repeated separators collapse", "  a -- b   c  ", "a-b-c"},
		{"edge hyphens trimmed", "--news--", "news"},
		{"digits kept", "Top 10 stories of 2024", "top-10-stories-of-2024"},
		{"only symbols", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "foo-bar", SlugCandidate("foo-bar", 0))
	assert.Equal(t, "foo-bar-1", SlugCandidate("foo-bar", 1))
	assert.Equal(t, "foo-bar-2", SlugCandidate("foo-bar", 2))
}

func TestSlugLengthIsBounded(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 80))
	assert.LessOrEqual(t, len(slug), MaxSlugLength-11)
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.True(t, strings.HasPrefix(slug, "word-word-"))

	long := strings.Repeat("a", MaxSlugLength)
	candidate := SlugCandidate(long, 12345)
	assert.Len(t, candidate, MaxSlugLength)
	assert.True(t, strings.HasSuffix(candidate, "-12345"))

	assert.Equal(t, "short-3", SlugCandidate("short", 3))
}
