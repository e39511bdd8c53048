package utils

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	contentPolicy = newContentPolicy()
	strictPolicy  = bluemonday.StrictPolicy()
)

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// RenderMarkdown converts a content block to sanitized HTML.
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return contentPolicy.Sanitize(source)
	}
	return string(contentPolicy.SanitizeBytes(buf.Bytes()))
}

// PlainText renders markdown and strips every tag, leaving readable text.
func PlainText(source string) string {
	stripped := strictPolicy.Sanitize(RenderMarkdown(source))
	return strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
}

// SanitizeComment removes all markup from user supplied comment text.
func SanitizeComment(body string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(body)))
}
