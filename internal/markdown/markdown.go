// Package markdown renders profile bios to sanitized HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
)

func init() {
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	sanitize = bluemonday.UGCPolicy()
	sanitize.AllowAttrs("target", "rel").OnElements("a")
	sanitize.RequireNoReferrerOnLinks(true)
	sanitize.AddTargetBlankToFullyQualifiedLinks(true)
}

// Render converts a bio to HTML that is safe to embed in a page. Blank
// input renders to "".
func Render(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}

	sanitized := sanitize.SanitizeBytes(buf.Bytes())
	return string(sanitized), nil
}
