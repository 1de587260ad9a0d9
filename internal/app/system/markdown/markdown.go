// Package markdown renders blog bodies. Authors may mix raw HTML into their
// Markdown; the rendered output always goes through htmlsanitize.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/jawahirullah/portal/internal/app/system/htmlsanitize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// Render converts src to sanitized HTML.
func Render(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return htmlsanitize.SanitizeToHTML(buf.String()), nil
}

// MustRender is Render for templates; a render failure falls back to the
// escaped source as plain paragraphs.
func MustRender(src string) template.HTML {
	out, err := Render(src)
	if err != nil {
		return template.HTML(htmlsanitize.PlainTextToHTML(src))
	}
	return out
}

// ReadingTime estimates whole minutes to read text, never less than 1.
func ReadingTime(text string) int {
	words := len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	}))
	mins := (words + WordsPerMinute - 1) / WordsPerMinute
	if mins < 1 {
		return 1
	}
	return mins
}
