// Package htmlsanitize cleans admin-authored rich text (lesson content,
// notification bodies, ticket replies) before it is sent to the backend or
// rendered back into a page.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy

	stripOnce sync.Once
	strip     *bluemonday.Policy
)

func richText() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "sub", "sup", "mark", "hr")
		p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td", "pre", "code")
		p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		p.AllowStyles("width", "text-align", "vertical-align", "background-color", "color").
			OnElements("table", "tr", "th", "td")
		p.AllowAttrs("controls").OnElements("video")
		p.AllowAttrs("src", "poster").OnElements("video")
		policy = p
	})
	return policy
}

func stripPolicy() *bluemonday.Policy {
	stripOnce.Do(func() { strip = bluemonday.StrictPolicy() })
	return strip
}

// Sanitize removes scripts, event handlers, unsafe URLs and disallowed
// elements from s, keeping ordinary formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richText().Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// StripTags removes all markup, for titles and other single-line fields.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(stripPolicy().Sanitize(s)))
}

// IsPlainText reports whether s looks like it contains no tags.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and wraps it in a paragraph, turning newlines
// into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(html.EscapeString(s), "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders stored content whether it was saved as plain
// text or HTML.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
