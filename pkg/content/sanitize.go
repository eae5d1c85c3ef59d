package content

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// renderInline escapes body, turns `code` spans into <code> elements and runs
// the result through the inline policy.
func renderInline(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}

	escaped := html.EscapeString(trimmed)
	parts := strings.Split(escaped, "`")
	var b strings.Builder
	for i, part := range parts {
		// Odd segments sit between backticks; an unmatched trailing tick
		// leaves the last segment as plain text.
		if i%2 == 1 && i < len(parts)-1 {
			b.WriteString("<code>")
			b.WriteString(part)
			b.WriteString("</code>")
			continue
		}
		if i%2 == 1 {
			b.WriteString("`")
		}
		b.WriteString(part)
	}
	return SanitizeInline(b.String())
}

// SanitizeInline strips everything but inline formatting elements.
func SanitizeInline(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(inlineSanitizer().Sanitize(trimmed))
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("code", "strong", "em", "br")
		inlinePolicy = policy
	})
	return inlinePolicy
}
