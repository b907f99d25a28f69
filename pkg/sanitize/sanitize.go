// Package sanitize provides value filters for decorator.WithValueFilter.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy

	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// StripMarkup removes every tag from a stored value and returns plain text.
// Entities produced by the policy are decoded again because the serializer
// escapes attribute values and textarea content on output.
func StripMarkup(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return html.UnescapeString(stripSanitizer().Sanitize(raw))
}

// InlineMarkup keeps basic inline formatting (b, i, em, strong, a[href]) and
// drops everything else. Useful for textareas backed by a rich text editor.
func InlineMarkup(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return inlineSanitizer().Sanitize(raw)
}

func stripSanitizer() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "i", "em", "strong", "u", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		inlinePolicy = policy
	})
	return inlinePolicy
}
