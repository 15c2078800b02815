// Package sanitize strips markup from user-supplied text. Journal entries
// and chat prompts arrive as free text from the web client and are later
// rendered back into it, so any embedded HTML (script tags, event handlers,
// javascript: URLs) is removed at the service boundary rather than trusted
// to the frontend.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy. StrictPolicy removes all HTML
// elements and attributes; the stored value is plain text only.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes all HTML from s and returns the unescaped plain text.
// bluemonday entity-escapes the survivors, which would corrupt ordinary
// prose like "me & my day", so the escaping is undone after stripping.
func Text(s string) string {
	stripped := getPolicy().Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
