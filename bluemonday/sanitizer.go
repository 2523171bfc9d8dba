// Package bluemonday cleans rich text markup using bluemonday.
package bluemonday

import (
	"strings"
	"sync"

	"github.com/fwojciec/xwalk"
	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// Ensure Sanitizer implements xwalk.Sanitizer at compile time.
var _ xwalk.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips scripts, event handlers and other active content from rich
// text while keeping the formatting an author can produce.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the shared rich text policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: richTextSanitizer()}
}

// Sanitize returns the cleaned markup.
func (s *Sanitizer) Sanitize(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(s.policy.Sanitize(trimmed))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(false)
		policy.AllowAttrs("class").Globally()
		richTextPolicy = policy
	})
	return richTextPolicy
}
