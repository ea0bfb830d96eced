package article

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips unsafe markup from extracted HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

// PolicySanitizer sanitizes with a bluemonday policy.
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer for user generated content: formatting,
// links and images are kept; scripts, styles, event handler attributes and
// javascript: URLs are removed.
func NewSanitizer() *PolicySanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("datetime").OnElements("time")
	policy.AllowElements("figure", "figcaption", "picture")

	return &PolicySanitizer{policy: policy}
}

// Sanitize returns html with unsafe markup removed.
func (s *PolicySanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
