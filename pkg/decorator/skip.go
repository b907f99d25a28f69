package decorator

import "strings"

// Markers used by the media and link widgets for the controls they populate.
const (
	MarkerMedia = "REX_MEDIA"
	MarkerLink  = "REX_LINK"
)

// SkipPolicy lists id substrings that identify controls owned by another
// widget. Matching is case-sensitive substring containment.
type SkipPolicy struct {
	markers []string
}

// DefaultSkipPolicy skips media and link controls.
func DefaultSkipPolicy() SkipPolicy {
	return NewSkipPolicy(MarkerMedia, MarkerLink)
}

// NewSkipPolicy builds a policy from the provided markers. Blank and
// duplicate markers are dropped; order is kept.
func NewSkipPolicy(markers ...string) SkipPolicy {
	out := make([]string, 0, len(markers))
	seen := make(map[string]struct{}, len(markers))
	for _, marker := range markers {
		trimmed := strings.TrimSpace(marker)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return SkipPolicy{markers: out}
}

// Match returns the first marker contained in id.
func (p SkipPolicy) Match(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, marker := range p.markers {
		if strings.Contains(id, marker) {
			return marker, true
		}
	}
	return "", false
}

// Markers returns a copy of the configured markers.
func (p SkipPolicy) Markers() []string {
	return append([]string(nil), p.markers...)
}

// With returns a policy extended with extra markers.
func (p SkipPolicy) With(markers ...string) SkipPolicy {
	return NewSkipPolicy(append(p.Markers(), markers...)...)
}
