package pathutil

import (
	"regexp"
	"strings"
)

// MaxNameLength is the maximum length of a derived figure name.
const MaxNameLength = 80

var (
	reRepeatedHyphens     = regexp.MustCompile(`-{2,}`)
	reRepeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

// SafeName reduces s to a file name made of [a-zA-Z0-9._-], replacing other
// runs of characters with a single underscore, collapsing repeated hyphens
// and underscores, and truncating to MaxNameLength.
func SafeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := reRepeatedHyphens.ReplaceAllString(b.String(), "-")
	out = reRepeatedUnderscores.ReplaceAllString(out, "_")
	out = strings.Trim(out, "._")

	if len(out) > MaxNameLength {
		out = out[:MaxNameLength]
	}
	return out
}
