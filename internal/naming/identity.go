package naming

import (
	"regexp"
	"strings"
)

// trailingMarkerPattern strips one -scaled/-rotated suffix from the end of
// a stem. Identity extraction is stricter than detection here: a marker in
// the middle of a name stays part of the identity.
var trailingMarkerPattern = regexp.MustCompile(`(?i)-(?:scaled|rotated)$`)

// hyphenRunPattern matches runs of two or more hyphens left behind by
// suffix removal or sloppy renames.
var hyphenRunPattern = regexp.MustCompile(`-{2,}`)

// BaseIdentity derives the canonical comparison stem of a filename:
// extensions stripped, every dimension suffix removed, a trailing
// scaled/rotated marker dropped, underscores unified to hyphens, hyphen
// runs collapsed, and a trailing hyphen trimmed.
//
// The result preserves case; callers case-fold when comparing. Two names
// with equal identities are candidates for "the same logical image", and
// collisions are intentional: they are what the matcher runs on.
func (r Ruleset) BaseIdentity(filename string) string {
	stem := r.stripExtensions(filename)
	stem = dimensionPattern.ReplaceAllString(stem, "")
	stem = trailingMarkerPattern.ReplaceAllString(stem, "")
	stem = strings.ReplaceAll(stem, "_", "-")
	stem = hyphenRunPattern.ReplaceAllString(stem, "-")
	return strings.TrimSuffix(stem, "-")
}
