package naming

import (
	"regexp"
	"strconv"
	"strings"
)

// dimensionPattern matches one generated-size suffix: a hyphen, a digit
// run, a literal x, a digit run (e.g. -1024x768). Names that went through
// repeated processing accumulate several of these.
var dimensionPattern = regexp.MustCompile(`-(\d+)x(\d+)`)

// derivativeMarkers are suffixes the export platform appends to scaled and
// rotated variants. They are unambiguous even mid-name, so the detector
// checks them as substrings of the extension-stripped stem.
var derivativeMarkers = []string{"-scaled", "-rotated"}

// IsDerivative classifies a filename as a generated derivative (thumbnail,
// scaled, or rotated copy) rather than an original. The decision is total
// and deterministic for any string:
//
//  1. Strip the extension(s).
//  2. A -scaled or -rotated marker anywhere in the stem is terminal.
//  3. No dimension suffix at all means the file is a main.
//  4. Otherwise the last dimension suffix controls: when both axes meet
//     the threshold the name is treated as a legitimately large image
//     whose name happens to contain a size (a product code, a camera
//     export), not as a thumbnail.
func (r Ruleset) IsDerivative(filename string) bool {
	stem := r.stripExtensions(filename)

	lower := strings.ToLower(stem)
	for _, marker := range derivativeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	matches := dimensionPattern.FindAllStringSubmatch(stem, -1)
	if len(matches) == 0 {
		return false
	}

	last := matches[len(matches)-1]
	if atLeast(last[1], r.minWidth) && atLeast(last[2], r.minHeight) {
		return false
	}
	return true
}

// atLeast reports whether a digit run names a value >= limit. Runs too
// long for int exceed any configurable threshold, so overflow counts as
// large rather than becoming an error.
func atLeast(digits string, limit int) bool {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return true
	}
	return n >= limit
}
