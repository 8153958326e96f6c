package naming

import "strings"

// Default classification rules. These mirror the naming convention of the
// content-management exports the tool was built for.
var (
	// DefaultExtensions are the filename suffixes treated as images.
	DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp", ".tiff", ".tif"}

	// DefaultInnerExtensions are the extensions recognized inside a
	// double-extension name such as photo.jpg.webp, where stripping the
	// outer extension still leaves an image extension behind.
	DefaultInnerExtensions = []string{".jpg", ".jpeg", ".png"}
)

const (
	// DefaultMinWidth is the width at which a trailing dimension suffix is
	// treated as part of a legitimately large image name rather than a
	// generated thumbnail.
	DefaultMinWidth = 1000

	// DefaultMinHeight is the height counterpart of DefaultMinWidth.
	DefaultMinHeight = 1000
)

// Ruleset is the classification and matching engine. It is a value type
// with no mutable state: every method is a pure function of its inputs,
// so a single Ruleset can be shared by concurrent folder workers.
type Ruleset struct {
	// extensions are the recognized image suffixes, lowered at construction.
	extensions []string

	// innerExts are the double-extension inner candidates, lowered.
	innerExts map[string]struct{}

	// minWidth and minHeight form the dimension threshold: a final
	// -WxH suffix meeting both keeps the file classified as main.
	minWidth  int
	minHeight int
}

// NewRuleset builds a Ruleset from configured extensions and thresholds.
// Extensions are lowered once here so all later checks are case-insensitive.
func NewRuleset(extensions, innerExtensions []string, minWidth, minHeight int) Ruleset {
	rs := Ruleset{
		extensions: make([]string, 0, len(extensions)),
		innerExts:  make(map[string]struct{}, len(innerExtensions)),
		minWidth:   minWidth,
		minHeight:  minHeight,
	}
	for _, ext := range extensions {
		rs.extensions = append(rs.extensions, strings.ToLower(ext))
	}
	for _, ext := range innerExtensions {
		rs.innerExts[strings.ToLower(ext)] = struct{}{}
	}
	return rs
}

// DefaultRuleset returns a Ruleset using the default convention.
func DefaultRuleset() Ruleset {
	return NewRuleset(DefaultExtensions, DefaultInnerExtensions, DefaultMinWidth, DefaultMinHeight)
}

// IsImage reports whether the filename carries a recognized image
// extension. This is a case-insensitive suffix test, so a bare ".jpg"
// counts as an image even though extension stripping treats the dot as
// part of the stem.
func (r Ruleset) IsImage(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range r.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// stripExtensions removes the primary extension and, when the remainder
// still ends in a known inner image extension, that one too.
func (r Ruleset) stripExtensions(filename string) string {
	stem, _ := splitExt(filename)
	inner, ext := splitExt(stem)
	if _, ok := r.innerExts[strings.ToLower(ext)]; ok {
		return inner
	}
	return stem
}

// splitExt splits a filename into stem and extension. A name only has an
// extension when a non-dot character precedes its last dot: ".jpg" is a
// stem with no extension, "a..jpg" splits into "a." and ".jpg".
func splitExt(name string) (stem, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name, ""
	}
	for i := 0; i < dot; i++ {
		if name[i] != '.' {
			return name[:dot], name[dot:]
		}
	}
	return name, ""
}
