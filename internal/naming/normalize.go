package naming

import "strings"

// NormalizeFilename repairs separator artifacts that sloppy renames and
// suffix stripping leave behind: runs of hyphens collapse to one, and an
// underscore stuck against the extension dot (`photo_.jpg`) is dropped.
//
// Unlike BaseIdentity this works on the full filename, extension included,
// and keeps underscores elsewhere in the name: it produces the name a file
// should actually have on disk, not a comparison key.
func NormalizeFilename(filename string) string {
	name := hyphenRunPattern.ReplaceAllString(filename, "-")
	return strings.ReplaceAll(name, "_.", ".")
}
