package media

import (
	"regexp"
	"strings"
)

var (
	nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRun = regexp.MustCompile(`[\s-]+`)
)

// SafeTitle derives a filesystem-safe base name from a human-readable title:
// everything outside word characters, whitespace and hyphens is stripped,
// runs of whitespace/hyphens become single underscores, and leading/trailing
// underscores are trimmed.
func SafeTitle(name string) string {
	name = nonWordChars.ReplaceAllString(name, "")
	name = separatorRun.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
