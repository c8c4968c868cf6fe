package dataset

import (
	"regexp"
	"strings"
)

var (
	nonIdentRe   = regexp.MustCompile(`[^a-z0-9_]`)
	repeatedUsRe = regexp.MustCompile(`_+`)
)

// NormalizeName canonicalizes a raw column header into a lowercase
// [a-z0-9_] identifier. The transform is idempotent.
func NormalizeName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = nonIdentRe.ReplaceAllString(name, "_")
	name = repeatedUsRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "unnamed_column"
	}
	return name
}
