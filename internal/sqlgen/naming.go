package sqlgen

import (
	"regexp"
	"strings"
)

// NormalizeName converts a descriptor name (e.g. "ISO3166-1-Alpha-2") into a
// PostgreSQL identifier (e.g. "iso3166_1_alpha_2"): lower case with every
// hyphen replaced by an underscore. NormalizeName(NormalizeName(s)) ==
// NormalizeName(s).
func NormalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
}

// dirOrExt matches a leading directory part or a trailing file extension.
var dirOrExt = regexp.MustCompile(`^.+/|\.\w+$`)

// BaseName strips the directory and the extension from a resource path:
// "data/Country-Codes.csv" becomes "Country-Codes".
func BaseName(path string) string {
	return dirOrExt.ReplaceAllString(path, "")
}
