// Package slug derives filesystem-safe identifiers from industry names.
package slug

import (
	"regexp"
	"strings"
)

// Letters and digits from any script count as word characters.
var (
	nonWord   = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]`)
	separator = regexp.MustCompile(`[-\s\p{Z}]+`)
)

// Make lower-cases name, strips non-word characters, collapses whitespace and
// hyphen runs into "_" and trims leading/trailing separators.
//
//	Make("Hair Salons")               == "hair_salons"
//	Make("Dentists & Orthodontists!") == "dentists_orthodontists"
func Make(name string) string {
	s := strings.ToLower(name)
	s = nonWord.ReplaceAllString(s, "")
	s = separator.ReplaceAllString(s, "_")
	return strings.Trim(s, "-_")
}
