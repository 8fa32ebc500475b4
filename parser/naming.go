package parser

import (
	"regexp"
	"strings"
)

var (
	wordBoundaryRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerToUpperRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// UpperSnake converts a CamelCase identifier to UPPER_SNAKE_CASE, e.g.
// "Sha256HashAll" -> "SHA256_HASH_ALL" and "HashApiLib" -> "HASH_API_LIB".
func UpperSnake(name string) string {
	s := wordBoundaryRe.ReplaceAllString(name, "${1}_${2}")
	s = lowerToUpperRe.ReplaceAllString(s, "${1}_${2}")
	return strings.ToUpper(s)
}
