package util

import (
	"regexp"
	"strings"
	"unicode"
)

var unsafeFilenameRegex = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename replaces every character outside [a-zA-Z0-9._-] with an
// underscore, making an uploaded filename safe to store on disk.
func SanitizeFilename(name string) string {
	return unsafeFilenameRegex.ReplaceAllString(name, "_")
}

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
