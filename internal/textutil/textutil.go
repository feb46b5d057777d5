// Package textutil holds the small string helpers the core treats as
// an external collaborator (§1).
//
// Grounded on original_source/compiler/src/utils/string_utils.cpp.
package textutil

import "strings"

// Trim removes leading and trailing whitespace, matching the
// original's Trim (isspace on both ends).
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Split splits s on delim, mirroring the original's Split: unlike
// strings.Split, a trailing delimiter does not produce a final empty
// element.
func Split(s string, delim byte) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, string(delim))
	if s[len(s)-1] == delim {
		parts = parts[:len(parts)-1]
	}
	return parts
}
