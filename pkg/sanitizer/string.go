// Package sanitizer normalizes free-text input before validation and lookup.
// All functions are idempotent and return the empty string on all-whitespace
// input rather than erroring.
package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeRoomKey folds a free-text room name to the catalog's canonical
// key form: whitespace collapsed, lowercased. "ada  lovelace" and
// "Ada Lovelace" fold to the same key.
func NormalizeRoomKey(name string) string {
	return strings.ToLower(TrimAndNormalize(name))
}

func NormalizeGroupName(name string) string {
	return TrimAndNormalize(name)
}
