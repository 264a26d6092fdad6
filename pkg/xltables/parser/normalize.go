// Package parser decodes workbooks into cell grids and locates the informal
// tables embedded in them.
package parser

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes cell text for name comparison: surrounding
// whitespace is trimmed, letters are upper-cased and trailing '=' signs are
// dropped, so a header rendered as "DISCOUNT RATE =" compares equal to
// "discount rate".
func Normalize(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.TrimRight(s, "=")
	return strings.TrimSpace(s)
}

// isTableName reports whether s reads as an upper-case header: it must
// contain at least one cased letter and no lower-case ones.
func isTableName(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
