package domain

import "strings"

// NormalizeISBN canonicalizes a book identifier: trims, upper-cases and
// strips hyphens and spaces. The result is accepted only as a 13-digit
// ISBN-13 or as a 10-character ISBN-10 (nine digits followed by a digit
// or X). Checksums are not verified.
func NormalizeISBN(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	s = strings.NewReplacer("-", "", " ", "").Replace(s)

	for _, r := range s {
		if (r < '0' || r > '9') && r != 'X' {
			return "", false
		}
	}

	switch len(s) {
	case 13:
		if allDigits(s) {
			return s, true
		}
	case 10:
		last := s[9]
		if allDigits(s[:9]) && (last == 'X' || (last >= '0' && last <= '9')) {
			return s, true
		}
	}
	return "", false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
