// Package normalize provides the pure string utilities used for chain
// detection, stable favorite keys and category alias resolution.
package normalize

import "strings"

// Normalize lowercases s and drops every rune that is not an ASCII letter or digit.
// The result always matches ^[a-z0-9]*$.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// StableKey derives the favorite key of a business from its name and address.
// It stays the same across imports that reassign numeric ids.
func StableKey(name, address string) string {
	return Normalize(name) + "|" + Normalize(address)
}

// Fold trims and lowercases s for case-insensitive substring filters.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
