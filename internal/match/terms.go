package match

import "strings"

// AnyWord reports whether any of the terms occurs in s bounded by
// non-alphanumeric characters. Plain substring search is wrong for short
// context markers: "rat" occurs inside "tolerated".
func AnyWord(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && containsWord(s, term) {
			return true
		}
	}
	return false
}

func containsWord(s, term string) bool {
	for start := 0; start <= len(s)-len(term); {
		idx := strings.Index(s[start:], term)
		if idx < 0 {
			return false
		}
		i := start + idx
		j := i + len(term)
		if (i == 0 || !isWordByte(s[i-1])) && (j >= len(s) || !isWordByte(s[j])) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
