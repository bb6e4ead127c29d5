package normalize

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode turns raw bytes into a string, trying UTF-8 first and falling
// back to Latin-1. It never fails: every byte sequence is valid Latin-1,
// so the worst case is lossy text rather than an error.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
