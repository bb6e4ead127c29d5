// Package normalize converts raw document bytes (HTML or PDF) into
// normalized plain text.
package normalize

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnparseable marks documents whose text could not be extracted.
// Callers degrade the record to an unparseable status instead of aborting
// the batch.
var ErrUnparseable = errors.New("unparseable document")

// Whitespace collapses runs of whitespace (including newlines) into single
// spaces and trims the result.
func Whitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
