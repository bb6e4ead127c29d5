// Package match locates a short needle string inside a much larger
// haystack, returning a confidence score in [0,1] and an excerpt window
// around the best match.
package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/7urk3r/quotevet/internal/normalize"
)

const (
	// excerptPad is how many characters of original context surround a match
	excerptPad = 80
	// minWindow / minStep bound the approximate scan so cost stays
	// O(len(haystack)/step) similarity computations.
	minWindow = 1000
	minStep   = 20
)

// Normalize collapses whitespace and case-folds a string for matching.
// The same form is used for curation dedup keys.
func Normalize(s string) string {
	return strings.ToLower(normalize.Whitespace(s))
}

// Locate returns a fuzzy containment score for needle inside haystack and,
// when something was found, an excerpt from the original haystack around
// the best match. Score 1.0 is returned only for exact (case/whitespace
// insensitive) substring containment.
func Locate(needle, haystack string) (float64, string) {
	if needle == "" || haystack == "" {
		return 0.0, ""
	}

	n := Normalize(needle)
	h := Normalize(haystack)
	if n == "" || h == "" {
		return 0.0, ""
	}

	if idx := strings.Index(h, n); idx >= 0 {
		start := clamp(idx-excerptPad, 0, len(haystack))
		end := clamp(idx+len(needle)+excerptPad, 0, len(haystack))
		return 1.0, haystack[start:end]
	}

	return scanWindows(n, h, haystack)
}

// scanWindows slides a window across the normalized haystack and keeps the
// best sequence-matcher ratio against the normalized needle. The winning
// window is mapped back to original-text coordinates for the excerpt.
func scanWindows(n, h, haystack string) (float64, string) {
	step := len(n) / 4
	if step < minStep {
		step = minStep
	}
	window := len(n) + 200
	if window < minWindow {
		window = minWindow
	}
	if window > len(h) {
		window = len(h)
	}

	needleChars := strings.Split(n, "")

	best := 0.0
	bestStart, bestEnd := -1, -1
	for i := 0; i < len(h); i += step {
		end := i + window
		if end > len(h) {
			end = len(h)
		}
		segment := h[i:end]
		matcher := difflib.NewMatcher(needleChars, strings.Split(segment, ""))
		if ratio := matcher.Ratio(); ratio > best {
			best = ratio
			bestStart, bestEnd = i, end
		}
	}

	if bestStart < 0 {
		return best, ""
	}
	start := clamp(bestStart-excerptPad, 0, len(haystack))
	end := clamp(bestEnd+excerptPad, 0, len(haystack))
	return best, haystack[start:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
