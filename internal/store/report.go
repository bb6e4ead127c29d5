package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/7urk3r/quotevet/internal/model"
)

// WriteReport persists a validation report as indented JSON.
func WriteReport(path string, report *model.ValidationReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// VerifiedPath derives the filtered-output filename for an input set,
// e.g. quotes.json -> quotes.verified.json.
func VerifiedPath(path string) string {
	if strings.HasSuffix(path, ".json") {
		return strings.TrimSuffix(path, ".json") + ".verified.json"
	}
	return path + ".verified.json"
}

// VerifiedSubset filters a quote set down to the records the validation
// results confirmed as academically verified: an academic source tier,
// exact containment or a fuzzy score at or above minScore on a
// successfully processed document, and no non-academic advisory note.
// Metadata carries over with its counts rewritten for the subset.
func VerifiedSubset(set *model.QuoteSet, results []model.ValidationResult, minScore float64) *model.QuoteSet {
	verified := make(map[int]bool, len(results))
	for _, res := range results {
		if res.Status != model.StatusOK || !res.Tier.IsAcademic() {
			continue
		}
		if strings.Contains(strings.ToLower(res.Notes), "non-academic") {
			continue
		}
		if res.ExactMatch || res.FuzzyScore >= minScore {
			verified[res.QuoteID] = true
		}
	}

	out := &model.QuoteSet{Quotes: []model.QuoteRecord{}}
	for _, q := range set.Quotes {
		if verified[q.ID] {
			out.Quotes = append(out.Quotes, q)
		}
	}

	if set.Metadata != nil {
		meta := make(map[string]interface{}, len(set.Metadata)+2)
		for k, v := range set.Metadata {
			meta[k] = v
		}
		meta["total_quotes"] = len(out.Quotes)
		meta["verification_status"] = fmt.Sprintf("Filtered: %d academically verified quotes", len(out.Quotes))
		out.Metadata = meta
	}
	return out
}

// WriteVerified emits the filtered companion file next to the input set.
func WriteVerified(inputPath string, set *model.QuoteSet, results []model.ValidationResult, minScore float64) (string, error) {
	out := VerifiedSubset(set, results, minScore)
	path := VerifiedPath(inputPath)
	if err := SaveQuoteSet(path, out); err != nil {
		return "", err
	}
	return path, nil
}
