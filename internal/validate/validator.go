// Package validate checks that each quote record actually appears in the
// document its source URL points at.
package validate

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/7urk3r/quotevet/internal/classify"
	"github.com/7urk3r/quotevet/internal/match"
	"github.com/7urk3r/quotevet/internal/model"
	"github.com/7urk3r/quotevet/internal/normalize"
)

// maxExcerptLen bounds the matched-excerpt field in report output.
const maxExcerptLen = 400

// hintKeywords in a record's source-type hint suppress the non-academic
// note for weaker tiers.
var hintKeywords = []string{"journal", "clinical", "trial", "fda", "review"}

// FetchFunc retrieves a document. statusNote describes a failure in
// report vocabulary ("HTTP 404", "timeout") and accompanies a non-nil err.
type FetchFunc func(ctx context.Context, url string) (body []byte, contentType string, statusNote string, err error)

// Validator runs one quote record through fetch, extraction and fuzzy
// location, producing a report result. It never mutates the record.
type Validator struct {
	classifier *classify.SourceClassifier
	normalizer *normalize.Normalizer
	fetch      FetchFunc
}

// NewValidator creates a validator around a fetch collaborator. Nil
// classifier or normalizer use defaults.
func NewValidator(classifier *classify.SourceClassifier, normalizer *normalize.Normalizer, fetch FetchFunc) *Validator {
	if classifier == nil {
		classifier = classify.NewSourceClassifier(nil)
	}
	if normalizer == nil {
		normalizer = normalize.New(0)
	}
	return &Validator{classifier: classifier, normalizer: normalizer, fetch: fetch}
}

// ValidateQuote verifies one record against its source document. All
// failures are captured in the result's status and notes; the error
// channel is reserved for programming mistakes, so there is none.
func (v *Validator) ValidateQuote(ctx context.Context, q model.QuoteRecord) model.ValidationResult {
	result := model.ValidationResult{
		QuoteID:        q.ID,
		SourceURL:      q.SourceURL,
		SourceTypeHint: q.SourceType,
		EntityName:     q.EntityName,
		QuoteText:      q.QuoteText,
	}

	body, contentType, statusNote, err := v.fetch(ctx, q.SourceURL)
	if err != nil {
		result.Tier = v.classifier.Classify(q.SourceURL, "")
		result.Status = model.StatusFetchFailed
		result.Notes = "could not fetch source (" + result.Tier.String() + ")"
		if statusNote != "" {
			result.Notes += ": " + statusNote
		}
		return result
	}

	result.ContentType = contentType
	result.Tier = v.classifier.Classify(q.SourceURL, contentType)

	// An empty body is a failed fetch, not a document with no match.
	if len(body) == 0 {
		result.Status = model.StatusFetchFailed
		result.Notes = "empty document from source (" + result.Tier.String() + ")"
		return result
	}

	text, err := v.normalizer.Normalize(body, contentType, result.Tier)
	if err != nil {
		result.Status = model.StatusUnparseable
		if errors.Is(err, normalize.ErrUnparseable) {
			result.Notes = "could not extract text from document"
		} else {
			result.Notes = "extraction failed: " + err.Error()
		}
		return result
	}

	score, excerpt := match.Locate(q.QuoteText, text)
	result.FuzzyScore = math.Round(score*1000) / 1000
	result.ExactMatch = score >= 0.999
	if len(excerpt) > maxExcerptLen {
		excerpt = excerpt[:maxExcerptLen]
	}
	result.MatchedExcerpt = excerpt
	result.Status = model.StatusOK

	if !result.ExactMatch && !result.Tier.IsAcademic() && !hintLooksAcademic(q.SourceType) {
		result.Notes = appendNote(result.Notes, "non-academic source detected")
	}
	return result
}

func hintLooksAcademic(hint string) bool {
	lower := strings.ToLower(hint)
	for _, kw := range hintKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " | " + note
}
