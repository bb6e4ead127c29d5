package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/7urk3r/quotevet/internal/model"
)

const quoteText = "BPC-157 significantly accelerated tendon healing in treated patients."

func fetchHTML(page string) FetchFunc {
	return func(ctx context.Context, url string) ([]byte, string, string, error) {
		return []byte(page), "text/html; charset=utf-8", "", nil
	}
}

func TestValidateQuote_ExactMatch(t *testing.T) {
	page := "<html><body><p>Background text.</p><p>" + quoteText + "</p></body></html>"
	v := NewValidator(nil, nil, fetchHTML(page))

	result := v.ValidateQuote(context.Background(), model.QuoteRecord{
		ID:        1,
		QuoteText: quoteText,
		SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC123/",
	})

	if result.Status != model.StatusOK {
		t.Fatalf("status = %v, want ok (notes: %s)", result.Status, result.Notes)
	}
	if !result.ExactMatch || result.FuzzyScore != 1.0 {
		t.Errorf("exact=%v score=%v, want exact at 1.0", result.ExactMatch, result.FuzzyScore)
	}
	if result.Tier != model.TierPMC {
		t.Errorf("tier = %v, want pmc_html", result.Tier)
	}
	if !strings.Contains(strings.ToLower(result.MatchedExcerpt), "tendon healing") {
		t.Errorf("excerpt does not cover quote: %q", result.MatchedExcerpt)
	}
	if result.Notes != "" {
		t.Errorf("unexpected notes on academic exact match: %q", result.Notes)
	}
}

func TestValidateQuote_FetchFailed(t *testing.T) {
	fetch := func(ctx context.Context, url string) ([]byte, string, string, error) {
		return nil, "", "HTTP 404", errors.New("not found")
	}
	v := NewValidator(nil, nil, fetch)

	result := v.ValidateQuote(context.Background(), model.QuoteRecord{
		ID:        2,
		QuoteText: quoteText,
		SourceURL: "https://doi.org/10.1000/gone",
	})

	if result.Status != model.StatusFetchFailed {
		t.Fatalf("status = %v, want fetch_failed", result.Status)
	}
	if result.Tier != model.TierDOI {
		t.Errorf("tier = %v, want doi_landing", result.Tier)
	}
	if !strings.Contains(result.Notes, "HTTP 404") {
		t.Errorf("notes missing fetch status: %q", result.Notes)
	}
	if result.FuzzyScore != 0 || result.ExactMatch {
		t.Errorf("failed fetch should not score: %+v", result)
	}
}

func TestValidateQuote_EmptyBodyIsFetchFailure(t *testing.T) {
	fetch := func(ctx context.Context, url string) ([]byte, string, string, error) {
		return []byte{}, "text/html", "", nil
	}
	v := NewValidator(nil, nil, fetch)

	result := v.ValidateQuote(context.Background(), model.QuoteRecord{
		ID:        7,
		QuoteText: quoteText,
		SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC42/",
	})

	if result.Status != model.StatusFetchFailed {
		t.Fatalf("status = %v, want fetch_failed for empty body", result.Status)
	}
	if !strings.Contains(result.Notes, "empty document") {
		t.Errorf("notes = %q, want empty-document explanation", result.Notes)
	}
	if result.FuzzyScore != 0 || result.ExactMatch {
		t.Errorf("empty body should not score: %+v", result)
	}
}

func TestValidateQuote_UnparseablePDF(t *testing.T) {
	fetch := func(ctx context.Context, url string) ([]byte, string, string, error) {
		return []byte("this is not a pdf"), "application/pdf", "", nil
	}
	v := NewValidator(nil, nil, fetch)

	result := v.ValidateQuote(context.Background(), model.QuoteRecord{
		ID:        3,
		QuoteText: quoteText,
		SourceURL: "https://example.org/paper.pdf",
	})

	if result.Status != model.StatusUnparseable {
		t.Fatalf("status = %v, want unparseable", result.Status)
	}
	if result.Tier != model.TierPDF {
		t.Errorf("tier = %v, want pdf", result.Tier)
	}
}

func TestValidateQuote_NonAcademicNote(t *testing.T) {
	page := "<html><body><p>A blog post about peptides in general.</p></body></html>"

	cases := []struct {
		name     string
		hint     string
		wantNote bool
	}{
		{"no hint", "", true},
		{"unrelated hint", "Marketing Page", true},
		{"journal hint suppresses note", "Peer-Reviewed Journal", false},
		{"trial hint suppresses note", "Clinical Trial Registry", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(nil, nil, fetchHTML(page))
			result := v.ValidateQuote(context.Background(), model.QuoteRecord{
				ID:         4,
				QuoteText:  quoteText,
				SourceURL:  "https://someblog.example.com/post",
				SourceType: tt.hint,
			})

			if result.Status != model.StatusOK {
				t.Fatalf("status = %v, want ok", result.Status)
			}
			hasNote := strings.Contains(result.Notes, "non-academic source detected")
			if hasNote != tt.wantNote {
				t.Errorf("notes = %q, wantNote=%v", result.Notes, tt.wantNote)
			}
		})
	}
}

func TestValidateQuote_ExactMatchSuppressesNonAcademicNote(t *testing.T) {
	page := "<html><body><p>" + quoteText + "</p></body></html>"
	v := NewValidator(nil, nil, fetchHTML(page))

	result := v.ValidateQuote(context.Background(), model.QuoteRecord{
		ID:        5,
		QuoteText: quoteText,
		SourceURL: "https://someblog.example.com/post",
	})

	if !result.ExactMatch {
		t.Fatalf("expected exact match, got score %v", result.FuzzyScore)
	}
	if strings.Contains(result.Notes, "non-academic") {
		t.Errorf("exact match should suppress the note: %q", result.Notes)
	}
}

func TestValidateQuote_ExcerptCapped(t *testing.T) {
	long := strings.Repeat("tendon healing outcomes improved across cohorts ", 30)
	page := "<html><body><p>" + long + quoteText + long + "</p></body></html>"
	v := NewValidator(nil, nil, fetchHTML(page))

	result := v.ValidateQuote(context.Background(), model.QuoteRecord{
		ID:        6,
		QuoteText: quoteText,
		SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC9/",
	})

	if len(result.MatchedExcerpt) > 400 {
		t.Errorf("excerpt length %d exceeds cap", len(result.MatchedExcerpt))
	}
	if result.MatchedExcerpt == "" {
		t.Error("expected a non-empty excerpt")
	}
}
