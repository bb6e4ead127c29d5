package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/7urk3r/quotevet/internal/model"
)

func TestLoadQuoteSet_MissingFileIsEmptySet(t *testing.T) {
	set, err := LoadQuoteSet(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Quotes) != 0 {
		t.Errorf("expected empty set, got %d quotes", len(set.Quotes))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	in := &model.QuoteSet{
		Metadata: map[string]interface{}{"version": "2.0"},
		Quotes: []model.QuoteRecord{
			{ID: 3, EntityName: "BPC-157", QuoteText: "quote text", SourceURL: "https://doi.org/10.1/x", Provenance: model.ProvenanceApproved},
		},
	}

	if err := SaveQuoteSet(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := LoadQuoteSet(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Quotes) != 1 || out.Quotes[0].ID != 3 || out.Quotes[0].EntityName != "BPC-157" {
		t.Errorf("round trip mismatch: %+v", out.Quotes)
	}
	if out.Metadata["version"] != "2.0" {
		t.Errorf("metadata lost: %+v", out.Metadata)
	}
}

func TestSaveQuoteSet_EmptySetWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	if err := SaveQuoteSet(path, &model.QuoteSet{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse: %v", err)
	}
	// downstream consumers expect "quotes": [], not null
	if string(raw["quotes"]) == "null" {
		t.Error(`empty set serialized "quotes" as null`)
	}
}

func TestSaveQuoteSet_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := SaveQuoteSet(filepath.Join(dir, "quotes.json"), &model.QuoteSet{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "quotes.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected directory contents: %v", names)
	}
}

func TestLoadQuoteSet_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadQuoteSet(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestVerifiedPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"data/quotes.json", "data/quotes.verified.json"},
		{"quotes", "quotes.verified.json"},
	}
	for _, tt := range cases {
		if got := VerifiedPath(tt.in); got != tt.want {
			t.Errorf("VerifiedPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerifiedSubset(t *testing.T) {
	set := &model.QuoteSet{Quotes: []model.QuoteRecord{
		{ID: 1, QuoteText: "exact"},
		{ID: 2, QuoteText: "fuzzy good"},
		{ID: 3, QuoteText: "fuzzy weak"},
		{ID: 4, QuoteText: "fetch failed"},
		{ID: 5, QuoteText: "never validated"},
	}}
	results := []model.ValidationResult{
		{QuoteID: 1, Status: model.StatusOK, Tier: model.TierPMC, ExactMatch: true, FuzzyScore: 1.0},
		{QuoteID: 2, Status: model.StatusOK, Tier: model.TierJournal, FuzzyScore: 0.95},
		{QuoteID: 3, Status: model.StatusOK, Tier: model.TierPMC, FuzzyScore: 0.42},
		{QuoteID: 4, Status: model.StatusFetchFailed, Tier: model.TierPMC, FuzzyScore: 1.0},
	}

	out := VerifiedSubset(set, results, 0.9)
	if len(out.Quotes) != 2 {
		t.Fatalf("expected 2 verified quotes, got %d: %+v", len(out.Quotes), out.Quotes)
	}
	if out.Quotes[0].ID != 1 || out.Quotes[1].ID != 2 {
		t.Errorf("wrong records verified: %+v", out.Quotes)
	}
}

func TestVerifiedSubset_RequiresAcademicTier(t *testing.T) {
	set := &model.QuoteSet{Quotes: []model.QuoteRecord{
		{ID: 1, QuoteText: "blog quote"},
		{ID: 2, QuoteText: "video quote"},
		{ID: 3, QuoteText: "flagged quote"},
		{ID: 4, QuoteText: "journal quote"},
	}}
	results := []model.ValidationResult{
		// scores well, but a generic-web page is not a verifiable source
		{QuoteID: 1, Status: model.StatusOK, Tier: model.TierGenericWeb, FuzzyScore: 0.95},
		{QuoteID: 2, Status: model.StatusOK, Tier: model.TierVideo, ExactMatch: true, FuzzyScore: 1.0},
		{QuoteID: 3, Status: model.StatusOK, Tier: model.TierJournal, FuzzyScore: 0.95, Notes: "non-academic source detected"},
		{QuoteID: 4, Status: model.StatusOK, Tier: model.TierJournal, FuzzyScore: 0.95},
	}

	out := VerifiedSubset(set, results, 0.9)
	if len(out.Quotes) != 1 || out.Quotes[0].ID != 4 {
		t.Fatalf("expected only the journal quote, got %+v", out.Quotes)
	}
}

func TestVerifiedSubset_RewritesMetadataCounts(t *testing.T) {
	set := &model.QuoteSet{
		Metadata: map[string]interface{}{"version": "2.0", "total_quotes": float64(3)},
		Quotes: []model.QuoteRecord{
			{ID: 1, QuoteText: "kept"},
			{ID: 2, QuoteText: "dropped"},
			{ID: 3, QuoteText: "dropped too"},
		},
	}
	results := []model.ValidationResult{
		{QuoteID: 1, Status: model.StatusOK, Tier: model.TierPMC, ExactMatch: true, FuzzyScore: 1.0},
		{QuoteID: 2, Status: model.StatusOK, Tier: model.TierPMC, FuzzyScore: 0.1},
		{QuoteID: 3, Status: model.StatusFetchFailed, Tier: model.TierPMC},
	}

	out := VerifiedSubset(set, results, 0.9)
	if out.Metadata["total_quotes"] != 1 {
		t.Errorf("total_quotes = %v, want 1", out.Metadata["total_quotes"])
	}
	if out.Metadata["verification_status"] != "Filtered: 1 academically verified quotes" {
		t.Errorf("verification_status = %v", out.Metadata["verification_status"])
	}
	if out.Metadata["version"] != "2.0" {
		t.Errorf("unrelated metadata lost: %+v", out.Metadata)
	}
	// the input set's metadata must stay untouched
	if set.Metadata["total_quotes"] != float64(3) {
		t.Errorf("input metadata mutated: %+v", set.Metadata)
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := &model.ValidationReport{
		Files: []model.FileSummary{{File: "quotes.json", Count: 1}},
		Results: []model.ValidationResult{
			{QuoteID: 1, SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC9/", Tier: model.TierPMC, Status: model.StatusOK, FuzzyScore: 1.0, ExactMatch: true},
		},
	}
	if err := WriteReport(path, report); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back model.ValidationReport
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("parse written report: %v", err)
	}
	if len(back.Results) != 1 || back.Results[0].Status != model.StatusOK {
		t.Errorf("report round trip mismatch: %+v", back)
	}
}
