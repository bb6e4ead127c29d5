package classify

import (
	"testing"

	"github.com/7urk3r/quotevet/internal/model"
)

func TestClassify_RuleOrder(t *testing.T) {
	classifier := NewSourceClassifier(nil)

	tests := []struct {
		name        string
		url         string
		contentType string
		want        model.SourceTier
	}{
		{"pdf suffix", "https://example.com/paper.pdf", "", model.TierPDF},
		{"pdf content type", "https://example.com/download?id=7", "application/pdf", model.TierPDF},
		{"pdf suffix wins over journal host", "https://www.nature.com/articles/s41.pdf", "", model.TierPDF},
		{"pmc article", "https://pmc.ncbi.nlm.nih.gov/articles/PMC9999999/", "", model.TierPMC},
		{"pubmed", "https://pubmed.ncbi.nlm.nih.gov/12345678/", "", model.TierPubMed},
		{"doi resolver", "https://doi.org/10.1000/xyz123", "", model.TierDOI},
		{"doi resolver legacy host", "http://dx.doi.org/10.1000/xyz123", "", model.TierDOI},
		{"journal allow-list", "https://www.frontiersin.org/articles/10.3389/full", "", model.TierJournal},
		{"journal subdomain", "https://onlinelibrary.wiley.com/doi/10.1002/abc", "", model.TierJournal},
		{"video", "https://www.youtube.com/watch?v=abc", "", model.TierVideo},
		{"video short host", "https://youtu.be/abc", "", model.TierVideo},
		{"generic web", "https://www.some-blog.example/post/7", "", model.TierGenericWeb},
		{"empty url", "", "", model.TierGenericWeb},
		{"garbage url", "::::not a url::::", "", model.TierGenericWeb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.url, tt.contentType)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.url, tt.contentType, got, tt.want)
			}
		})
	}
}

func TestClassify_IsPure(t *testing.T) {
	classifier := NewSourceClassifier(nil)
	url := "https://pubmed.ncbi.nlm.nih.gov/555/"
	first := classifier.Classify(url, "")
	for i := 0; i < 3; i++ {
		if got := classifier.Classify(url, ""); got != first {
			t.Fatalf("classification not deterministic: %v != %v", got, first)
		}
	}
}

func TestClassify_CustomConfig(t *testing.T) {
	classifier := NewSourceClassifier(&model.ClassifierConfig{
		JournalDomains: []string{"journal.test"},
	})

	if got := classifier.Classify("https://sub.journal.test/a", ""); got != model.TierJournal {
		t.Errorf("expected journal tier, got %v", got)
	}
	// Defaults are not inherited by a custom config
	if got := classifier.Classify("https://www.nature.com/articles/1", ""); got != model.TierGenericWeb {
		t.Errorf("expected generic web for unlisted host, got %v", got)
	}
}

func TestTier_IsAcademic(t *testing.T) {
	academic := []model.SourceTier{model.TierPDF, model.TierPMC, model.TierPubMed, model.TierDOI, model.TierJournal}
	for _, tier := range academic {
		if !tier.IsAcademic() {
			t.Errorf("expected %v to be academic", tier)
		}
	}
	for _, tier := range []model.SourceTier{model.TierVideo, model.TierGenericWeb} {
		if tier.IsAcademic() {
			t.Errorf("expected %v to be non-academic", tier)
		}
	}
}
