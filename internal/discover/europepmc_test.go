package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const epmcFixture = `{
  "resultList": {
    "result": [
      {"pmcid": "PMC1234567", "title": "BPC-157 in tendon healing", "authorString": "Smith J, Doe A.", "pubYear": "2021"},
      {"title": "No full text available", "authorString": "Roe B.", "pubYear": "2019"},
      {"pmcid": "PMC7654321", "title": "Pentadecapeptide outcomes", "authorString": "Lee K.", "pubYear": "2023"}
    ]
  }
}`

func TestEuropePMC_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("format = %q, want json", r.URL.Query().Get("format"))
		}
		if r.URL.Query().Get("pageSize") != "25" {
			t.Errorf("pageSize = %q, want 25", r.URL.Query().Get("pageSize"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(epmcFixture))
	}))
	defer server.Close()

	provider := NewEuropePMC(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	candidates, err := provider.Search(context.Background(), "BPC-157", []string{"pentadecapeptide bpc157"}, 25)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	// the record without a PMCID is skipped
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	first := candidates[0]
	if first.URL != "https://pmc.ncbi.nlm.nih.gov/articles/PMC1234567/" {
		t.Errorf("unexpected candidate URL %q", first.URL)
	}
	if first.Title != "BPC-157 in tendon healing" || first.Authors != "Smith J, Doe A." || first.Year != "2021" {
		t.Errorf("citation metadata mismatch: %+v", first)
	}

	for _, want := range []string{"BPC-157 OR pentadecapeptide bpc157", "OPEN_ACCESS:y", "patients OR clinical"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestEuropePMC_TopicClause(t *testing.T) {
	p := NewEuropePMC()
	q := p.buildQuery("AHK-Cu", nil)
	if !strings.Contains(q, "dermal") {
		t.Errorf("AHK-Cu query missing dermal topic clause: %q", q)
	}
	if q2 := p.buildQuery("BPC-157", nil); strings.Contains(q2, "dermal") {
		t.Errorf("topic clause leaked into unrelated query: %q", q2)
	}
}

func TestEuropePMC_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewEuropePMC(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if _, err := provider.Search(context.Background(), "BPC-157", nil, 10); err == nil {
		t.Error("expected error for HTTP 502")
	}
}

func TestEuropePMC_EmptyResultIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultList": {"result": []}}`))
	}))
	defer server.Close()

	provider := NewEuropePMC(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	candidates, err := provider.Search(context.Background(), "obscure-entity", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %+v", candidates)
	}
}
