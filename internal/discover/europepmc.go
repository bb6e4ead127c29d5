package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultEPMCBase     = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"
	defaultEPMCPageSize = 25

	// humanClause keeps results in clinical territory at search time;
	// the ranker still filters animal context sentence by sentence.
	humanClause = "(human OR humans OR patient OR patients OR clinical OR randomized OR trial)"
)

// topicClauses narrows queries for entities whose names collide with
// unrelated literature.
var topicClauses = map[string]string{
	"ahk-cu": "(hair OR skin OR dermal OR dermis)",
	"ahk cu": "(hair OR skin OR dermal OR dermis)",
}

// EuropePMC searches the Europe PMC REST API for open-access papers and
// points candidates at their PMC article pages.
type EuropePMC struct {
	client  *http.Client
	baseURL string
}

// EuropePMCOption configures the provider.
type EuropePMCOption func(*EuropePMC)

// WithHTTPClient substitutes the HTTP client, primarily for tests.
func WithHTTPClient(client *http.Client) EuropePMCOption {
	return func(p *EuropePMC) { p.client = client }
}

// WithBaseURL points the provider at a different search endpoint.
func WithBaseURL(base string) EuropePMCOption {
	return func(p *EuropePMC) { p.baseURL = base }
}

// NewEuropePMC creates a Europe PMC provider with a 30s request timeout.
func NewEuropePMC(opts ...EuropePMCOption) *EuropePMC {
	p := &EuropePMC{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultEPMCBase,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *EuropePMC) Name() string { return "EuropePMC" }

// epmcResponse is the slice of the REST payload we consume.
type epmcResponse struct {
	ResultList struct {
		Result []struct {
			PMCID        string `json:"pmcid"`
			Title        string `json:"title"`
			AuthorString string `json:"authorString"`
			PubYear      string `json:"pubYear"`
		} `json:"result"`
	} `json:"resultList"`
}

// Search queries for open-access papers mentioning the entity or any of
// its synonyms in a human/clinical context. Results without a PMCID have
// no fetchable full-text page and are skipped.
func (p *EuropePMC) Search(ctx context.Context, entity string, synonyms []string, pageSize int) ([]Candidate, error) {
	if pageSize <= 0 {
		pageSize = defaultEPMCPageSize
	}

	params := url.Values{}
	params.Set("query", p.buildQuery(entity, synonyms))
	params.Set("resultType", "core")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("europepmc search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("europepmc search: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var payload epmcResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	var candidates []Candidate
	for _, r := range payload.ResultList.Result {
		if r.PMCID == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:   r.Title,
			Authors: r.AuthorString,
			Year:    r.PubYear,
			URL:     fmt.Sprintf("https://pmc.ncbi.nlm.nih.gov/articles/%s/", r.PMCID),
		})
	}
	return candidates, nil
}

func (p *EuropePMC) buildQuery(entity string, synonyms []string) string {
	terms := append([]string{entity}, synonyms...)
	query := fmt.Sprintf("(%s) AND OPEN_ACCESS:y AND %s", strings.Join(terms, " OR "), humanClause)
	if topic, ok := topicClauses[strings.ToLower(entity)]; ok {
		query += " AND " + topic
	}
	return query
}
