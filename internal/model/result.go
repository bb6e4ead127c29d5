package model

// SourceTier classifies the credibility/type of a document's origin.
// It is a pure function of the URL and declared content type, never of
// the document body.
type SourceTier int

const (
	TierGenericWeb SourceTier = iota // fallthrough for unknown hosts
	TierPDF
	TierPMC
	TierPubMed
	TierDOI
	TierJournal
	TierVideo
)

func (t SourceTier) String() string {
	switch t {
	case TierPDF:
		return "pdf"
	case TierPMC:
		return "pmc_html"
	case TierPubMed:
		return "pubmed_html"
	case TierDOI:
		return "doi_landing"
	case TierJournal:
		return "journal_html"
	case TierVideo:
		return "video"
	default:
		return "generic_web"
	}
}

// IsAcademic reports whether the tier counts as a peer-reviewed style source.
func (t SourceTier) IsAcademic() bool {
	switch t {
	case TierPDF, TierPMC, TierPubMed, TierDOI, TierJournal:
		return true
	default:
		return false
	}
}

// MarshalText renders the tier as its string form in JSON output.
func (t SourceTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the string form back, so persisted reports can be
// reloaded. Unknown strings fall back to generic_web.
func (t *SourceTier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pdf":
		*t = TierPDF
	case "pmc_html":
		*t = TierPMC
	case "pubmed_html":
		*t = TierPubMed
	case "doi_landing":
		*t = TierDOI
	case "journal_html":
		*t = TierJournal
	case "video":
		*t = TierVideo
	default:
		*t = TierGenericWeb
	}
	return nil
}

// Status is the terminal outcome of validating one document
type Status string

const (
	StatusOK          Status = "ok"
	StatusFetchFailed Status = "fetch_failed"
	StatusUnparseable Status = "unparseable"
)

// ValidationResult is the per-quote report artifact. It is produced once
// per validation run and never persisted as authoritative state.
type ValidationResult struct {
	QuoteID        int        `json:"id"`
	SourceURL      string     `json:"source"`
	SourceTypeHint string     `json:"source_type,omitempty"`
	Tier           SourceTier `json:"tier"`
	ExactMatch     bool       `json:"exact_match"`
	FuzzyScore     float64    `json:"fuzzy_score"`
	MatchedExcerpt string     `json:"matched_excerpt,omitempty"`
	ContentType    string     `json:"content_type,omitempty"`
	Status         Status     `json:"status"`
	Notes          string     `json:"notes,omitempty"`

	// Context joined in for the report
	EntityName string `json:"entity_name,omitempty"`
	QuoteText  string `json:"quote_text,omitempty"`
	File       string `json:"file,omitempty"`
}

// FileSummary records how many quotes were loaded from one input file.
type FileSummary struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// ValidationReport aggregates every processed record for a run. Failures
// appear as per-record statuses, never as silent drops.
type ValidationReport struct {
	Files   []FileSummary      `json:"files"`
	Results []ValidationResult `json:"results"`
}

// StatusCounts summarizes results by status for the run footer.
func (r *ValidationReport) StatusCounts() map[Status]int {
	counts := make(map[Status]int)
	for _, res := range r.Results {
		counts[res.Status]++
	}
	return counts
}

// ExactMatches counts results with verbatim containment.
func (r *ValidationReport) ExactMatches() int {
	n := 0
	for _, res := range r.Results {
		if res.ExactMatch {
			n++
		}
	}
	return n
}
