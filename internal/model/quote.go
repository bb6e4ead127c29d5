package model

// Provenance tracks where a quote record sits in the curation lifecycle
type Provenance string

const (
	ProvenanceHarvested Provenance = "harvested" // freshly discovered, not yet in staging
	ProvenanceStaged    Provenance = "staged"    // in the staging set, awaiting promotion
	ProvenanceApproved  Provenance = "approved"  // promoted into the final set
)

// QuoteRecord represents a single attributed quote in the staging or final set.
// The JSON shape stays compatible with the marquee data files consumed downstream.
type QuoteRecord struct {
	ID              int        `json:"id"`
	EntityName      string     `json:"entity_name"`
	QuoteText       string     `json:"quote"`
	Scientist       string     `json:"scientist,omitempty"`       // attribution label (first author)
	Organization    string     `json:"organization,omitempty"`    // typically the paper title
	Credentials     string     `json:"credentials,omitempty"`
	Logo            string     `json:"logo,omitempty"`
	SourceURL       string     `json:"source"`
	SourceType      string     `json:"source_type,omitempty"`     // free-form hint, e.g. "Peer-Reviewed (Abstract/Conclusion)"
	PositivityScore float64    `json:"positivity_score,omitempty"`
	Section         string     `json:"section,omitempty"`
	Provenance      Provenance `json:"provenance,omitempty"`
}

// QuoteSet is one persisted record set (staging or final), read and
// rewritten wholesale per run.
type QuoteSet struct {
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Quotes   []QuoteRecord          `json:"quotes"`
}

// MaxID returns the highest integer identifier present in the set.
func (s *QuoteSet) MaxID() int {
	max := 0
	for _, q := range s.Quotes {
		if q.ID > max {
			max = q.ID
		}
	}
	return max
}

// CountByEntity returns per-entity record counts.
func (s *QuoteSet) CountByEntity() map[string]int {
	counts := make(map[string]int)
	for _, q := range s.Quotes {
		if q.EntityName != "" {
			counts[q.EntityName]++
		}
	}
	return counts
}
