// Package discover finds candidate open-access papers for an entity.
// Providers yield citation candidates; they never fetch or interpret the
// papers themselves.
package discover

import "context"

// Candidate is one discovered paper with the citation metadata harvesting
// attaches to proposals.
type Candidate struct {
	Title   string
	Authors string
	Year    string
	URL     string
}

// Provider searches a bibliographic index for papers about an entity.
type Provider interface {
	// Name labels the provider in proposal provenance.
	Name() string
	// Search returns up to pageSize candidates for the entity. Synonyms
	// widen recall; an empty result is not an error.
	Search(ctx context.Context, entity string, synonyms []string, pageSize int) ([]Candidate, error)
}
