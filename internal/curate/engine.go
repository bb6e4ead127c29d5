// Package curate applies the promotion state machine moving candidate
// quotes from the staging set into the vetted final set.
package curate

import (
	"sort"
	"strings"

	"github.com/7urk3r/quotevet/internal/match"
	"github.com/7urk3r/quotevet/internal/model"
)

// Reason classifies why a staged record was not promoted. Rejections are
// filter outcomes, not errors, and stay distinguishable from I/O failures
// in audit output.
type Reason string

const (
	ReasonLength        Reason = "length_out_of_bounds"
	ReasonNegative      Reason = "negative_language"
	ReasonAnimal        Reason = "animal_context"
	ReasonNoBenefit     Reason = "no_benefit_term"
	ReasonWeakScore     Reason = "weak_positivity"
	ReasonUnknownEntity Reason = "unknown_entity"
	ReasonDuplicate     Reason = "duplicate"
	ReasonEntityCap     Reason = "entity_cap"
)

// Rejection pairs a staged record with the rule that stopped it.
type Rejection struct {
	Record model.QuoteRecord `json:"record"`
	Reason Reason            `json:"reason"`
}

// Outcome reports one promotion run.
type Outcome struct {
	Promoted   []model.QuoteRecord `json:"promoted"`
	Rejections []Rejection         `json:"rejections"`
}

// Engine evaluates staged quotes against the promotion rules. It is
// single-threaded: identifier assignment and the dedup check-then-insert
// stay serialized here.
type Engine struct {
	lex     *model.LexiconConfig
	cfg     *model.CurationConfig
	allowed map[string]bool
}

// NewEngine creates a curation engine. Nil lexicon or config use defaults.
func NewEngine(lex *model.LexiconConfig, cfg *model.CurationConfig) *Engine {
	defaults := model.DefaultConfig()
	if lex == nil {
		lex = &defaults.Lexicon
	}
	if cfg == nil {
		cfg = &defaults.Curation
	}

	var allowed map[string]bool
	if len(cfg.AllowedEntities) > 0 {
		allowed = make(map[string]bool, len(cfg.AllowedEntities))
		for _, name := range cfg.AllowedEntities {
			allowed[name] = true
		}
	}

	return &Engine{lex: lex, cfg: cfg, allowed: allowed}
}

// DedupKey is the (entity, normalized text) uniqueness key for the final set.
func DedupKey(entity, text string) string {
	return entity + "\x00" + match.Normalize(text)
}

// Promote runs the promotion state machine over the staging set, appending
// approved records to the final set with new identifiers continuing the
// final set's sequence. Staging is cleared afterwards: it is repopulated
// fresh by each harvest run, not an accumulating queue.
func (e *Engine) Promote(staging, final *model.QuoteSet) *Outcome {
	outcome := &Outcome{}

	seen := make(map[string]bool, len(final.Quotes))
	for _, q := range final.Quotes {
		seen[DedupKey(q.EntityName, q.QuoteText)] = true
	}

	accepted := make(map[string][]model.QuoteRecord)
	for _, q := range staging.Quotes {
		if reason, ok := e.evaluate(q, seen); !ok {
			outcome.Rejections = append(outcome.Rejections, Rejection{Record: q, Reason: reason})
			continue
		}
		seen[DedupKey(q.EntityName, q.QuoteText)] = true
		accepted[q.EntityName] = append(accepted[q.EntityName], q)
	}

	// Per-entity cap: keep the highest-positivity records
	entities := make([]string, 0, len(accepted))
	for name := range accepted {
		entities = append(entities, name)
	}
	sort.Strings(entities)

	nextID := final.MaxID() + 1
	droppedKeys := make(map[string]bool)
	for _, name := range entities {
		records := accepted[name]
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PositivityScore > records[j].PositivityScore
		})
		if e.cfg.PerEntityCap > 0 && len(records) > e.cfg.PerEntityCap {
			for _, dropped := range records[e.cfg.PerEntityCap:] {
				outcome.Rejections = append(outcome.Rejections, Rejection{Record: dropped, Reason: ReasonEntityCap})
				droppedKeys[DedupKey(dropped.EntityName, dropped.QuoteText)] = true
			}
			records = records[:e.cfg.PerEntityCap]
		}
		for _, q := range records {
			q.ID = nextID
			nextID++
			q.Provenance = model.ProvenanceApproved
			final.Quotes = append(final.Quotes, q)
			outcome.Promoted = append(outcome.Promoted, q)
		}
	}

	// A record rejected as a duplicate of a cap-dropped twin never had a
	// promoted counterpart; report it against the cap instead.
	for i, rej := range outcome.Rejections {
		if rej.Reason == ReasonDuplicate && droppedKeys[DedupKey(rej.Record.EntityName, rej.Record.QuoteText)] {
			outcome.Rejections[i].Reason = ReasonEntityCap
		}
	}

	staging.Quotes = nil
	return outcome
}

// evaluate applies the filter rules in order; the first hit rejects.
func (e *Engine) evaluate(q model.QuoteRecord, seen map[string]bool) (Reason, bool) {
	text := strings.TrimSpace(q.QuoteText)
	lower := strings.ToLower(text)

	if len(text) < e.cfg.MinLength || len(text) > e.cfg.MaxLength {
		return ReasonLength, false
	}
	if match.AnyWord(lower, e.lex.NegativeTerms) {
		return ReasonNegative, false
	}
	if match.AnyWord(lower, e.lex.AnimalTerms) {
		return ReasonAnimal, false
	}
	if !containsAny(lower, e.lex.BenefitTerms) {
		return ReasonNoBenefit, false
	}
	if q.PositivityScore < e.cfg.MinPositivity {
		return ReasonWeakScore, false
	}
	if e.allowed != nil && !e.allowed[q.EntityName] {
		return ReasonUnknownEntity, false
	}
	if seen[DedupKey(q.EntityName, q.QuoteText)] {
		return ReasonDuplicate, false
	}
	return "", true
}

// PruneAnimalContext removes records containing animal/preclinical terms
// from a set, returning how many were dropped. Used by the cleanup pass
// over both staging and final.
func (e *Engine) PruneAnimalContext(set *model.QuoteSet) int {
	kept := set.Quotes[:0]
	removed := 0
	for _, q := range set.Quotes {
		if match.AnyWord(strings.ToLower(q.QuoteText), e.lex.AnimalTerms) {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	set.Quotes = kept
	return removed
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}
