package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/7urk3r/quotevet/internal/model"
	"github.com/7urk3r/quotevet/internal/rank"
	"github.com/7urk3r/quotevet/internal/store"
)

// HarvestSummary reports one harvest run.
type HarvestSummary struct {
	Targets   []string `json:"targets"`
	Proposals int      `json:"proposals"`
	Papers    int      `json:"papers_scanned"`
	Skipped   int      `json:"papers_skipped"`
}

// Harvest discovers papers for under-represented entities, ranks their
// sentences and appends the best candidates to the staging set.
func (r *Runner) Harvest(ctx context.Context, stagingPath, finalPath string, entities []string) (*HarvestSummary, error) {
	staging, err := store.LoadQuoteSet(stagingPath)
	if err != nil {
		return nil, err
	}
	final, err := store.LoadQuoteSet(finalPath)
	if err != nil {
		return nil, err
	}

	if len(entities) == 0 {
		entities = r.harvestTargets(staging, final)
	}

	summary := &HarvestSummary{Targets: entities}
	seen := stagedKeys(staging, final)

	for _, entity := range entities {
		proposals, papers, skipped, err := r.harvestEntity(ctx, entity, seen)
		if err != nil {
			log.Warn().Err(err).Str("entity", entity).Msg("harvest failed for entity")
			continue
		}
		summary.Papers += papers
		summary.Skipped += skipped
		summary.Proposals += len(proposals)

		for _, p := range proposals {
			staging.Quotes = append(staging.Quotes, proposalToRecord(p))
		}
	}

	if err := store.SaveQuoteSet(stagingPath, staging); err != nil {
		return nil, fmt.Errorf("save staging set: %w", err)
	}

	log.Info().
		Strs("targets", summary.Targets).
		Int("proposals", summary.Proposals).
		Int("papers", summary.Papers).
		Msg("harvest run complete")
	return summary, nil
}

// harvestTargets picks the entities with the fewest approved quotes,
// preferring those that are also thin in staging.
func (r *Runner) harvestTargets(staging, final *model.QuoteSet) []string {
	approved := final.CountByEntity()
	staged := staging.CountByEntity()

	names := r.cfg.Curation.AllowedEntities
	if len(names) == 0 {
		nameSet := make(map[string]bool)
		for name := range approved {
			nameSet[name] = true
		}
		for name := range staged {
			nameSet[name] = true
		}
		for name := range nameSet {
			names = append(names, name)
		}
	}

	var targets []string
	for _, name := range names {
		if approved[name] < r.cfg.Harvest.MinQuotes {
			targets = append(targets, name)
		}
	}
	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		if approved[a] != approved[b] {
			return approved[a] < approved[b]
		}
		totalA := approved[a] + staged[a]
		totalB := approved[b] + staged[b]
		if totalA != totalB {
			return totalA < totalB
		}
		return a < b
	})

	if max := r.cfg.Harvest.MaxEntities; max > 0 && len(targets) > max {
		targets = targets[:max]
	}
	return targets
}

func (r *Runner) harvestEntity(ctx context.Context, entity string, seen map[string]bool) ([]model.Proposal, int, int, error) {
	synonyms := r.cfg.Lexicon.SynonymsFor(entity)
	candidates, err := r.provider.Search(ctx, entity, synonyms, r.cfg.Harvest.PageSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("discover papers: %w", err)
	}

	var proposals []model.Proposal
	papers, skipped := 0, 0
	for _, cand := range candidates {
		if len(proposals) >= r.cfg.Harvest.MinQuotes {
			break
		}
		if papers >= r.cfg.Harvest.MaxPapers {
			break
		}

		if !r.robots.IsAllowed(ctx, cand.URL) {
			log.Debug().Str("url", cand.URL).Msg("skipped by robots.txt")
			skipped++
			continue
		}
		if err := r.limiter.WaitWithDelay(ctx, cand.URL, r.cfg.HTTP.FetchDelay); err != nil {
			return nil, papers, skipped, err
		}

		body, contentType, _, err := r.fetchFn(ctx, cand.URL)
		if err != nil {
			log.Debug().Err(err).Str("url", cand.URL).Msg("paper fetch failed")
			skipped++
			continue
		}
		papers++

		tier := r.classifier.Classify(cand.URL, contentType)
		if tier != model.TierPMC && tier != model.TierJournal {
			skipped++
			continue
		}

		sentences := r.ranker.RankHTML(string(body), entity, true)
		for _, s := range sentences {
			text := sanitizeQuote(s.Text)
			if text == "" {
				continue
			}
			key := dedupKey(entity, text)
			if seen[key] {
				continue
			}
			seen[key] = true

			proposals = append(proposals, model.Proposal{
				EntityName:      entity,
				QuoteText:       text,
				PaperTitle:      cand.Title,
				Authors:         cand.Authors,
				Year:            cand.Year,
				URL:             cand.URL,
				Provider:        r.provider.Name(),
				PositivityScore: s.PositivityScore,
				Section:         s.Section,
			})
			if len(proposals) >= r.cfg.Harvest.MinQuotes {
				break
			}
		}
	}
	return proposals, papers, skipped, nil
}

// proposalToRecord turns a harvested proposal into a staged record. The
// first author becomes the attribution label; the paper title fills the
// organization slot.
func proposalToRecord(p model.Proposal) model.QuoteRecord {
	return model.QuoteRecord{
		EntityName:      p.EntityName,
		QuoteText:       p.QuoteText,
		Scientist:       FirstAuthor(p.Authors),
		Organization:    p.PaperTitle,
		SourceURL:       p.URL,
		SourceType:      sourceTypeLabel(p.Section),
		PositivityScore: p.PositivityScore,
		Section:         string(p.Section),
		Provenance:      model.ProvenanceStaged,
	}
}

func sourceTypeLabel(section model.Section) string {
	switch section {
	case model.SectionAbstract, model.SectionConclusion:
		return "Peer-Reviewed (Abstract/Conclusion)"
	default:
		return "Peer-Reviewed Journal"
	}
}

// sanitizeQuote strips citation markers and leading list numbering,
// collapses whitespace and closes the sentence with punctuation. Quotes
// longer than 600 bytes are cut at the cap.
func sanitizeQuote(text string) string {
	text = stripLeadingNumber(strings.TrimSpace(rank.StripCitations(text)))
	if text == "" {
		return ""
	}
	if len(text) > 600 {
		text = text[:600]
	}
	if last := text[len(text)-1]; last != '.' && last != '!' && last != '?' {
		text += "."
	}
	return text
}

func stripLeadingNumber(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		return strings.TrimSpace(s[i:])
	}
	return s
}

func dedupKey(entity, text string) string {
	lower := strings.ToLower(text)
	if len(lower) > 400 {
		lower = lower[:400]
	}
	return entity + "\x00" + lower
}

// stagedKeys seeds the harvest dedup set from everything already staged
// or approved.
func stagedKeys(sets ...*model.QuoteSet) map[string]bool {
	seen := make(map[string]bool)
	for _, set := range sets {
		for _, q := range set.Quotes {
			seen[dedupKey(q.EntityName, strings.TrimSpace(q.QuoteText))] = true
		}
	}
	return seen
}
