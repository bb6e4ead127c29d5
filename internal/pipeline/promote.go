package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/7urk3r/quotevet/internal/curate"
	"github.com/7urk3r/quotevet/internal/store"
)

// Promote runs the curation engine over the staging and final sets and
// persists both. Staging comes back empty: promotion consumes it.
func (r *Runner) Promote(ctx context.Context, stagingPath, finalPath string) (*curate.Outcome, error) {
	staging, err := store.LoadQuoteSet(stagingPath)
	if err != nil {
		return nil, err
	}
	final, err := store.LoadQuoteSet(finalPath)
	if err != nil {
		return nil, err
	}

	outcome := r.engine.Promote(staging, final)

	if err := store.SaveQuoteSet(finalPath, final); err != nil {
		return nil, fmt.Errorf("save final set: %w", err)
	}
	if err := store.SaveQuoteSet(stagingPath, staging); err != nil {
		return nil, fmt.Errorf("save staging set: %w", err)
	}

	log.Info().
		Int("promoted", len(outcome.Promoted)).
		Int("rejected", len(outcome.Rejections)).
		Msg("promotion run complete")
	return outcome, nil
}

// Cleanup prunes animal-context records from the staging and final sets.
func (r *Runner) Cleanup(ctx context.Context, paths ...string) (int, error) {
	removed := 0
	for _, path := range paths {
		set, err := store.LoadQuoteSet(path)
		if err != nil {
			return removed, err
		}
		n := r.engine.PruneAnimalContext(set)
		if n == 0 {
			continue
		}
		if err := store.SaveQuoteSet(path, set); err != nil {
			return removed, err
		}
		log.Info().Str("file", path).Int("removed", n).Msg("pruned animal-context quotes")
		removed += n
	}
	return removed, nil
}
