// Package pipeline orchestrates the validation, harvest and promotion
// runs over quote sets.
package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/7urk3r/quotevet/internal/cache"
	"github.com/7urk3r/quotevet/internal/classify"
	"github.com/7urk3r/quotevet/internal/curate"
	"github.com/7urk3r/quotevet/internal/discover"
	"github.com/7urk3r/quotevet/internal/model"
	"github.com/7urk3r/quotevet/internal/normalize"
	"github.com/7urk3r/quotevet/internal/rank"
	"github.com/7urk3r/quotevet/internal/util"
	"github.com/7urk3r/quotevet/internal/validate"
	"github.com/7urk3r/quotevet/internal/worker"
)

// Runner wires the collaborators for all quotevet runs.
type Runner struct {
	cfg        *model.Config
	fetcher    *Fetcher
	classifier *classify.SourceClassifier
	normalizer *normalize.Normalizer
	validator  *validate.Validator
	ranker     *rank.Ranker
	engine     *curate.Engine
	provider   discover.Provider
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	docs       cache.Cache
	fetchFn    validate.FetchFunc
}

// RunnerOption customizes a Runner, primarily for tests.
type RunnerOption func(*Runner)

// WithProvider substitutes the discovery provider.
func WithProvider(p discover.Provider) RunnerOption {
	return func(r *Runner) { r.provider = p }
}

// WithDocumentCache substitutes the fetched-document cache.
func WithDocumentCache(c cache.Cache) RunnerOption {
	return func(r *Runner) { r.docs = c }
}

// WithRobots substitutes the robots.txt checker.
func WithRobots(robots *util.RobotsChecker) RunnerOption {
	return func(r *Runner) { r.robots = robots }
}

// NewRunner creates a runner from configuration. Nil config uses defaults.
func NewRunner(cfg *model.Config, opts ...RunnerOption) *Runner {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	r := &Runner{
		cfg: cfg,
		fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		classifier: classify.NewSourceClassifier(&cfg.Classifier),
		normalizer: normalize.New(cfg.Validation.MaxPDFPages),
		ranker:     rank.NewRanker(&cfg.Lexicon),
		engine:     curate.NewEngine(&cfg.Lexicon, &cfg.Curation),
		provider:   discover.NewEuropePMC(),
		robots:     util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		limiter:    worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst),
	}
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		r.docs = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	for _, opt := range opts {
		opt(r)
	}

	r.fetchFn = r.buildFetch()
	r.validator = validate.NewValidator(r.classifier, r.normalizer, r.fetchFn)
	return r
}

// buildFetch returns the fetch collaborator, wrapped in the document
// cache when one is configured.
func (r *Runner) buildFetch() validate.FetchFunc {
	inner := r.fetcher.FetchFunc()
	if r.docs == nil {
		return inner
	}

	return func(ctx context.Context, rawURL string) ([]byte, string, string, error) {
		key := cache.Key(rawURL)
		if data, found := r.docs.Get(key); found {
			if body, contentType, err := cache.DecodeDocument(data); err == nil {
				log.Debug().Str("url", rawURL).Msg("document cache hit")
				return body, contentType, "", nil
			}
			// stale framing; fall through to refetch
			_ = r.docs.Delete(key)
		}

		body, contentType, note, err := inner(ctx, rawURL)
		if err != nil {
			return nil, "", note, err
		}
		if data, encErr := cache.EncodeDocument(body, contentType); encErr == nil {
			if setErr := r.docs.Set(key, data, 0); setErr != nil {
				log.Warn().Err(setErr).Str("url", rawURL).Msg("document cache write failed")
			}
		}
		return body, contentType, "", nil
	}
}
