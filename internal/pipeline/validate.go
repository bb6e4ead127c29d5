package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/7urk3r/quotevet/internal/model"
	"github.com/7urk3r/quotevet/internal/store"
	"github.com/7urk3r/quotevet/internal/worker"
)

// ValidateOptions controls one validation run.
type ValidateOptions struct {
	Files []string
	// EmitVerified writes a filtered .verified.json next to each input.
	EmitVerified bool
}

// ValidateFiles validates every quote in every input file. Per-record
// failures land in the report; the run fails only when an input file
// cannot be read at all.
func (r *Runner) ValidateFiles(ctx context.Context, opts ValidateOptions) (*model.ValidationReport, error) {
	for _, file := range opts.Files {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("input file %s: %w", file, err)
		}
	}

	processor := worker.NewBatchProcessor(r, r.cfg.Concurrency.FileWorkers)
	fileReports := processor.ProcessFiles(ctx, opts.Files)

	byFile := make(map[string]*worker.FileReport, len(fileReports))
	for _, rep := range fileReports {
		byFile[rep.File] = rep
	}

	report := &model.ValidationReport{}
	for _, file := range opts.Files {
		rep, ok := byFile[file]
		if !ok {
			continue
		}
		if rep.Error != nil {
			return nil, fmt.Errorf("validate %s: %w", file, rep.Error)
		}
		report.Files = append(report.Files, model.FileSummary{File: file, Count: rep.Count})
		report.Results = append(report.Results, rep.Results...)
	}

	if opts.EmitVerified {
		if err := r.emitVerified(opts.Files, report); err != nil {
			return nil, err
		}
	}

	counts := report.StatusCounts()
	log.Info().
		Int("quotes", len(report.Results)).
		Int("exact", report.ExactMatches()).
		Int("ok", counts[model.StatusOK]).
		Int("fetch_failed", counts[model.StatusFetchFailed]).
		Int("unparseable", counts[model.StatusUnparseable]).
		Msg("validation run complete")
	return report, nil
}

// ValidateFile satisfies worker.FileValidator: it loads one quote file
// and validates each record in order, pacing fetches politely.
func (r *Runner) ValidateFile(ctx context.Context, path string) (*worker.FileReport, error) {
	set, err := store.LoadQuoteSet(path)
	if err != nil {
		return nil, err
	}

	rep := &worker.FileReport{File: path, Count: len(set.Quotes)}
	for _, q := range set.Quotes {
		if err := r.limiter.WaitWithDelay(ctx, q.SourceURL, r.cfg.HTTP.FetchDelay); err != nil {
			return nil, err
		}

		result := r.validator.ValidateQuote(ctx, q)
		result.File = path
		rep.Results = append(rep.Results, result)

		log.Debug().
			Int("id", q.ID).
			Str("entity", q.EntityName).
			Str("status", string(result.Status)).
			Float64("score", result.FuzzyScore).
			Msg("validated quote")
	}
	return rep, nil
}

func (r *Runner) emitVerified(files []string, report *model.ValidationReport) error {
	resultsByFile := make(map[string][]model.ValidationResult)
	for _, res := range report.Results {
		resultsByFile[res.File] = append(resultsByFile[res.File], res)
	}

	for _, file := range files {
		set, err := store.LoadQuoteSet(file)
		if err != nil {
			return err
		}
		out, err := store.WriteVerified(file, set, resultsByFile[file], r.cfg.Validation.MinScore)
		if err != nil {
			return fmt.Errorf("write verified output for %s: %w", file, err)
		}
		log.Info().Str("file", out).Msg("wrote verified output")
	}
	return nil
}
