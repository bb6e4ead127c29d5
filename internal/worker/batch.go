package worker

import (
	"context"

	"github.com/7urk3r/quotevet/internal/model"
)

// FileValidator validates every quote loaded from one input file.
type FileValidator interface {
	ValidateFile(ctx context.Context, path string) (*FileReport, error)
}

// FileReport is the outcome of validating one input file.
type FileReport struct {
	File    string
	Count   int
	Results []model.ValidationResult
	Error   error
}

// GetError returns the error from the file report
func (r *FileReport) GetError() error {
	return r.Error
}

// ValidateJob validates one input file
type ValidateJob struct {
	File      string
	Validator FileValidator
}

// Execute runs the validation job
func (j *ValidateJob) Execute(ctx context.Context) Result {
	report, err := j.Validator.ValidateFile(ctx, j.File)
	if err != nil {
		return &FileReport{File: j.File, Error: err}
	}
	return report
}

// BatchProcessor validates multiple input files concurrently. Per-quote
// fetches inside each file stay serialized behind the rate limiter.
type BatchProcessor struct {
	validator   FileValidator
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(validator FileValidator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
}

// ProcessFiles validates the given files concurrently. Results are
// returned keyed by file; order is not preserved.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, files []string) []*FileReport {
	if len(files) == 0 {
		return []*FileReport{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, file := range files {
		pool.Submit(&ValidateJob{File: file, Validator: b.validator})
	}

	results := pool.Wait()

	reports := make([]*FileReport, len(results))
	for i, result := range results {
		reports[i] = result.(*FileReport)
	}
	return reports
}
