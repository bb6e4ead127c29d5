package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/7urk3r/quotevet/internal/pipeline"
)

var (
	validateOut      string
	validateMD       string
	validateMinScore float64
	validateDelay    time.Duration
	validateVerified bool
	validateNoCache  bool
	validateTimeout  time.Duration
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Verify that quotes appear in their source documents",
	Long: `Validate fetches every quote's source URL, extracts the document text
and checks that the quote is actually contained in it, exactly or fuzzily.
Every record gets a result; fetch and parse failures are reported, never
skipped.

Example:
  quotevet validate data/quotes.json
  quotevet validate data/quotes.json --verified-out --min-score 0.92
  quotevet validate data/*.json --out report.json --md report.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateOut, "out", "validation_report.json", "output report path")
	validateCmd.Flags().StringVar(&validateMD, "md", "", "output Markdown path (optional)")
	validateCmd.Flags().Float64Var(&validateMinScore, "min-score", 0.9, "minimum fuzzy score to accept as verified if not exact")
	validateCmd.Flags().DurationVar(&validateDelay, "delay", time.Second, "polite delay between fetches")
	validateCmd.Flags().BoolVar(&validateVerified, "verified-out", false, "emit filtered .verified.json next to each input")
	validateCmd.Flags().BoolVar(&validateNoCache, "no-cache", false, "disable the document cache (force fresh fetches)")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 30*time.Minute, "overall run timeout")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Validation.MinScore = validateMinScore
	cfg.HTTP.FetchDelay = validateDelay
	if validateNoCache {
		cfg.Cache.Enabled = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	runner := pipeline.NewRunner(cfg)
	report, err := runner.ValidateFiles(ctx, pipeline.ValidateOptions{
		Files:        args,
		EmitVerified: validateVerified,
	})
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if validateOut != "" {
		if err := renderer.RenderJSON(report, validateOut); err != nil {
			return err
		}
	}
	if validateMD != "" {
		if err := renderer.RenderMarkdown(report, validateMD); err != nil {
			return err
		}
	}
	renderer.RenderSummary(report)
	return nil
}
