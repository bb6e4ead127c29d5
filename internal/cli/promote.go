package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/7urk3r/quotevet/internal/pipeline"
)

var (
	promoteStaging string
	promoteFinal   string
)

// promoteCmd represents the promote command
var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote staged quotes into the final set",
	Long: `Promote runs every staged quote through the curation rules: length
bounds, negative and animal-context language, benefit vocabulary,
positivity threshold, the allowed-entity list, deduplication and the
per-entity cap. Survivors append to the final set with fresh sequential
identifiers; staging is cleared.

Example:
  quotevet promote --staging data/quotes.staging.json --final data/quotes.final.json`,
	RunE: runPromote,
}

// cleanupCmd removes animal-context records that predate the filter
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Prune animal-context quotes from the staging and final sets",
	RunE:  runCleanup,
}

// authorsCmd re-attributes quotes to their papers' first authors
var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Normalize quote attribution to first author names",
	Long: `Authors rewrites placeholder attribution labels ("Study authors") by
fetching each source page and reading its citation_author metadata, and
trims comma-separated author lists to the first name.`,
	RunE: runAuthors,
}

func init() {
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(authorsCmd)

	for _, cmd := range []*cobra.Command{promoteCmd, cleanupCmd, authorsCmd} {
		cmd.Flags().StringVar(&promoteStaging, "staging", "data/quotes.staging.json", "staging quote set path")
		cmd.Flags().StringVar(&promoteFinal, "final", "data/quotes.final.json", "final quote set path")
	}
}

func runPromote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg)
	outcome, err := runner.Promote(context.Background(), promoteStaging, promoteFinal)
	if err != nil {
		return err
	}

	fmt.Printf("Promoted %d quotes, rejected %d\n", len(outcome.Promoted), len(outcome.Rejections))
	for _, rej := range outcome.Rejections {
		fmt.Printf("  - [%s] %s: %.60s\n", rej.Reason, rej.Record.EntityName, rej.Record.QuoteText)
	}
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg)
	removed, err := runner.Cleanup(context.Background(), promoteStaging, promoteFinal)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d animal-context quotes\n", removed)
	return nil
}

func runAuthors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	runner := pipeline.NewRunner(cfg)
	changed := 0
	for _, path := range []string{promoteFinal, promoteStaging} {
		n, err := runner.NormalizeAuthors(ctx, path)
		if err != nil {
			return err
		}
		changed += n
	}

	fmt.Printf("Re-attributed %d quotes\n", changed)
	return nil
}
