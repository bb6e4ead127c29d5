package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/7urk3r/quotevet/internal/pipeline"
)

var (
	harvestStaging  string
	harvestFinal    string
	harvestEntities []string
	harvestMin      int
	harvestTimeout  time.Duration
)

// harvestCmd represents the harvest command
var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Discover candidate quotes from open-access literature",
	Long: `Harvest searches Europe PMC for open-access papers about entities that
are short of approved quotes, ranks their sentences for marketable,
human-context benefit language, and appends the best candidates to the
staging set for later promotion.

Publisher robots.txt rules are honored and fetches are rate limited.

Example:
  quotevet harvest --staging data/quotes.staging.json --final data/quotes.final.json
  quotevet harvest --entity BPC-157 --entity Semaglutide --min-quotes 5`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringVar(&harvestStaging, "staging", "data/quotes.staging.json", "staging quote set path")
	harvestCmd.Flags().StringVar(&harvestFinal, "final", "data/quotes.final.json", "final quote set path")
	harvestCmd.Flags().StringArrayVar(&harvestEntities, "entity", nil, "harvest only these entities (repeatable; default: auto-target)")
	harvestCmd.Flags().IntVar(&harvestMin, "min-quotes", 3, "target proposals per entity")
	harvestCmd.Flags().DurationVar(&harvestTimeout, "timeout", 30*time.Minute, "overall run timeout")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Harvest.MinQuotes = harvestMin

	ctx, cancel := context.WithTimeout(context.Background(), harvestTimeout)
	defer cancel()

	runner := pipeline.NewRunner(cfg)
	summary, err := runner.Harvest(ctx, harvestStaging, harvestFinal, harvestEntities)
	if err != nil {
		return err
	}

	fmt.Printf("Harvested %d proposals for %d entities (%d papers scanned, %d skipped)\n",
		summary.Proposals, len(summary.Targets), summary.Papers, summary.Skipped)
	return nil
}
