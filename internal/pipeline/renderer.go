package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/7urk3r/quotevet/internal/model"
	"github.com/7urk3r/quotevet/internal/store"
)

// Renderer writes validation reports to their output formats
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.ValidationReport, path string) error {
	return store.WriteReport(path, report)
}

// RenderMarkdown writes the report as a Markdown table per input file
func (r *Renderer) RenderMarkdown(report *model.ValidationReport, path string) error {
	var sb strings.Builder
	sb.WriteString("# Quote Validation Report\n\n")

	for _, file := range report.Files {
		sb.WriteString(fmt.Sprintf("## %s (%d quotes)\n\n", file.File, file.Count))
		sb.WriteString("| ID | Entity | Tier | Status | Exact | Score | Notes |\n")
		sb.WriteString("|----|--------|------|--------|-------|-------|-------|\n")
		for _, res := range report.Results {
			if res.File != file.File {
				continue
			}
			exact := ""
			if res.ExactMatch {
				exact = "yes"
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %.3f | %s |\n",
				res.QuoteID, mdEscape(res.EntityName), res.Tier, res.Status,
				exact, res.FuzzyScore, mdEscape(res.Notes)))
		}
		sb.WriteString("\n")
	}

	if r.includeFooter {
		counts := report.StatusCounts()
		sb.WriteString(fmt.Sprintf("---\n\n%d quotes checked, %d exact matches, %d fetch failures, %d unparseable.\n",
			len(report.Results), report.ExactMatches(),
			counts[model.StatusFetchFailed], counts[model.StatusUnparseable]))
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// RenderSummary prints run totals to stdout
func (r *Renderer) RenderSummary(report *model.ValidationReport) {
	counts := report.StatusCounts()
	fmt.Printf("Checked %d quotes across %d files\n", len(report.Results), len(report.Files))
	fmt.Printf("  exact matches: %d\n", report.ExactMatches())
	fmt.Printf("  ok:            %d\n", counts[model.StatusOK])
	fmt.Printf("  fetch failed:  %d\n", counts[model.StatusFetchFailed])
	fmt.Printf("  unparseable:   %d\n", counts[model.StatusUnparseable])
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
