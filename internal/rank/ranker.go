// Package rank segments article text into sentences and scores each by
// lexical signals to find marketing-worthy, human-relevant candidates.
package rank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/7urk3r/quotevet/internal/match"
	"github.com/7urk3r/quotevet/internal/model"
)

const (
	// quotable sentence length window: shorter fragments lack context,
	// longer ones are unlikely to be quotable
	minSentenceLen = 60
	maxSentenceLen = 350

	// maxCandidates caps the ranked output per document
	maxCandidates = 5

	studyDesignBonus = 0.8
	populationBonus  = 0.5
	quantifiedBonus  = 0.5
	sectionBonus     = 0.7
)

var (
	bracketCitePattern = regexp.MustCompile(`\[[^\]]+\]`)
	refCitePattern     = regexp.MustCompile(`(?i)\(ref\.?\s*\d+\)`)
	spacePattern       = regexp.MustCompile(`\s+`)
	quantifiedPattern  = regexp.MustCompile(`\b\d+\s?%|\bp\s?<\s?0\.[0-9]+`)
)

// Ranker scores candidate sentences against an injected lexicon.
type Ranker struct {
	lex *model.LexiconConfig
}

// NewRanker creates a ranker. A nil lexicon uses the built-in defaults.
func NewRanker(lex *model.LexiconConfig) *Ranker {
	if lex == nil {
		lex = &model.DefaultConfig().Lexicon
	}
	return &Ranker{lex: lex}
}

// RankHTML extracts sections from an HTML document and ranks candidate
// sentences mentioning the entity. In positive-only mode (candidate
// discovery), fulltext-only documents yield nothing: discovery should not
// fall back to full text indiscriminately.
func (r *Ranker) RankHTML(htmlContent, entity string, positiveOnly bool) []model.CandidateSentence {
	return r.rank(ExtractSections(htmlContent), entity, positiveOnly)
}

// RankText ranks sentences of pre-normalized plain text (no section
// structure, so everything counts as fulltext).
func (r *Ranker) RankText(text, entity string, positiveOnly bool) []model.CandidateSentence {
	return r.rank([]Section{{Name: model.SectionFullText, Text: text}}, entity, positiveOnly)
}

func (r *Ranker) rank(sections []Section, entity string, positiveOnly bool) []model.CandidateSentence {
	targets := []string{strings.ToLower(entity)}
	for _, syn := range r.lex.SynonymsFor(entity) {
		targets = append(targets, strings.ToLower(syn))
	}

	var ranked []model.CandidateSentence
	for _, section := range sections {
		if section.Name == model.SectionFullText && positiveOnly {
			continue
		}
		for _, sentence := range SplitSentences(section.Text) {
			clean := StripCitations(sentence)
			lower := strings.ToLower(clean)

			if len(clean) < minSentenceLen || len(clean) > maxSentenceLen {
				continue
			}
			if containsAny(lower, r.lex.NoiseTerms) {
				continue
			}
			if !containsAny(lower, targets) {
				continue
			}
			if containsAny(lower, r.lex.ExcludeTerms) {
				continue
			}
			if match.AnyWord(lower, r.lex.AnimalTerms) {
				continue
			}

			score := 0.0
			for keyword, weight := range r.lex.KeywordWeights {
				if strings.Contains(lower, keyword) {
					score += weight
				}
			}
			if !containsAny(lower, r.lex.BenefitTerms) {
				continue
			}
			if containsAny(lower, r.lex.StudyDesignTerms) {
				score += studyDesignBonus
			}
			if containsAny(lower, r.lex.PopulationTerms) {
				score += populationBonus
			}
			if quantifiedPattern.MatchString(lower) {
				score += quantifiedBonus
			}
			if positiveOnly && score <= 0 {
				continue
			}
			if section.Name == model.SectionAbstract || section.Name == model.SectionConclusion {
				score += sectionBonus
			}

			ranked = append(ranked, model.CandidateSentence{
				Text:            clean,
				PositivityScore: score,
				Section:         section.Name,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PositivityScore > ranked[j].PositivityScore
	})
	if len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}
	return ranked
}

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder
	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// StripCitations removes bracketed citations like [12] and (ref. 3) and
// collapses the remaining whitespace.
func StripCitations(s string) string {
	s = bracketCitePattern.ReplaceAllString(s, "")
	s = refCitePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}
