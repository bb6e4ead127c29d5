package model

// Section tags where in the document a candidate sentence was found
type Section string

const (
	SectionAbstract   Section = "abstract"
	SectionConclusion Section = "conclusion"
	SectionFullText   Section = "fulltext"
)

// CandidateSentence is an ephemeral ranker output, consumed immediately
// by harvesting.
type CandidateSentence struct {
	Text            string  `json:"text"`
	PositivityScore float64 `json:"positivity_score"`
	Section         Section `json:"section"`
}

// Proposal is a harvested candidate quote with its citation metadata,
// ready to become a staged QuoteRecord.
type Proposal struct {
	EntityName      string  `json:"entity_name"`
	QuoteText       string  `json:"quote"`
	PaperTitle      string  `json:"paper_title,omitempty"`
	Authors         string  `json:"authors,omitempty"`
	Year            string  `json:"year,omitempty"`
	URL             string  `json:"url"`
	Provider        string  `json:"provider,omitempty"`
	PositivityScore float64 `json:"positivity_score"`
	Section         Section `json:"section"`
}
