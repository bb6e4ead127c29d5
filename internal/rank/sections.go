package rank

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/7urk3r/quotevet/internal/model"
	"github.com/7urk3r/quotevet/internal/normalize"
)

// Section is a structural region of an article with its extracted text.
type Section struct {
	Name model.Section
	Text string
}

var abstractAttrPattern = regexp.MustCompile(`(?i)abstract`)

// ExtractSections pulls Abstract and Conclusion regions out of an HTML
// document. When neither is present the whole visible text is returned as
// a single fulltext section.
func ExtractSections(htmlContent string) []Section {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var sections []Section

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "section", "div":
				if hasAbstractAttr(n) {
					if text := normalize.Whitespace(normalize.VisibleText(n)); text != "" {
						sections = append(sections, Section{Name: model.SectionAbstract, Text: text})
					}
					return // don't descend into a section we already captured
				}
			case "h1", "h2", "h3", "strong":
				heading := strings.ToLower(normalize.VisibleText(n))
				if strings.Contains(heading, "conclusion") {
					if text := collectAfterHeading(n); text != "" {
						sections = append(sections, Section{Name: model.SectionConclusion, Text: text})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(sections) == 0 {
		if text := normalize.Whitespace(normalize.VisibleText(doc)); text != "" {
			sections = append(sections, Section{Name: model.SectionFullText, Text: text})
		}
	}
	return sections
}

func hasAbstractAttr(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "id" || attr.Key == "class" {
			if abstractAttrPattern.MatchString(attr.Val) {
				return true
			}
		}
	}
	return false
}

// collectAfterHeading gathers sibling text after a Conclusion heading up
// to the next heading of the same kind.
func collectAfterHeading(heading *html.Node) string {
	var parts []string
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode {
			switch sib.Data {
			case "h1", "h2", "h3", "strong":
				return normalize.Whitespace(strings.Join(parts, " "))
			}
		}
		parts = append(parts, normalize.VisibleText(sib))
	}
	return normalize.Whitespace(strings.Join(parts, " "))
}
