package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/rs/zerolog/log"

	"github.com/7urk3r/quotevet/internal/store"
)

// scientistPlaceholders are attribution labels that name no actual
// person. Records carrying one get re-attributed from their source page.
var scientistPlaceholders = map[string]bool{
	"study authors":                   true,
	"review authors":                  true,
	"systematic review authors":       true,
	"meta-analysis authors":           true,
	"surmount-1 investigators":        true,
	"peer-reviewed clinical research": true,
	"peer-reviewed journal":           true,
	"peer-reviewed journal review":    true,
	"authors":                         true,
	"author":                          true,
}

// FirstAuthor trims an author list ("Smith J, Doe A, ...") to its first
// name. Empty input stays empty.
func FirstAuthor(authors string) string {
	s := strings.TrimSpace(authors)
	if idx := strings.Index(s, ","); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	return s
}

// NormalizeAuthors rewrites placeholder or list-valued scientist fields
// across a quote set, fetching source pages when the record itself names
// no author. Returns how many records changed.
func (r *Runner) NormalizeAuthors(ctx context.Context, path string) (int, error) {
	set, err := store.LoadQuoteSet(path)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range set.Quotes {
		q := &set.Quotes[i]
		updated := r.normalizeScientist(ctx, q.Scientist, q.SourceURL)
		if updated != "" && updated != q.Scientist {
			log.Debug().Int("id", q.ID).Str("from", q.Scientist).Str("to", updated).Msg("re-attributed quote")
			q.Scientist = updated
			changed++
		}
	}

	if changed > 0 {
		if err := store.SaveQuoteSet(path, set); err != nil {
			return 0, err
		}
	}
	return changed, nil
}

func (r *Runner) normalizeScientist(ctx context.Context, current, sourceURL string) string {
	s := strings.TrimSpace(current)
	if s != "" && !scientistPlaceholders[strings.ToLower(s)] {
		// already a name; trim author lists to the first entry
		return FirstAuthor(s)
	}
	if sourceURL == "" {
		return current
	}

	if err := r.limiter.WaitWithDelay(ctx, sourceURL, r.cfg.HTTP.FetchDelay); err != nil {
		return current
	}
	body, _, _, err := r.fetchFn(ctx, sourceURL)
	if err != nil {
		return current
	}
	if name := FirstAuthorFromHTML(string(body)); name != "" {
		return name
	}
	return current
}

// FirstAuthorFromHTML extracts the first author from a paper page:
// citation_author meta tags first, then the author-name spans PMC and
// most publishers render.
func FirstAuthorFromHTML(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	if name := findCitationAuthorMeta(doc); name != "" {
		return name
	}
	return findAuthorNode(doc)
}

func findCitationAuthorMeta(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var name, content string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "name":
				name = strings.ToLower(attr.Val)
			case "content":
				content = strings.TrimSpace(attr.Val)
			}
		}
		if name == "citation_author" && content != "" {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if name := findCitationAuthorMeta(c); name != "" {
			return name
		}
	}
	return ""
}

var authorClassPrefixes = []string{"name", "full-name", "citation-author"}

func findAuthorNode(n *html.Node) string {
	if n.Type == html.ElementNode && (n.Data == "span" || n.Data == "a") {
		for _, attr := range n.Attr {
			if attr.Key != "class" {
				continue
			}
			class := strings.ToLower(attr.Val)
			for _, prefix := range authorClassPrefixes {
				if strings.HasPrefix(class, prefix) {
					if text := nodeText(n); text != "" {
						return text
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if name := findAuthorNode(c); name != "" {
			return name
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
