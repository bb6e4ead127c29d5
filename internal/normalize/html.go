package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML extracts the visible text of an HTML document in document
// order, skipping script/style/noscript/iframe subtrees, and collapses
// whitespace.
func FromHTML(raw []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(Decode(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", ErrUnparseable, err)
	}
	return Whitespace(VisibleText(doc)), nil
}

// VisibleText walks an HTML node collecting rendered text in document order.
func VisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
