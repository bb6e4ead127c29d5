package normalize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPDFPages bounds extraction latency on long documents.
const DefaultMaxPDFPages = 50

// FromPDF extracts text from a PDF page by page, up to maxPages. Pages
// that fail extraction contribute an empty string; only a document the
// reader cannot open at all is unparseable.
func FromPDF(raw []byte, maxPages int) (text string, err error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPDFPages
	}

	// The pdf reader panics on some malformed inputs; degrade those to
	// an unparseable result like any other extraction failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: pdf reader panic: %v", ErrUnparseable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrUnparseable, err)
	}

	n := reader.NumPage()
	if n > maxPages {
		n = maxPages
	}

	var pages []string
	for i := 1; i <= n; i++ {
		pages = append(pages, extractPage(reader, i))
	}
	return Whitespace(strings.Join(pages, "\n")), nil
}

func extractPage(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
