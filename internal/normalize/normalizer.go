package normalize

import (
	"strings"

	"github.com/7urk3r/quotevet/internal/model"
)

// Normalizer dispatches raw document bytes to the right extractor based
// on the declared content type and source tier.
type Normalizer struct {
	maxPDFPages int
}

// New creates a Normalizer. maxPDFPages <= 0 uses DefaultMaxPDFPages.
func New(maxPDFPages int) *Normalizer {
	return &Normalizer{maxPDFPages: maxPDFPages}
}

// Normalize converts raw bytes into plain text. PDF is selected when the
// declared content type mentions pdf or the tier is TierPDF; everything
// else is treated as HTML/text.
func (n *Normalizer) Normalize(raw []byte, contentType string, tier model.SourceTier) (string, error) {
	if strings.Contains(strings.ToLower(contentType), "pdf") || tier == model.TierPDF {
		return FromPDF(raw, n.maxPDFPages)
	}
	return FromHTML(raw)
}
