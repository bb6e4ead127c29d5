// Package classify maps a document's URL and declared content type to a
// source tier. Classification is deterministic and never inspects the
// document body.
package classify

import (
	"net/url"
	"strings"

	"github.com/7urk3r/quotevet/internal/model"
)

// SourceClassifier classifies document references into source tiers
type SourceClassifier struct {
	config     *model.ClassifierConfig
	pmcSet     map[string]bool
	pubmedSet  map[string]bool
	doiSet     map[string]bool
	journalSet map[string]bool
	videoSet   map[string]bool
}

// NewSourceClassifier creates a classifier from the given host lists.
// A nil config uses the built-in defaults.
func NewSourceClassifier(config *model.ClassifierConfig) *SourceClassifier {
	if config == nil {
		config = &model.DefaultConfig().Classifier
	}

	c := &SourceClassifier{
		config:     config,
		pmcSet:     hostSet(config.PMCHosts),
		pubmedSet:  hostSet(config.PubMedHosts),
		doiSet:     hostSet(config.DOIHosts),
		journalSet: hostSet(config.JournalDomains),
		videoSet:   hostSet(config.VideoDomains),
	}
	return c
}

func hostSet(hosts []string) map[string]bool {
	set := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		set[strings.ToLower(h)] = true
	}
	return set
}

// Classify maps a URL and optional declared content type to a SourceTier.
// Rule order: PDF, PMC, PubMed, DOI resolver, journal allow-list, video,
// then generic web. Total: unknown input falls through to TierGenericWeb.
func (c *SourceClassifier) Classify(rawURL, contentType string) model.SourceTier {
	lower := strings.ToLower(strings.TrimSpace(rawURL))

	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return model.TierPDF
	}

	parsed, err := url.Parse(lower)
	if err != nil || parsed.Host == "" {
		// No parseable host; the suffix check is all we can do
		if strings.HasSuffix(lower, ".pdf") {
			return model.TierPDF
		}
		return model.TierGenericWeb
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if strings.HasSuffix(parsed.Path, ".pdf") || strings.HasSuffix(lower, ".pdf") {
		return model.TierPDF
	}
	if matchHost(host, c.pmcSet) {
		return model.TierPMC
	}
	if matchHost(host, c.pubmedSet) {
		return model.TierPubMed
	}
	if matchHost(host, c.doiSet) {
		return model.TierDOI
	}
	if matchHost(host, c.journalSet) {
		return model.TierJournal
	}
	if matchHost(host, c.videoSet) {
		return model.TierVideo
	}
	return model.TierGenericWeb
}

// matchHost reports whether host equals an entry or sits under one
// (e.g. www.nature.com under nature.com).
func matchHost(host string, set map[string]bool) bool {
	if set[host] {
		return true
	}
	for domain := range set {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
