package model

import (
	"strings"
	"time"
)

// Config is the complete quotevet configuration. Lexicons and domain lists
// are plain data injected at construction so tests can substitute them.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Classifier  ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	Lexicon     LexiconConfig     `yaml:"lexicon" mapstructure:"lexicon"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	Harvest     HarvestConfig     `yaml:"harvest" mapstructure:"harvest"`
	Curation    CurationConfig    `yaml:"curation" mapstructure:"curation"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the fetch collaborator
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	// FetchDelay is the polite minimum spacing between consecutive fetches
	// in validation/harvest loops.
	FetchDelay time.Duration `yaml:"fetch_delay" mapstructure:"fetch_delay"`
}

// ClassifierConfig holds the host lists behind source-tier classification
type ClassifierConfig struct {
	PMCHosts       []string `yaml:"pmc_hosts" mapstructure:"pmc_hosts"`
	PubMedHosts    []string `yaml:"pubmed_hosts" mapstructure:"pubmed_hosts"`
	DOIHosts       []string `yaml:"doi_hosts" mapstructure:"doi_hosts"`
	JournalDomains []string `yaml:"journal_domains" mapstructure:"journal_domains"`
	VideoDomains   []string `yaml:"video_domains" mapstructure:"video_domains"`
}

// LexiconConfig carries every term list used by the ranker and the
// curation engine.
type LexiconConfig struct {
	// BenefitTerms: outcome/efficacy vocabulary a marketable sentence must contain
	BenefitTerms []string `yaml:"benefit_terms" mapstructure:"benefit_terms"`
	// ExcludeTerms: mechanistic/assay vocabulary that disqualifies a sentence
	ExcludeTerms []string `yaml:"exclude_terms" mapstructure:"exclude_terms"`
	// AnimalTerms: animal/preclinical context markers
	AnimalTerms []string `yaml:"animal_terms" mapstructure:"animal_terms"`
	// NegativeTerms: hedging/negative qualifiers rejected at promotion
	NegativeTerms []string `yaml:"negative_terms" mapstructure:"negative_terms"`
	// NoiseTerms: site-furniture boilerplate stripped before scoring
	NoiseTerms []string `yaml:"noise_terms" mapstructure:"noise_terms"`
	// KeywordWeights: positivity weight per matched keyword
	KeywordWeights map[string]float64 `yaml:"keyword_weights" mapstructure:"keyword_weights"`
	// StudyDesignTerms: randomized/blinded/meta-analytic markers (+0.8)
	StudyDesignTerms []string `yaml:"study_design_terms" mapstructure:"study_design_terms"`
	// PopulationTerms: human population descriptors (+0.5)
	PopulationTerms []string `yaml:"population_terms" mapstructure:"population_terms"`
	// Synonyms: per-entity synonym lists, keyed by lowercase entity name
	Synonyms map[string][]string `yaml:"synonyms" mapstructure:"synonyms"`
}

// SynonymsFor returns the registered synonyms for an entity name, or nil.
func (l *LexiconConfig) SynonymsFor(entity string) []string {
	if l.Synonyms == nil {
		return nil
	}
	return l.Synonyms[strings.ToLower(entity)]
}

// ValidationConfig tunes the quote validator
type ValidationConfig struct {
	// MinScore accepts a non-exact match as verified in filtered output
	MinScore float64 `yaml:"min_score" mapstructure:"min_score"`
	// MaxPDFPages bounds the extraction latency on long PDFs
	MaxPDFPages int `yaml:"max_pdf_pages" mapstructure:"max_pdf_pages"`
}

// HarvestConfig tunes candidate discovery
type HarvestConfig struct {
	MinQuotes   int `yaml:"min_quotes" mapstructure:"min_quotes"`     // target proposals per entity
	MaxPapers   int `yaml:"max_papers" mapstructure:"max_papers"`     // papers scanned per entity
	MaxEntities int `yaml:"max_entities" mapstructure:"max_entities"` // entities processed per run
	PageSize    int `yaml:"page_size" mapstructure:"page_size"`       // discovery result page size
}

// CurationConfig holds the promotion filter thresholds
type CurationConfig struct {
	MinLength       int      `yaml:"min_length" mapstructure:"min_length"`
	MaxLength       int      `yaml:"max_length" mapstructure:"max_length"`
	MinPositivity   float64  `yaml:"min_positivity" mapstructure:"min_positivity"`
	PerEntityCap    int      `yaml:"per_entity_cap" mapstructure:"per_entity_cap"`
	AllowedEntities []string `yaml:"allowed_entities" mapstructure:"allowed_entities"`
}

// ConcurrencyConfig controls batch validation parallelism. Curation stays
// single-threaded so identifier assignment and dedup insertion remain
// serialized.
type ConcurrencyConfig struct {
	FileWorkers       int     `yaml:"file_workers" mapstructure:"file_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls the fetched-document cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in configuration, including the full
// default lexicons.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/124.0 Safari/537.36",
			MaxBodyBytes: 2_000_000,
			FetchDelay:   time.Second,
		},
		Classifier: ClassifierConfig{
			PMCHosts:    []string{"pmc.ncbi.nlm.nih.gov"},
			PubMedHosts: []string{"pubmed.ncbi.nlm.nih.gov"},
			DOIHosts:    []string{"doi.org", "dx.doi.org"},
			JournalDomains: []string{
				"frontiersin.org", "nature.com", "embopress.org", "sciencedirect.com",
				"springer.com", "wiley.com", "cell.com", "thelancet.com", "nejm.org",
				"jamanetwork.com", "bmj.com", "karger.com", "mdpi.com", "plos.org",
				"sagepub.com", "tandfonline.com", "acs.org", "rsc.org", "oup.com",
				"academic.oup.com", "cambridge.org", "icmje.org", "biomedcentral.com",
				"onlinelibrary.wiley.com", "link.springer.com", "ingentaconnect.com",
				"pnas.org", "europepmc.org", "elifesciences.org",
				"spandidos-publications.com", "oncotarget.com", "liebertpub.com",
				"aacrjournals.org", "physiology.org",
			},
			VideoDomains: []string{"youtube.com", "youtu.be"},
		},
		Lexicon: LexiconConfig{
			BenefitTerms: []string{
				// efficacy/outcomes
				"reduces", "reduced", "reduction", "decreases", "decreased",
				"improves", "improved", "improvement", "enhances", "enhanced",
				"effective", "efficacy", "efficacious", "superior",
				// clinical metrics
				"weight loss", "body weight", "bmi", "waist circumference", "vat",
				"pain", "wound healing", "healing time", "symptoms", "severity",
				"quality of life", "qol", "response rate", "remission", "clearance",
				// safety/tolerability
				"well tolerated", "tolerability", "adverse events", "safety profile",
			},
			ExcludeTerms: []string{
				"receptor", "pathway", "binding affinity", "affinity",
				"gene expression", "mrna", "protein expression",
				"in vitro", "in vivo imaging", "radiolabel", "radiolabeling",
				"assay", "cell line", "cells were", "fragmented",
				"sequence", "synthesis", "solid-phase", "peptide synthesis",
				"transfected", "western blot", "immunostaining", "chromatography",
				// plant/genotype false positives for ahk-cu
				"ahk-200", "cucumis", "melon genotype", "plant",
			},
			AnimalTerms: []string{
				"rat", "rats", "mouse", "mice", "murine", "hamster", "guinea pig",
				"rabbit", "canine", "feline", "porcine", "ovine", "bovine", "primate",
				"avian", "chicken", "zebrafish", "fish", "yak", "yaks",
				"sprague-dawley", "c57bl/6", "in rats", "in mice", "in yaks", "rat models",
			},
			NegativeTerms: []string{
				"hindered", "lack evidence", "not statistically significant",
				"no significant", "may be", "may", "potential to", "in vitro",
			},
			NoiseTerms: []string{
				"skip to main content", "official website", "view in nlm catalog",
				"add to search", "open in a new tab", "figure", "table",
				"supplementary", "copyright", "license", "click here",
				"journal list", "pmc",
			},
			KeywordWeights: map[string]float64{
				"effective":              2.0,
				"efficacy":               1.5,
				"beneficial":             1.5,
				"significant":            1.5,
				"clinically significant": 2.0,
				"improved":               1.5,
				"improves":               1.5,
				"improvement":            1.5,
				"promotes":               1.25,
				"protective":             1.25,
				"well tolerated":         2.0,
				"safe":                   1.5,
				"safe and effective":     2.5,
				"reduced":                1.5,
				"reduces":                1.5,
				"increase":               1.0,
				"increases":              1.0,
				"enhanced":               1.2,
				"enhances":               1.2,
				"favorable":              1.2,
				"favorable safety":       1.7,
				"robust":                 1.3,
				"substantial":            1.3,
				"potent":                 1.2,
			},
			StudyDesignTerms: []string{
				"randomized", "double-blind", "placebo-controlled",
				"meta-analysis", "systematic review", "trial",
			},
			PopulationTerms: []string{
				"patients", "participants", "adults", "men", "women", "human",
			},
			Synonyms: map[string][]string{
				"semaglutide":      {"ozempic", "wegovy", "glp-1 receptor agonist", "glp-1ra"},
				"tirzepatide":      {"mounjaro", "glp-1 gip dual agonist", "glp-1/gip"},
				"bpc-157":          {"body protection compound", "pentadecapeptide bpc157", "bpc 157"},
				"mots-c":           {"mots c", "mitochondrial-derived peptide", "mdp"},
				"thymosin alpha-1": {"tα1", "thymalfasin", "thymosin a1"},
				"tb-500":           {"thymosin beta-4", "tb4", "tβ4"},
				"cjc-1295":         {"cjc1295", "ghrh analog", "cjc-1295 dac"},
				"sermorelin":       {"ghrh 1-29", "sermorelin acetate"},
				"ipamorelin":       {"gh secretagogue", "ghrelin receptor agonist"},
				"igf-1 lr3":        {"lr3 igf-1", "insulin-like growth factor long r3"},
				"aod9604":          {"gh fragment 177-191", "hgh fragment 176-191"},
				"dsip":             {"delta sleep-inducing peptide"},
				"nad+":             {"nicotinamide adenine dinucleotide", "nad plus"},
				"tesamorelin":      {"egrifta", "th9507", "grf 1-44 analog"},
				"pt-141":           {"bremelanotide"},
				"bremelanotide":    {"pt-141", "pt141"},
				"kisspeptin-10":    {"kisspeptin", "kp-10", "kiss1"},
				"ll-37":            {"cathelicidin", "hcap18", "camp"},
				"ghk-cu":           {"copper peptide", "gly-his-lys-cu", "ghk cu", "ghk"},
				"ahk-cu":           {"ala-his-lys-cu", "ahk cu", "ahk"},
				"afamelanotide":    {"melanotan-1", "melanotan 1", "scenesse"},
				"gonadorelin":      {"gnrh", "gonadotropin-releasing hormone", "lhrh"},
				"ss-31":            {"elamipretide", "mtp-131"},
				"elamipretide":     {"ss-31", "mtp-131"},
				"retatrutide":      {"ly3437943"},
				"survodutide":      {"bi 456906"},
			},
		},
		Validation: ValidationConfig{
			MinScore:    0.9,
			MaxPDFPages: 75,
		},
		Harvest: HarvestConfig{
			MinQuotes:   3,
			MaxPapers:   15,
			MaxEntities: 5,
			PageSize:    25,
		},
		Curation: CurationConfig{
			MinLength:     60,
			MaxLength:     350,
			MinPositivity: 1.8,
			PerEntityCap:  3,
		},
		Concurrency: ConcurrencyConfig{
			FileWorkers:       1,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
