// Package detect scans extracted resume text for the structural and content
// signals the scoring rules consume. Detection is pure: the same text and
// keyword list always produce the same SignalSet, and every signal is
// populated on every run so rule evaluation can rely on total presence.
package detect

import (
	"regexp"
	"strings"
)

// Bucket classifies the total word count of a resume.
type Bucket string

const (
	TooShort Bucket = "too_short"
	Ideal    Bucket = "ideal"
	TooLong  Bucket = "too_long"
)

const (
	minIdealWords = 150
	maxIdealWords = 800
)

// CanonicalSections lists the section headings the detector looks for, in
// the order the scoring feedback reports them.
var CanonicalSections = []string{
	"summary",
	"experience",
	"education",
	"skills",
	"projects",
	"certifications",
}

// sectionPatterns maps each canonical section to its heading synonyms.
var sectionPatterns = map[string]*regexp.Regexp{
	"summary":        regexp.MustCompile(`(?i)\b(summary|objective|profile)\b`),
	"experience":     regexp.MustCompile(`(?i)\b(experience|work\s+history|employment)\b`),
	"education":      regexp.MustCompile(`(?i)\b(education|academic)\b`),
	"skills":         regexp.MustCompile(`(?i)\b(skills|technical\s+skills|competencies)\b`),
	"projects":       regexp.MustCompile(`(?i)\b(projects|portfolio)\b`),
	"certifications": regexp.MustCompile(`(?i)\b(certifications?|licenses)\b`),
}

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(\d{3}\)[-.\s]?|\d{3}[-.\s]?)\d{3}[-.\s]?\d{4}`)
	datePattern  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// bulletGlyphs are tokens treated as bullet markers. Line structure does not
// survive whitespace normalization, so bullets are counted as standalone
// glyph tokens rather than line prefixes.
var bulletGlyphs = map[string]bool{
	"-": true,
	"•": true,
	"*": true,
}

// riskyGlyphs are characters that commonly indicate layout tables or
// multi-column formatting, both known to break ATS parsers. The check is
// best-effort.
var riskyGlyphs = []string{"|", "│", "┃", "║", "┌", "└", "├", "┤", "◦", "▪", "➤", "❖"}

// SignalSet holds every detected signal for one scoring run. It is built
// once per run and read-only afterwards.
type SignalSet struct {
	HasEmail        bool
	HasPhone        bool
	HasDates        bool
	Sections        []string
	BulletCount     int
	KeywordHits     []string
	WordCount       int
	Length          Bucket
	RiskyFormatting bool
}

// Detector matches resume text against a fixed keyword list. The list is
// supplied at construction and never mutated, so a single Detector is safe
// to share across concurrent runs.
type Detector struct {
	keywords []keywordMatcher
}

type keywordMatcher struct {
	keyword string
	pattern *regexp.Regexp
}

// New builds a detector for the given keyword list. Keywords are matched
// case-insensitively as whole words; patterns are compiled once here.
func New(keywords []string) *Detector {
	matchers := make([]keywordMatcher, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		matchers = append(matchers, keywordMatcher{
			keyword: kw,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}

	return &Detector{keywords: matchers}
}

// Detect derives the full signal set from normalized resume text.
func (d *Detector) Detect(text string) SignalSet {
	lower := strings.ToLower(text)
	words := strings.Fields(text)

	signals := SignalSet{
		HasEmail:        emailPattern.MatchString(text),
		HasPhone:        phonePattern.MatchString(text),
		HasDates:        datePattern.MatchString(text),
		Sections:        detectSections(lower),
		BulletCount:     countBullets(words),
		KeywordHits:     d.matchKeywords(lower),
		WordCount:       len(words),
		RiskyFormatting: hasRiskyFormatting(text),
	}
	signals.Length = bucketLength(signals.WordCount)

	return signals
}

func detectSections(lower string) []string {
	found := make([]string, 0, len(CanonicalSections))
	for _, section := range CanonicalSections {
		if sectionPatterns[section].MatchString(lower) {
			found = append(found, section)
		}
	}
	return found
}

func countBullets(words []string) int {
	count := 0
	for _, w := range words {
		if bulletGlyphs[w] {
			count++
		}
	}
	return count
}

func (d *Detector) matchKeywords(lower string) []string {
	hits := make([]string, 0, len(d.keywords))
	for _, m := range d.keywords {
		if m.pattern.MatchString(lower) {
			hits = append(hits, m.keyword)
		}
	}
	return hits
}

func bucketLength(wordCount int) Bucket {
	switch {
	case wordCount < minIdealWords:
		return TooShort
	case wordCount > maxIdealWords:
		return TooLong
	default:
		return Ideal
	}
}

func hasRiskyFormatting(text string) bool {
	for _, glyph := range riskyGlyphs {
		if strings.Contains(text, glyph) {
			return true
		}
	}
	return false
}
