package textutils

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// DefaultLegalTerms is the built-in vocabulary whose presence marks text as
// legal prose.
var DefaultLegalTerms = []string{
	"request for production",
	"case no",
	"plaintiff",
	"defendant",
	"attorney",
	"counsel",
	"court",
	"motion",
	"deposition",
	"interrogatories",
	"subpoena",
	"affidavit",
	"discovery",
	"law firm",
	"llp",
	"esq",
	"petitioner",
	"respondent",
	"pursuant to",
	"complaint",
	"exhibit",
}

// Quality component weights and the legal-term floors.
const (
	weightAlphabetic = 0.4
	weightLength     = 0.3
	weightDiversity  = 0.2
	weightSentences  = 0.2

	lengthSaturation = 1000.0

	floorOneTerm    = 0.7
	floorTwoTerms   = 0.8
	floorThreeTerms = 0.9
)

// Scorer computes the heuristic quality of recovered text. A Scorer is
// immutable and safe for concurrent use.
type Scorer struct {
	terms   []string
	pattern *regexp.Regexp
}

// NewScorer builds a Scorer over DefaultLegalTerms plus extra terms.
// Terms are matched case-insensitively on word boundaries.
func NewScorer(extra ...string) *Scorer {
	seen := make(map[string]bool)
	var terms []string
	for _, t := range append(append([]string{}, DefaultLegalTerms...), extra...) {
		t = strings.ToLower(strings.Join(strings.Fields(t), " "))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	// longest first so "case no" wins over a shorter overlapping term
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

	alts := make([]string, len(terms))
	for i, t := range terms {
		words := strings.Fields(t)
		for k, w := range words {
			words[k] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}

	return &Scorer{
		terms:   terms,
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`),
	}
}

var defaultScorer = NewScorer()

// DefaultScorer returns the Scorer over the built-in vocabulary.
func DefaultScorer() *Scorer { return defaultScorer }

// Terms returns the normalized vocabulary.
func (s *Scorer) Terms() []string {
	return append([]string(nil), s.terms...)
}

// LegalTermCount returns the number of distinct vocabulary terms in text.
func (s *Scorer) LegalTermCount(text string) int {
	found := make(map[string]bool)
	for _, m := range s.pattern.FindAllString(text, -1) {
		found[strings.ToLower(strings.Join(strings.Fields(m), " "))] = true
	}
	return len(found)
}

// Quality scores text in [0,1]:
//
//	0.4 * share of alphabetic tokens (two letters or more)
//	0.3 * min(len/1000, 1)
//	0.2 * share of distinct lower-cased tokens
//	0.2 * min(10 * sentence terminators / tokens, 1)
//
// The sum is clamped, then raised to 0.7, 0.8 or 0.9 when one, two, or
// three or more distinct legal terms occur.
func (s *Scorer) Quality(text string) float64 {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0
	}

	alphabetic := 0
	distinct := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		distinct[strings.ToLower(tok)] = struct{}{}
		if isAlphabeticWord(tok) {
			alphabetic++
		}
	}

	terminators := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	n := float64(len(tokens))

	score := weightAlphabetic*float64(alphabetic)/n +
		weightLength*math.Min(float64(len(text))/lengthSaturation, 1) +
		weightDiversity*float64(len(distinct))/n +
		weightSentences*math.Min(10*float64(terminators)/n, 1)
	score = math.Max(0, math.Min(1, score))

	switch terms := s.LegalTermCount(text); {
	case terms >= 3:
		score = math.Max(score, floorThreeTerms)
	case terms == 2:
		score = math.Max(score, floorTwoTerms)
	case terms == 1:
		score = math.Max(score, floorOneTerm)
	}
	return score
}

// isAlphabeticWord reports whether tok, stripped of surrounding
// punctuation, is made of at least two letters.
func isAlphabeticWord(tok string) bool {
	tok = strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	count := 0
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
		count++
	}
	return count >= 2
}

// CountWords counts the tokens of text made of two letters or more,
// ignoring surrounding punctuation.
func CountWords(text string) int {
	n := 0
	for _, tok := range strings.Fields(text) {
		if isAlphabeticWord(tok) {
			n++
		}
	}
	return n
}

// Quality scores text with the default vocabulary.
func Quality(text string) float64 {
	return defaultScorer.Quality(text)
}
