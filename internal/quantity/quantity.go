// Package quantity converts vague natural-language casualty phrases into
// deterministic point-estimate integers.
package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

var digitExpr = regexp.MustCompile(`\d+`)

// phraseEstimate pairs a vague-quantity phrase with its fixed point estimate.
// The slice is ordered most-specific-first: overlapping phrases ("more than a
// dozen" vs "a dozen") must resolve before their shorter variants. Matching is
// substring containment, so the order is load-bearing.
type phraseEstimate struct {
	phrase   string
	estimate int
}

var vaguePhrases = []phraseEstimate{
	{"hundreds", 100},
	{"more than a dozen", 18},
	{"over a dozen", 18},
	{"dozens", 24},
	{"a dozen", 12},
	{"scores", 20},
	{"several", 5},
	{"a few", 3},
	{"three", 3},
	{"a couple", 2},
	{"two", 2},
}

// negations indicate an explicit absence of casualties and take precedence
// over the bare casualty-word default.
var negations = []string{
	"no deaths",
	"no death",
	"no casualties",
	"no casualty",
	"no fatalities",
	"no fatality",
	"none killed",
	"no one was killed",
	"nobody was killed",
	"without casualties",
}

var casualtyWords = []string{
	"killed", "dead", "death", "died", "casualt", "fatalit", "massacre", "slain", "lives lost",
}

// Normalize resolves a raw fatality value to a non-negative integer. Order:
// literal number, vague-phrase table, explicit negation, casualty word with
// no quantity (defaults to 1), else zero. Pure and deterministic.
func Normalize(raw string) int {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return 0
	}

	if match := digitExpr.FindString(text); match != "" {
		if n, err := strconv.Atoi(match); err == nil && n >= 0 {
			return n
		}
	}

	for _, entry := range vaguePhrases {
		if strings.Contains(text, entry.phrase) {
			return entry.estimate
		}
	}

	for _, phrase := range negations {
		if strings.Contains(text, phrase) {
			return 0
		}
	}

	for _, word := range casualtyWords {
		if strings.Contains(text, word) {
			return 1
		}
	}

	return 0
}

// MentionsCasualties reports whether the text contains any casualty-indicating
// vocabulary, negated or not.
func MentionsCasualties(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range casualtyWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
