// Package relevance filters ingested articles down to conflict-domain items
// with a recognizable local place reference.
package relevance

import "strings"

// conflictVocabulary is the domain keyword set. An article matching none of
// these is irrelevant no matter how many place names it mentions.
var conflictVocabulary = []string{
	"killed", "attack", "gunmen", "bandit", "kidnap", "abduct", "insurgent",
	"boko haram", "iswap", "terroris", "explosion", "bomb", "herdsmen",
	"clash", "militant", "massacre", "ambush", "raid", "violence", "shooting",
	"cultist", "unrest", "riot", "casualt", "fatalit", "troops",
}

// Filter combines the conflict-vocabulary test with a local-place test.
type Filter struct {
	vocabulary []string
	places     []string
}

// NewFilter builds a filter over the default conflict vocabulary and the
// supplied place-name list (normally the gazetteer's known names).
func NewFilter(places []string) *Filter {
	lowered := make([]string, 0, len(places))
	for _, place := range places {
		if place = strings.ToLower(strings.TrimSpace(place)); place != "" {
			lowered = append(lowered, place)
		}
	}
	return &Filter{vocabulary: conflictVocabulary, places: lowered}
}

// IsRelevant applies both keyword tests over title+body+summary. Feeds already
// scoped to the conflict domain set scoped=true to bypass the place test.
func (f *Filter) IsRelevant(title, body, summary string, scoped bool) bool {
	haystack := strings.ToLower(title + " " + body + " " + summary)

	if !matchesAny(haystack, f.vocabulary) {
		return false
	}
	if scoped {
		return true
	}
	return matchesAny(haystack, f.places)
}

func matchesAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
