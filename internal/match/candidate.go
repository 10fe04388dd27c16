package match

import (
	"sort"
	"strings"
)

// DefaultSuggestionThreshold is the minimum IdentSimilarity for a suggestion.
const DefaultSuggestionThreshold = 0.6

// Candidate is a field name scored against a header.
type Candidate struct {
	Name  string
	Score float64
}

// FindFold returns the first name equal to header under Unicode case folding.
func FindFold(header string, names []string) (string, bool) {
	for _, name := range names {
		if strings.EqualFold(header, name) {
			return name, true
		}
	}

	return "", false
}

// Rank scores every name against header, best first. Ties keep name order.
func Rank(header string, names []string) []Candidate {
	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		out = append(out, Candidate{Name: name, Score: IdentSimilarity(header, name)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Suggest returns up to limit names scoring at least threshold against header.
func Suggest(header string, names []string, threshold float64, limit int) []string {
	var out []string

	for _, c := range Rank(header, names) {
		if c.Score < threshold || len(out) == limit {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
