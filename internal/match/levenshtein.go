package match

// Levenshtein computes the edit distance between two strings, counted in runes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// keep the shorter string in ra so the rows stay small
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance/longest, in [0, 1]. Identical strings score 1.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(longest)
}

// IdentSimilarity compares two identifiers after NormalizeIdent.
func IdentSimilarity(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}
