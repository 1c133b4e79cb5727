package search

import "strings"

// SimilarityThreshold is the minimum trigram similarity for a fuzzy match,
// on a 0.0–1.0 scale.
const SimilarityThreshold = 0.3

// Trigrams returns the set of 3-grams of s, tokenized the way pg_trgm does
// it: each word padded with two leading spaces and one trailing space.
func Trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(s) {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity scores how close two strings are as the ratio of shared
// trigrams to total distinct trigrams: 0 means no shared structure, 1 means
// identical. Inputs are expected to be normalized already.
func Similarity(a, b string) float64 {
	ta, tb := Trigrams(a), Trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}

// containsMatch is the loose predicate: the normalized product name carries
// the normalized query as a substring.
func containsMatch(name, query string) bool {
	return strings.Contains(name, query)
}

// similarityMatch is the fuzzy predicate: trigram similarity above the
// threshold.
func similarityMatch(name, query string) bool {
	return Similarity(name, query) > SimilarityThreshold
}
