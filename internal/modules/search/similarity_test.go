package search

import "testing"

func TestSimilarityBounds(t *testing.T) {
	if got := Similarity("arroz", "arroz"); got != 1.0 {
		t.Errorf("identical strings: got %v, want 1.0", got)
	}
	if got := Similarity("arroz", "feijao"); got >= SimilarityThreshold {
		t.Errorf("unrelated strings: got %v, want below threshold", got)
	}
	if got := Similarity("", "arroz"); got != 0 {
		t.Errorf("empty string: got %v, want 0", got)
	}
	if got := Similarity("", ""); got != 0 {
		t.Errorf("both empty: got %v, want 0", got)
	}
}

func TestSimilarityToleratesTypos(t *testing.T) {
	// A one-letter slip should still clear the fuzzy threshold.
	if got := Similarity("arroz", "aroz"); got <= SimilarityThreshold {
		t.Errorf("typo query: got %v, want above threshold %v", got, SimilarityThreshold)
	}
}

func TestSimilarityIsSymmetric(t *testing.T) {
	a, b := "leite integral", "leite desnatado"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("similarity not symmetric for %q / %q", a, b)
	}
}

func TestTrigrams(t *testing.T) {
	set := Trigrams("ab")
	// pg_trgm padding of "ab": "  ab " yields "  a", " ab", "ab ".
	for _, g := range []string{"  a", " ab", "ab "} {
		if _, ok := set[g]; !ok {
			t.Errorf("Trigrams(%q) missing %q", "ab", g)
		}
	}
	if len(set) != 3 {
		t.Errorf("Trigrams(%q) = %d grams, want 3", "ab", len(set))
	}

	// Words are tokenized independently.
	multi := Trigrams("ab cd")
	if _, ok := multi["b c"]; ok {
		t.Error("trigrams must not span word boundaries")
	}
}

func TestMatchPredicates(t *testing.T) {
	tests := []struct {
		name, query    string
		contains       bool
		aboveThreshold bool
	}{
		{"arroz tio joao", "arroz", true, true},
		{"arroz tio joao", "tio", true, false},
		{"feijao", "arroz", false, false},
		{"arroz", "arroz", true, true},
	}
	for _, tt := range tests {
		if got := containsMatch(tt.name, tt.query); got != tt.contains {
			t.Errorf("containsMatch(%q, %q) = %v, want %v", tt.name, tt.query, got, tt.contains)
		}
		if got := similarityMatch(tt.name, tt.query); got != tt.aboveThreshold {
			t.Errorf("similarityMatch(%q, %q) = %v, want %v", tt.name, tt.query, got, tt.aboveThreshold)
		}
	}
}
