package recitation

import "fmt"

// Word-classification thresholds on the per-word similarity scale.
const (
	closeThreshold   = 0.8
	partialThreshold = 0.5
)

// Scorer measures how close a recited word is to the reference word and
// flags known letter confusions. Implementations must be safe for
// concurrent use.
type Scorer interface {
	Similarity(expected, actual string) float64
	ConfusionNote(expected, actual string) (string, bool)
}

// LevenshteinScorer is the default word scorer: normalized edit distance
// plus a small table of letter pairs that recitations commonly confuse.
type LevenshteinScorer struct{}

// NewScorer returns the default scorer.
func NewScorer() *LevenshteinScorer { return &LevenshteinScorer{} }

// confusablePairs lists letters whose articulation points are close enough
// that a transcription mix-up suggests a tajweed issue rather than a wrong
// word. Pairs are checked in both directions.
var confusablePairs = map[[2]rune]struct{}{
	{'ض', 'ظ'}: {},
	{'س', 'ص'}: {},
	{'ت', 'ط'}: {},
	{'ذ', 'ز'}: {},
	{'ث', 'س'}: {},
	{'ق', 'ك'}: {},
	{'ح', 'ه'}: {},
	{'ع', 'ء'}: {},
	{'د', 'ض'}: {},
	{'ا', 'أ'}: {},
	{'ا', 'إ'}: {},
	{'ا', 'آ'}: {},
	{'ه', 'ة'}: {},
	{'ي', 'ى'}: {},
}

func confusable(a, b rune) bool {
	if _, ok := confusablePairs[[2]rune{a, b}]; ok {
		return true
	}
	_, ok := confusablePairs[[2]rune{b, a}]
	return ok
}

// Similarity returns 1 for identical non-empty words, 0 when either side is
// empty, and 1-dist/maxLen otherwise.
func (s *LevenshteinScorer) Similarity(expected, actual string) float64 {
	if expected == actual {
		if expected == "" {
			return 0
		}
		return 1
	}
	if expected == "" || actual == "" {
		return 0
	}

	a, b := []rune(expected), []rune(actual)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

// ConfusionNote reports a "possible tajweed issue" when two same-length
// words differ only at positions holding confusable letter pairs.
func (s *LevenshteinScorer) ConfusionNote(expected, actual string) (string, bool) {
	a, b := []rune(expected), []rune(actual)
	if len(a) != len(b) || len(a) == 0 {
		return "", false
	}

	var first [2]rune
	found := false
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !confusable(a[i], b[i]) {
			return "", false
		}
		if !found {
			first = [2]rune{a[i], b[i]}
			found = true
		}
	}
	if !found {
		return "", false
	}
	return fmt.Sprintf("possible tajweed issue: %c pronounced as %c", first[0], first[1]), true
}

// levenshtein computes the edit distance between two rune slices using the
// two-row dynamic programming form.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
