package recitation

import (
	"math"
	"testing"
)

func TestSimilarityIdentity(t *testing.T) {
	s := NewScorer()
	for _, w := range []string{"بسم", "الله", "الرحمن", "قل"} {
		if got := s.Similarity(w, w); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", w, w, got)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	s := NewScorer()
	if got := s.Similarity("بسم", ""); got != 0 {
		t.Errorf("Similarity(w, \"\") = %v, want 0", got)
	}
	if got := s.Similarity("", "بسم"); got != 0 {
		t.Errorf("Similarity(\"\", w) = %v, want 0", got)
	}
	if got := s.Similarity("", ""); got != 0 {
		t.Errorf("Similarity(\"\", \"\") = %v, want 0", got)
	}
}

func TestSimilarityEditDistance(t *testing.T) {
	s := NewScorer()
	// One substitution across six letters.
	got := s.Similarity("الرحمن", "الرحمد")
	if math.Abs(got-5.0/6.0) > 1e-9 {
		t.Errorf("Similarity = %v, want %v", got, 5.0/6.0)
	}
	// Completely different words stay low.
	if got := s.Similarity("قل", "الرحمن"); got > partialThreshold {
		t.Errorf("Similarity for unrelated words = %v, want <= %v", got, partialThreshold)
	}
}

func TestConfusionNote(t *testing.T) {
	s := NewScorer()

	// ص recited where the reference has س.
	note, ok := s.ConfusionNote("سراط", "صراط")
	if !ok {
		t.Fatal("expected a confusion note for س/ص")
	}
	if note == "" {
		t.Error("note should describe the confusion")
	}

	// Confusions are symmetric.
	if _, ok := s.ConfusionNote("صراط", "سراط"); !ok {
		t.Error("expected confusion note in the reverse direction")
	}

	// Non-confusable difference is not flagged.
	if _, ok := s.ConfusionNote("قال", "قام"); ok {
		t.Error("ل/م must not be flagged as confusable")
	}

	// Different lengths never match positionally.
	if _, ok := s.ConfusionNote("سراط", "صراطا"); ok {
		t.Error("length mismatch must not be flagged")
	}

	// Identical words carry no issue.
	if _, ok := s.ConfusionNote("سراط", "سراط"); ok {
		t.Error("identical words must not be flagged")
	}
}
