// Package hasanat computes reward points for recitation activity. The
// calculator is a pure function; appending the resulting ledger entry and
// deduplicating replays is the caller's responsibility.
package hasanat

import (
	"fmt"
	"math"

	"github.com/hifzhub/murajaah/internal/entity"
)

// Points per Arabic letter for plain recitation logging.
const pointsPerLetter = 10

// ComputeReward maps letter count and confidence to a point amount.
//
// Plain recitation is rewarded per letter, independent of confidence.
// Memorization reviews earn 100-300 points scaled linearly by confidence.
func ComputeReward(letterCount int, confidence float64, kind entity.ActivityKind) (int64, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return 0, fmt.Errorf("%w: %v", entity.ErrInvalidConfidence, confidence)
	}
	if letterCount < 0 {
		letterCount = 0
	}

	switch kind {
	case entity.ActivityRecitation:
		return int64(letterCount) * pointsPerLetter, nil
	case entity.ActivityMemorizationReview:
		return int64(math.Round(100 * (1 + 2*confidence))), nil
	default:
		return 0, fmt.Errorf("%w: %q", entity.ErrInvalidActivityKind, kind)
	}
}

// AccuracyBonus returns the flat bonus for crossing an accuracy threshold
// (0-100 scale). The steps are exclusive: the highest crossed threshold wins.
func AccuracyBonus(accuracy float64) int64 {
	switch {
	case accuracy >= 95:
		return 50
	case accuracy >= 85:
		return 25
	default:
		return 0
	}
}
