// Package srs implements the spaced-repetition scheduling of review items:
// an SM-2 variant driven by a fused confidence signal instead of a
// user-picked grade.
package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

// Grade is the discrete SM-2 recall quality, 0 (blackout) to 5 (perfect).
type Grade int

const (
	GradeBlackout Grade = 0
	GradeWrong    Grade = 1
	GradeAlmost   Grade = 2
	GradeHesitant Grade = 3
	GradeGood     Grade = 4
	GradePerfect  Grade = 5

	passingGrade = GradeHesitant
)

// GradeForConfidence maps a fused confidence in [0,1] onto the SM-2 scale.
func GradeForConfidence(c float64) Grade {
	switch {
	case c >= 0.9:
		return GradePerfect
	case c >= 0.75:
		return GradeGood
	case c >= 0.6:
		return GradeHesitant
	case c >= 0.4:
		return GradeAlmost
	case c >= 0.2:
		return GradeWrong
	default:
		return GradeBlackout
	}
}

// Passing reports whether the grade counts as successful recall.
func (g Grade) Passing() bool { return g >= passingGrade }

// UpdateSchedule applies one review outcome to an item and returns the
// rescheduled copy. It is a pure function: the caller persists the result.
// Fails with entity.ErrInvalidConfidence before touching any state.
func UpdateSchedule(item entity.ReviewItem, fused float64, now time.Time) (entity.ReviewItem, error) {
	if math.IsNaN(fused) || fused < 0 || fused > 1 {
		return entity.ReviewItem{}, fmt.Errorf("%w: %v", entity.ErrInvalidConfidence, fused)
	}

	grade := GradeForConfidence(fused)

	if !grade.Passing() {
		// Failed recall sends any stage back to relearning.
		item.Repetitions = 0
		item.IntervalDays = entity.MinIntervalDays
	} else {
		item.Repetitions++
		switch item.Repetitions {
		case 1:
			item.IntervalDays = 1
		case 2:
			item.IntervalDays = 6
		default:
			item.IntervalDays = int32(math.Round(float64(item.IntervalDays) * item.EaseFactor))
		}
	}

	item.EaseFactor = nextEaseFactor(item.EaseFactor, grade)
	if item.IntervalDays < entity.MinIntervalDays {
		item.IntervalDays = entity.MinIntervalDays
	}

	item.ConfidenceScore = fused
	item.DueAt = now.AddDate(0, 0, int(item.IntervalDays))
	reviewedAt := now
	item.LastReviewedAt = &reviewedAt
	item.UpdatedAt = now
	return item, nil
}

// nextEaseFactor applies the standard SM-2 ease adjustment with the 1.3 floor.
func nextEaseFactor(ease float64, grade Grade) float64 {
	q := float64(grade)
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return math.Max(entity.MinEaseFactor, ease)
}
