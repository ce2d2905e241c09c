package entity

import "time"

// Scheduling bounds for the SM-2 variant.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MinIntervalDays   = 1
)

// Stage is the coarse scheduling state derived from the repetition count.
type Stage string

const (
	StageNew      Stage = "new"
	StageLearning Stage = "learning"
	StageReview   Stage = "review"
)

// ReviewItem is the per-(student, plan, verse) scheduling record. It is
// created when a plan is initialized and mutated only by the scheduler;
// concurrent writers are fenced by the Version column.
type ReviewItem struct {
	ID              int64
	StudentID       int64
	PlanID          int64
	Verse           VerseRef
	EaseFactor      float64
	IntervalDays    int32
	Repetitions     int32
	ConfidenceScore float64
	DueAt           time.Time
	LastReviewedAt  *time.Time
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Stage classifies the item for reporting purposes.
func (i *ReviewItem) Stage() Stage {
	switch {
	case i.Repetitions == 0:
		return StageNew
	case i.Repetitions <= 2:
		return StageLearning
	default:
		return StageReview
	}
}

// Normalize ensures scheduling defaults before persistence.
func (i *ReviewItem) Normalize(now time.Time) {
	if i.EaseFactor < MinEaseFactor {
		i.EaseFactor = DefaultEaseFactor
	}
	if i.IntervalDays < MinIntervalDays {
		i.IntervalDays = MinIntervalDays
	}
	if i.Repetitions < 0 {
		i.Repetitions = 0
	}
	if i.DueAt.IsZero() {
		i.DueAt = now
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}
