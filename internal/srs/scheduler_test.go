package srs

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newItem(reps, interval int32, ease float64) entity.ReviewItem {
	return entity.ReviewItem{
		ID:           1,
		StudentID:    7,
		PlanID:       3,
		Verse:        entity.VerseRef{Surah: 2, Ayah: 255},
		EaseFactor:   ease,
		IntervalDays: interval,
		Repetitions:  reps,
		DueAt:        testNow,
	}
}

func TestGradeForConfidence(t *testing.T) {
	cases := []struct {
		confidence float64
		want       Grade
	}{
		{0.0, GradeBlackout},
		{0.19, GradeBlackout},
		{0.2, GradeWrong},
		{0.4, GradeAlmost},
		{0.59, GradeAlmost},
		{0.6, GradeHesitant},
		{0.75, GradeGood},
		{0.89, GradeGood},
		{0.9, GradePerfect},
		{1.0, GradePerfect},
	}
	for _, tc := range cases {
		if got := GradeForConfidence(tc.confidence); got != tc.want {
			t.Errorf("GradeForConfidence(%v) = %d, want %d", tc.confidence, got, tc.want)
		}
	}
}

func TestUpdateScheduleRejectsOutOfRangeConfidence(t *testing.T) {
	for _, c := range []float64{-0.01, 1.01, math.NaN()} {
		_, err := UpdateSchedule(newItem(2, 6, 2.5), c, testNow)
		if !errors.Is(err, entity.ErrInvalidConfidence) {
			t.Errorf("confidence %v: err = %v, want ErrInvalidConfidence", c, err)
		}
	}
}

func TestUpdateScheduleFirstReviewHighConfidence(t *testing.T) {
	// New item, first review with confidence 0.95.
	got, err := UpdateSchedule(newItem(0, 1, entity.DefaultEaseFactor), 0.95, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got.Repetitions != 1 {
		t.Errorf("repetitions = %d, want 1", got.Repetitions)
	}
	if got.IntervalDays != 1 {
		t.Errorf("intervalDays = %d, want 1", got.IntervalDays)
	}
	if math.Abs(got.EaseFactor-2.6) > 1e-9 {
		t.Errorf("easeFactor = %v, want 2.6", got.EaseFactor)
	}
	if want := testNow.AddDate(0, 0, 1); !got.DueAt.Equal(want) {
		t.Errorf("dueAt = %v, want %v", got.DueAt, want)
	}
	if got.LastReviewedAt == nil || !got.LastReviewedAt.Equal(testNow) {
		t.Errorf("lastReviewedAt = %v, want %v", got.LastReviewedAt, testNow)
	}
	if got.ConfidenceScore != 0.95 {
		t.Errorf("confidenceScore = %v, want 0.95", got.ConfidenceScore)
	}
}

func TestUpdateScheduleFailedReviewResets(t *testing.T) {
	// Item in learning with repetitions=2, reviewed at confidence 0.4 (q=2).
	got, err := UpdateSchedule(newItem(2, 6, 2.5), 0.4, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", got.Repetitions)
	}
	if got.IntervalDays != 1 {
		t.Errorf("intervalDays = %d, want 1", got.IntervalDays)
	}
	if got.Stage() != entity.StageNew {
		t.Errorf("stage = %s, want %s", got.Stage(), entity.StageNew)
	}
}

func TestUpdateScheduleFailureResetsFromAnyState(t *testing.T) {
	// Property: for all q<3 the interval and repetitions reset regardless of
	// prior state.
	priors := []entity.ReviewItem{
		newItem(0, 1, 1.3),
		newItem(1, 1, 2.5),
		newItem(2, 6, 2.2),
		newItem(9, 120, 2.8),
	}
	for _, prior := range priors {
		for _, c := range []float64{0.0, 0.25, 0.45, 0.59} {
			got, err := UpdateSchedule(prior, c, testNow)
			if err != nil {
				t.Fatal(err)
			}
			if got.Repetitions != 0 || got.IntervalDays != 1 {
				t.Errorf("reps=%d interval=%d conf=%v: want reset to 0/1",
					prior.Repetitions, prior.IntervalDays, c)
			}
		}
	}
}

func TestUpdateScheduleEaseFloor(t *testing.T) {
	item := newItem(5, 30, entity.MinEaseFactor)
	for i := 0; i < 10; i++ {
		var err error
		item, err = UpdateSchedule(item, 0.6, testNow)
		if err != nil {
			t.Fatal(err)
		}
		if item.EaseFactor < entity.MinEaseFactor {
			t.Fatalf("easeFactor %v dropped below floor after %d reviews", item.EaseFactor, i+1)
		}
	}
}

func TestUpdateScheduleReviewStageIntervalGrowth(t *testing.T) {
	item := newItem(2, 6, 2.5)
	prev := item.IntervalDays
	for i := 0; i < 6; i++ {
		var err error
		item, err = UpdateSchedule(item, 0.92, testNow)
		if err != nil {
			t.Fatal(err)
		}
		if item.Repetitions >= 3 && item.IntervalDays < prev {
			t.Fatalf("interval shrank on passing review: %d -> %d", prev, item.IntervalDays)
		}
		prev = item.IntervalDays
	}
	if item.Stage() != entity.StageReview {
		t.Errorf("stage = %s, want %s", item.Stage(), entity.StageReview)
	}
}

func TestUpdateScheduleSecondRepetitionIntervalIsSix(t *testing.T) {
	got, err := UpdateSchedule(newItem(1, 1, 2.5), 0.8, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got.Repetitions != 2 || got.IntervalDays != 6 {
		t.Errorf("reps=%d interval=%d, want 2/6", got.Repetitions, got.IntervalDays)
	}
}
