package hasanat

import (
	"errors"
	"math"
	"testing"

	"github.com/hifzhub/murajaah/internal/entity"
)

func TestComputeRewardPlainRecitation(t *testing.T) {
	cases := []struct {
		name       string
		letters    int
		confidence float64
		want       int64
	}{
		{"zero letters earn nothing", 0, 1, 0},
		{"ten letters earn 100", 10, 0, 100},
		{"confidence irrelevant", 10, 0.9, 100},
		{"negative letters treated as zero", -5, 0.5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeReward(tc.letters, tc.confidence, entity.ActivityRecitation)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("ComputeReward = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeRewardMemorizationReview(t *testing.T) {
	cases := []struct {
		confidence float64
		want       int64
	}{
		{0, 100},
		{0.5, 200},
		{1, 300},
		{0.33, 166},
	}
	for _, tc := range cases {
		got, err := ComputeReward(42, tc.confidence, entity.ActivityMemorizationReview)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("confidence %v: points = %d, want %d", tc.confidence, got, tc.want)
		}
	}
}

func TestComputeRewardRejectsBadInput(t *testing.T) {
	if _, err := ComputeReward(10, math.NaN(), entity.ActivityRecitation); !errors.Is(err, entity.ErrInvalidConfidence) {
		t.Errorf("NaN confidence: err = %v", err)
	}
	if _, err := ComputeReward(10, 1.2, entity.ActivityMemorizationReview); !errors.Is(err, entity.ErrInvalidConfidence) {
		t.Errorf("confidence 1.2: err = %v", err)
	}
	if _, err := ComputeReward(10, 0.5, entity.ActivityKind("bonus")); !errors.Is(err, entity.ErrInvalidActivityKind) {
		t.Errorf("unknown kind: err = %v", err)
	}
}

func TestAccuracyBonusSteps(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     int64
	}{
		{100, 50},
		{95, 50},
		{94.9, 25},
		{85, 25},
		{84.9, 0},
		{0, 0},
	}
	for _, tc := range cases {
		if got := AccuracyBonus(tc.accuracy); got != tc.want {
			t.Errorf("AccuracyBonus(%v) = %d, want %d", tc.accuracy, got, tc.want)
		}
	}
}
