package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/repository"
)

func newPlanFixture(t *testing.T) (*planUsecase, *fakeItemRepo) {
	t.Helper()
	items := newFakeItemRepo()
	uc := NewPlanUsecase(items).(*planUsecase)
	uc.clock = func() time.Time { return testNow }
	return uc, items
}

func verses(refs ...string) []entity.VerseRef {
	out := make([]entity.VerseRef, 0, len(refs))
	for _, r := range refs {
		ref, err := entity.ParseVerseRef(r)
		if err != nil {
			panic(err)
		}
		out = append(out, ref)
	}
	return out
}

func TestInitializePlanItemsDefaults(t *testing.T) {
	uc, _ := newPlanFixture(t)
	start := testNow.AddDate(0, 0, 7)

	items, err := uc.InitializePlanItems(context.Background(), 3, 7, verses("1:1", "1:2", "1:3"), start)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for _, item := range items {
		if item.Repetitions != 0 {
			t.Errorf("repetitions = %d, want 0", item.Repetitions)
		}
		if item.EaseFactor != entity.DefaultEaseFactor {
			t.Errorf("easeFactor = %v, want %v", item.EaseFactor, entity.DefaultEaseFactor)
		}
		if item.IntervalDays != 1 {
			t.Errorf("intervalDays = %d, want 1", item.IntervalDays)
		}
		if !item.DueAt.Equal(start) {
			t.Errorf("dueAt = %v, want plan start %v", item.DueAt, start)
		}
		if item.Stage() != entity.StageNew {
			t.Errorf("stage = %s, want new", item.Stage())
		}
	}
}

func TestInitializePlanItemsDeduplicatesVerses(t *testing.T) {
	uc, _ := newPlanFixture(t)

	items, err := uc.InitializePlanItems(context.Background(), 3, 7, verses("1:1", "1:1", "1:2"), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("items = %d, want 2 after dedup", len(items))
	}
}

func TestInitializePlanItemsValidation(t *testing.T) {
	uc, _ := newPlanFixture(t)

	if _, err := uc.InitializePlanItems(context.Background(), 0, 7, verses("1:1"), testNow); !errors.Is(err, entity.ErrInvalidPlan) {
		t.Errorf("zero plan id: err = %v", err)
	}
	if _, err := uc.InitializePlanItems(context.Background(), 3, 7, nil, testNow); !errors.Is(err, entity.ErrInvalidPlan) {
		t.Errorf("no verses: err = %v", err)
	}
	bad := []entity.VerseRef{{Surah: 115, Ayah: 1}}
	if _, err := uc.InitializePlanItems(context.Background(), 3, 7, bad, testNow); !errors.Is(err, entity.ErrInvalidVerseRef) {
		t.Errorf("invalid verse: err = %v", err)
	}
}

func TestListDueItems(t *testing.T) {
	uc, items := newPlanFixture(t)

	_, err := items.CreateBatch(context.Background(), []entity.ReviewItem{
		{StudentID: 7, PlanID: 3, Verse: entity.VerseRef{Surah: 1, Ayah: 1}, DueAt: testNow.AddDate(0, 0, -1)},
		{StudentID: 7, PlanID: 3, Verse: entity.VerseRef{Surah: 1, Ayah: 2}, DueAt: testNow},
		{StudentID: 7, PlanID: 3, Verse: entity.VerseRef{Surah: 1, Ayah: 3}, DueAt: testNow.AddDate(0, 0, 5)},
		{StudentID: 8, PlanID: 4, Verse: entity.VerseRef{Surah: 1, Ayah: 1}, DueAt: testNow},
	})
	if err != nil {
		t.Fatal(err)
	}

	due, total, err := uc.ListDueItems(context.Background(), &repository.ListDueQuery{StudentID: 7, DueBefore: testNow})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(due) != 2 {
		t.Errorf("due = %d (total %d), want 2", len(due), total)
	}
	for _, item := range due {
		if item.DueAt.After(testNow) {
			t.Errorf("item %s due %v is after now", item.Verse, item.DueAt)
		}
	}
}

func TestListDueItemsDefaultsDueBefore(t *testing.T) {
	uc, items := newPlanFixture(t)
	_, err := items.CreateBatch(context.Background(), []entity.ReviewItem{
		{StudentID: 7, PlanID: 3, Verse: entity.VerseRef{Surah: 1, Ayah: 1}, DueAt: testNow.AddDate(0, 0, -3)},
	})
	if err != nil {
		t.Fatal(err)
	}

	due, _, err := uc.ListDueItems(context.Background(), &repository.ListDueQuery{StudentID: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 {
		t.Errorf("due = %d, want 1 with clock-defaulted cutoff", len(due))
	}
}
