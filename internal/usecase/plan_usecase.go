package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/repository"
)

// PlanUsecase manages the review items of a memorization plan.
type PlanUsecase interface {
	InitializePlanItems(ctx context.Context, planID, studentID int64, verses []entity.VerseRef, planStart time.Time) ([]entity.ReviewItem, error)
	ListDueItems(ctx context.Context, query *repository.ListDueQuery) ([]entity.ReviewItem, int64, error)
}

// NewPlanUsecase wires the repository with default behaviour.
func NewPlanUsecase(items repository.ReviewItemRepository) PlanUsecase {
	return &planUsecase{
		items: items,
		clock: time.Now,
	}
}

type planUsecase struct {
	items repository.ReviewItemRepository
	clock func() time.Time
}

// InitializePlanItems seeds one review item per target verse with the
// scheduling defaults: repetitions=0, ease=2.5, interval=1, due at plan start.
func (u *planUsecase) InitializePlanItems(ctx context.Context, planID, studentID int64, verses []entity.VerseRef, planStart time.Time) ([]entity.ReviewItem, error) {
	if planID <= 0 || studentID <= 0 {
		return nil, entity.ErrInvalidPlan
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("%w: no target verses", entity.ErrInvalidPlan)
	}

	now := u.clock()
	if planStart.IsZero() {
		planStart = now
	}

	items := make([]entity.ReviewItem, 0, len(verses))
	seen := make(map[entity.VerseRef]struct{}, len(verses))
	for _, verse := range verses {
		if !verse.Valid() {
			return nil, fmt.Errorf("%w: %s", entity.ErrInvalidVerseRef, verse)
		}
		if _, dup := seen[verse]; dup {
			continue
		}
		seen[verse] = struct{}{}

		item := entity.ReviewItem{
			StudentID:    studentID,
			PlanID:       planID,
			Verse:        verse,
			EaseFactor:   entity.DefaultEaseFactor,
			IntervalDays: entity.MinIntervalDays,
			Repetitions:  0,
			DueAt:        planStart,
		}
		item.Normalize(now)
		items = append(items, item)
	}

	return u.items.CreateBatch(ctx, items)
}

func (u *planUsecase) ListDueItems(ctx context.Context, query *repository.ListDueQuery) ([]entity.ReviewItem, int64, error) {
	if query == nil || query.StudentID <= 0 {
		return nil, 0, entity.ErrInvalidPlan
	}
	if query.DueBefore.IsZero() {
		query.DueBefore = u.clock()
	}
	return u.items.ListDue(ctx, query)
}
