package repository

import (
	"context"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

// ListDueQuery holds parameters for listing due review items.
type ListDueQuery struct {
	Pagination
	FilterOrder

	StudentID int64
	DueBefore time.Time

	// Populated from the parsed filter expression.
	PlanID        int64
	MinConfidence float64
	MaxConfidence float64
	PrimaryKey    string
	PrimaryDesc   bool
}

// ReviewItemRepository abstracts persistence for review items to keep
// usecases storage agnostic. UpdateScheduled must enforce the optimistic
// version check and fail with entity.ErrStaleWriteConflict on a lost race.
type ReviewItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.ReviewItem) ([]entity.ReviewItem, error)
	GetByVerse(ctx context.Context, studentID, planID int64, verse entity.VerseRef) (*entity.ReviewItem, error)
	UpdateScheduled(ctx context.Context, item *entity.ReviewItem) (*entity.ReviewItem, error)
	ListDue(ctx context.Context, query *ListDueQuery) ([]entity.ReviewItem, int64, error)
}
