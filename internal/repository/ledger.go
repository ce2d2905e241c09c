package repository

import (
	"context"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

// ListLedgerQuery holds parameters for listing hasanat ledger entries.
type ListLedgerQuery struct {
	Pagination
	FilterOrder

	UserID int64

	// Populated from the parsed filter expression.
	Kind        string
	MinPoints   int64
	From        time.Time
	To          time.Time
	PrimaryKey  string
	PrimaryDesc bool
}

// LedgerRepository persists the append-only hasanat ledger. Append reports
// inserted=false when the submission id was already recorded, which callers
// treat as a harmless replay rather than an error.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.HasanatLedgerEntry) (result *entity.HasanatLedgerEntry, inserted bool, err error)
	TotalForUser(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context, query *ListLedgerQuery) ([]entity.HasanatLedgerEntry, int64, error)
}

// AnalysisRepository optionally persists analysis results for audit display.
type AnalysisRepository interface {
	Save(ctx context.Context, result *entity.AnalysisResult) error
	GetBySubmission(ctx context.Context, submissionID string) (*entity.AnalysisResult, error)
}
