package usecase

import (
	"context"
	"time"

	"github.com/hifzhub/murajaah/internal/arabic"
	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/hasanat"
	"github.com/hifzhub/murajaah/internal/repository"
)

// LedgerUsecase exposes hasanat totals, history, and plain recitation
// logging (letters-based reward, no scheduling involved).
type LedgerUsecase interface {
	LogRecitation(ctx context.Context, userID int64, recitedText, note string) (*entity.HasanatLedgerEntry, error)
	Total(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context, query *repository.ListLedgerQuery) ([]entity.HasanatLedgerEntry, int64, error)
}

// NewLedgerUsecase wires the ledger repository.
func NewLedgerUsecase(ledger repository.LedgerRepository) LedgerUsecase {
	return &ledgerUsecase{
		ledger: ledger,
		clock:  time.Now,
	}
}

type ledgerUsecase struct {
	ledger repository.LedgerRepository
	clock  func() time.Time
}

func (u *ledgerUsecase) LogRecitation(ctx context.Context, userID int64, recitedText, note string) (*entity.HasanatLedgerEntry, error) {
	letters := arabic.LetterCount(recitedText)
	points, err := hasanat.ComputeReward(letters, 0, entity.ActivityRecitation)
	if err != nil {
		return nil, err
	}

	entry := &entity.HasanatLedgerEntry{
		UserID:    userID,
		Kind:      entity.ActivityRecitation,
		Points:    points,
		Context:   note,
		CreatedAt: u.clock(),
	}
	created, _, err := u.ledger.Append(ctx, entry)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (u *ledgerUsecase) Total(ctx context.Context, userID int64) (int64, error) {
	return u.ledger.TotalForUser(ctx, userID)
}

func (u *ledgerUsecase) List(ctx context.Context, query *repository.ListLedgerQuery) ([]entity.HasanatLedgerEntry, int64, error) {
	return u.ledger.List(ctx, query)
}
