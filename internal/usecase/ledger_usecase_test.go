package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

func newLedgerFixture(t *testing.T) (*ledgerUsecase, *fakeLedgerRepo) {
	t.Helper()
	ledger := newFakeLedgerRepo()
	uc := NewLedgerUsecase(ledger).(*ledgerUsecase)
	uc.clock = func() time.Time { return testNow }
	return uc, ledger
}

func TestLogRecitationAwardsPerLetter(t *testing.T) {
	uc, _ := newLedgerFixture(t)

	// 7 Arabic letters, diacritics not counted.
	entry, err := uc.LogRecitation(context.Background(), 7, "بِسْمِ اللَّهِ", "daily wird")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Points != 70 {
		t.Errorf("points = %d, want 70", entry.Points)
	}
	if entry.Kind != entity.ActivityRecitation {
		t.Errorf("kind = %s, want recitation", entry.Kind)
	}

	total, err := uc.Total(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if total != 70 {
		t.Errorf("total = %d, want 70", total)
	}
}

func TestTotalSumsAcrossEntries(t *testing.T) {
	uc, _ := newLedgerFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := uc.LogRecitation(context.Background(), 7, "بسم", ""); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := uc.LogRecitation(context.Background(), 9, "بسم", ""); err != nil {
		t.Fatal(err)
	}

	total, err := uc.Total(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if total != 90 {
		t.Errorf("total = %d, want 90", total)
	}
}
