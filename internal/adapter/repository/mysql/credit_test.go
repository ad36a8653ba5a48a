package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	creditDomain "sme-exchange-backend/internal/domain/credit"
	"sme-exchange-backend/pkg/id"

	"gorm.io/gorm"
)

func makeTransaction(lenderID uint64, action creditDomain.ActionType, cost int, targetID string, at time.Time) *creditDomain.Transaction {
	return &creditDomain.Transaction{
		Reference:    id.NewID32(),
		LenderID:     lenderID,
		Action:       action,
		Cost:         cost,
		BalanceAfter: 100 - cost,
		TargetType:   "loan",
		TargetID:     targetID,
		CreatedAt:    at,
	}
}

func TestLedgerAppendAndHistory(t *testing.T) {
	db := openTestDB(t)
	repo := NewCreditRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []creditDomain.ActionType{
		creditDomain.ActionViewDetails,
		creditDomain.ActionSubmitBid,
		creditDomain.ActionProposeSwap,
	} {
		cost, _ := creditDomain.Cost(action)
		tr := makeTransaction(7, action, cost, "42", base.Add(time.Duration(i)*time.Minute))
		if err := repo.Append(ctx, tr); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := repo.Append(ctx, makeTransaction(8, creditDomain.ActionViewBids, 3, "9", base)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	hist, err := repo.History(ctx, 7, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("got %d entries, want the limit 2", len(hist))
	}
	if hist[0].Action != creditDomain.ActionProposeSwap {
		t.Errorf("most recent entry must come first: %+v", hist[0])
	}

	if spent, err := repo.TotalSpent(ctx, 7); err != nil || spent != 9 {
		t.Errorf("TotalSpent = %d, %v (want 1+3+5)", spent, err)
	}
	if n, err := repo.CountByLender(ctx, 7); err != nil || n != 3 {
		t.Errorf("CountByLender = %d, %v", n, err)
	}
}

func TestLedgerTotalSpent_EmptyLedger(t *testing.T) {
	db := openTestDB(t)
	repo := NewCreditRepository(db)

	spent, err := repo.TotalSpent(context.Background(), 7)
	if err != nil || spent != 0 {
		t.Fatalf("TotalSpent = %d, %v, want 0 with no error", spent, err)
	}
}

func TestLedgerFindByTarget(t *testing.T) {
	db := openTestDB(t)
	repo := NewCreditRepository(db)
	ctx := context.Background()

	tr := makeTransaction(7, creditDomain.ActionViewDetails, 1, "loan-42", time.Now().UTC())
	if err := repo.Append(ctx, tr); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := repo.FindByTarget(ctx, 7, creditDomain.ActionViewDetails, "loan-42")
	if err != nil {
		t.Fatalf("FindByTarget: %v", err)
	}
	if got.Reference != tr.Reference {
		t.Errorf("unexpected entry: %+v", got)
	}

	// a different action on the same target is a separate charge
	if _, err := repo.FindByTarget(ctx, 7, creditDomain.ActionSubmitBid, "loan-42"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}
