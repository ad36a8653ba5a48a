package mysql

import (
	"context"
	"errors"
	"testing"

	creditDomain "sme-exchange-backend/internal/domain/credit"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	"sme-exchange-backend/internal/domain/uow"
	"sme-exchange-backend/pkg/id"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	lenderRepo := NewLenderRepository(db)
	ledger := NewCreditRepository(db)

	l := &lenderDomain.Lender{Name: "Alpha Bank", CreditBalance: 100}
	if err := lenderRepo.Create(ctx, l); err != nil {
		t.Fatalf("Create lender: %v", err)
	}

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		held, err := r.Lenders.GetByID(ctx, l.ID)
		if err != nil {
			return err
		}
		held.CreditBalance -= 3
		if err := r.Lenders.Save(ctx, held); err != nil {
			return err
		}
		return r.Credits.Append(ctx, &creditDomain.Transaction{
			Reference:    id.NewID32(),
			LenderID:     l.ID,
			Action:       creditDomain.ActionSubmitBid,
			Cost:         3,
			BalanceAfter: held.CreditBalance,
		})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	got, err := lenderRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CreditBalance != 97 {
		t.Errorf("balance = %d, want 97", got.CreditBalance)
	}
	if n, err := ledger.CountByLender(ctx, l.ID); err != nil || n != 1 {
		t.Errorf("ledger entries = %d, %v", n, err)
	}
}

func TestGormUoW_WithinTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	lenderRepo := NewLenderRepository(db)
	ledger := NewCreditRepository(db)

	l := &lenderDomain.Lender{Name: "Alpha Bank", CreditBalance: 100}
	if err := lenderRepo.Create(ctx, l); err != nil {
		t.Fatalf("Create lender: %v", err)
	}

	boom := errors.New("boom")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		held, err := r.Lenders.GetByID(ctx, l.ID)
		if err != nil {
			return err
		}
		held.CreditBalance = 0
		if err := r.Lenders.Save(ctx, held); err != nil {
			return err
		}
		if err := r.Credits.Append(ctx, &creditDomain.Transaction{
			Reference: id.NewID32(),
			LenderID:  l.ID,
			Action:    creditDomain.ActionSubmitBid,
			Cost:      3,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the callback error", err)
	}

	got, err := lenderRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CreditBalance != 100 {
		t.Errorf("balance = %d, rollback must restore 100", got.CreditBalance)
	}
	if n, err := ledger.CountByLender(ctx, l.ID); err != nil || n != 0 {
		t.Errorf("ledger entries = %d after rollback, %v", n, err)
	}
}
