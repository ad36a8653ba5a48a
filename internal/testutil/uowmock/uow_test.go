package uowmock

import (
	"context"
	"errors"
	"testing"

	"sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/uow"
	"sme-exchange-backend/internal/testutil/loanmock"
	"sme-exchange-backend/internal/testutil/swapmock"
)

func TestUoW_WithinTx_DefaultRunsAgainstRepos(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	swaps := &swapmock.Repo{}
	m := New(uow.Repos{Loans: loans, Swaps: swaps})

	innerCalled := false
	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Swaps != swaps {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_ScriptedOverride(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	m := New(uow.Repos{})
	m.WithinTxFn = func(context.Context, func(uow.Repos) error) error {
		return sentinel
	}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_WithinLoanTx_ResolvesLoan(t *testing.T) {
	ctx := context.Background()

	held := &loan.Loan{ID: 7, CurrentLenderID: 5}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(gotCtx context.Context, id uint64) (*loan.Loan, error) {
			if id != 7 {
				t.Fatalf("WithinLoanTx: loan id mismatch, got %d", id)
			}
			return held, nil
		},
	}
	m := New(uow.Repos{Loans: loans})

	err := m.WithinLoanTx(ctx, 7, func(r uow.Repos, l *loan.Loan) error {
		if l != held {
			t.Fatalf("WithinLoanTx: loan not forwarded correctly: %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: unexpected err: %v", err)
	}
}

func TestUoW_WithinLoanTx_UnknownLoanShortCircuits(t *testing.T) {
	ctx := context.Background()
	m := New(uow.Repos{Loans: &loanmock.Repo{}})

	err := m.WithinLoanTx(ctx, 404, func(uow.Repos, *loan.Loan) error {
		t.Fatal("callback must not run when the loan lookup fails")
		return nil
	})
	if err == nil {
		t.Fatalf("WithinLoanTx: want lookup error, got nil")
	}
}

func TestUoW_WithinLoanPairTx_ResolvesBothLoans(t *testing.T) {
	ctx := context.Background()

	a := &loan.Loan{ID: 1}
	b := &loan.Loan{ID: 2}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(gotCtx context.Context, id uint64) (*loan.Loan, error) {
			switch id {
			case 1:
				return a, nil
			case 2:
				return b, nil
			}
			t.Fatalf("WithinLoanPairTx: unexpected id %d", id)
			return nil, nil
		},
	}
	m := New(uow.Repos{Loans: loans})

	err := m.WithinLoanPairTx(ctx, 1, 2, func(r uow.Repos, gotA, gotB *loan.Loan) error {
		if gotA != a || gotB != b {
			t.Fatalf("WithinLoanPairTx: loans not forwarded in argument order")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanPairTx: unexpected err: %v", err)
	}
}
