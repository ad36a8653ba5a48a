package uow

import (
	"context"

	"sme-exchange-backend/internal/domain/company"
	"sme-exchange-backend/internal/domain/credit"
	"sme-exchange-backend/internal/domain/lender"
	"sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/marketplace"
	"sme-exchange-backend/internal/domain/swap"
)

type Repos struct {
	Companies   company.Repository
	Lenders     lender.Repository
	Loans       loan.Repository
	Marketplace marketplace.Repository
	Swaps       swap.Repository
	Credits     credit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
	// lock two loans in ascending id order; used by ownership transfers
	WithinLoanPairTx(ctx context.Context, aID, bID uint64, fn func(r Repos, a, b *loan.Loan) error) error
}
