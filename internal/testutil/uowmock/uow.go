package uowmock

import (
	"context"

	"sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

// UoW is a function-backed mock that satisfies uow.UnitOfWork. Unfilled
// methods run the callback immediately against Repos (no real transaction),
// resolving loans through Repos.Loans; that covers most tests. Fill the Fn
// fields to script failures or observe transaction boundaries.
type UoW struct {
	Repos uow.Repos

	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn     func(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinLoanPairTxFn func(ctx context.Context, aID, bID uint64, fn func(r uow.Repos, a, b *loan.Loan) error) error
}

func New(repos uow.Repos) *UoW { return &UoW{Repos: repos} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	l, err := m.Repos.Loans.GetByIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(m.Repos, l)
}

func (m *UoW) WithinLoanPairTx(ctx context.Context, aID, bID uint64, fn func(r uow.Repos, a, b *loan.Loan) error) error {
	if m.WithinLoanPairTxFn != nil {
		return m.WithinLoanPairTxFn(ctx, aID, bID, fn)
	}
	a, err := m.Repos.Loans.GetByIDForUpdate(ctx, aID)
	if err != nil {
		return err
	}
	b, err := m.Repos.Loans.GetByIDForUpdate(ctx, bID)
	if err != nil {
		return err
	}
	return fn(m.Repos, a, b)
}
