package mysql

import (
	"context"

	"sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Companies:   &CompanyRepository{db: tx},
		Lenders:     &LenderRepository{db: tx},
		Loans:       &LoanRepository{db: tx},
		Marketplace: &MarketplaceRepository{db: tx},
		Swaps:       &SwapRepository{db: tx},
		Credits:     &CreditRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinLoanPairTx(ctx context.Context, aID, bID uint64, fn func(r uow.Repos, a, b *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock both loans in ascending id order so concurrent transfers
		// touching the same pair cannot deadlock
		firstID, secondID := aID, bID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := r.Loans.GetByIDForUpdate(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := r.Loans.GetByIDForUpdate(ctx, secondID)
		if err != nil {
			return err
		}
		a, b := first, second
		if firstID != aID {
			a, b = second, first
		}
		return fn(r, a, b)
	})
}
