package loanmock

import (
	"context"

	domain "sme-exchange-backend/internal/domain/loan"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters report not-found,
// unfilled writers succeed, unfilled lists come back empty.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn       func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByCompanyIDFn         func(ctx context.Context, companyID uint64) (*domain.Loan, error)
	ListByLenderFn           func(ctx context.Context, lenderID uint64, mismatchedOnly bool) ([]domain.Loan, error)
	ListMismatchedFn         func(ctx context.Context) ([]domain.Loan, error)
	ListMismatchedByLenderFn func(ctx context.Context, lenderID uint64, minGap float64) ([]domain.Loan, error)
	ListComplementaryFn      func(ctx context.Context, holderID, targetID uint64, minGap float64) ([]domain.Loan, error)
	ListAllFn                func(ctx context.Context) ([]domain.Loan, error)
	CountFn                  func(ctx context.Context) (int64, error)
	CountMismatchedFn        func(ctx context.Context) (int64, error)
	SumOutstandingFn         func(ctx context.Context) (float64, error)
	SumOutstandingByLenderFn func(ctx context.Context, lenderID uint64, byBestMatch bool) (float64, error)
	CountByLenderFn          func(ctx context.Context, lenderID uint64, byBestMatch bool) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByCompanyID(ctx context.Context, companyID uint64) (*domain.Loan, error) {
	if m.GetByCompanyIDFn != nil {
		return m.GetByCompanyIDFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLender(ctx context.Context, lenderID uint64, mismatchedOnly bool) ([]domain.Loan, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID, mismatchedOnly)
	}
	return nil, nil
}

func (m *Repo) ListMismatched(ctx context.Context) ([]domain.Loan, error) {
	if m.ListMismatchedFn != nil {
		return m.ListMismatchedFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListMismatchedByLender(ctx context.Context, lenderID uint64, minGap float64) ([]domain.Loan, error) {
	if m.ListMismatchedByLenderFn != nil {
		return m.ListMismatchedByLenderFn(ctx, lenderID, minGap)
	}
	return nil, nil
}

func (m *Repo) ListComplementary(ctx context.Context, holderID, targetID uint64, minGap float64) ([]domain.Loan, error) {
	if m.ListComplementaryFn != nil {
		return m.ListComplementaryFn(ctx, holderID, targetID, minGap)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Loan, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountMismatched(ctx context.Context) (int64, error) {
	if m.CountMismatchedFn != nil {
		return m.CountMismatchedFn(ctx)
	}
	return 0, nil
}

func (m *Repo) SumOutstanding(ctx context.Context) (float64, error) {
	if m.SumOutstandingFn != nil {
		return m.SumOutstandingFn(ctx)
	}
	return 0, nil
}

func (m *Repo) SumOutstandingByLender(ctx context.Context, lenderID uint64, byBestMatch bool) (float64, error) {
	if m.SumOutstandingByLenderFn != nil {
		return m.SumOutstandingByLenderFn(ctx, lenderID, byBestMatch)
	}
	return 0, nil
}

func (m *Repo) CountByLender(ctx context.Context, lenderID uint64, byBestMatch bool) (int64, error) {
	if m.CountByLenderFn != nil {
		return m.CountByLenderFn(ctx, lenderID, byBestMatch)
	}
	return 0, nil
}
