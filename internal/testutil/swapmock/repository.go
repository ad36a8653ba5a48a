package swapmock

import (
	"context"

	domain "sme-exchange-backend/internal/domain/swap"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, p *domain.Proposal) error
	SaveFn              func(ctx context.Context, p *domain.Proposal) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Proposal, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Proposal, error)
	ListByLenderFn      func(ctx context.Context, lenderID uint64, status domain.Status) ([]domain.Proposal, error)
	ListPendingByLoanFn func(ctx context.Context, loanID uint64) ([]domain.Proposal, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Proposal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Proposal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Proposal, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Proposal, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLender(ctx context.Context, lenderID uint64, status domain.Status) ([]domain.Proposal, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID, status)
	}
	return nil, nil
}

func (m *Repo) ListPendingByLoan(ctx context.Context, loanID uint64) ([]domain.Proposal, error) {
	if m.ListPendingByLoanFn != nil {
		return m.ListPendingByLoanFn(ctx, loanID)
	}
	return nil, nil
}
