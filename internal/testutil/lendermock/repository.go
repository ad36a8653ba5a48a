package lendermock

import (
	"context"

	domain "sme-exchange-backend/internal/domain/lender"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Lender) error
	SaveFn             func(ctx context.Context, l *domain.Lender) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Lender, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Lender, error)
	ListAllFn          func(ctx context.Context) ([]domain.Lender, error)
	CountFn            func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Lender) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Lender) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Lender, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Lender, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Lender, error) {
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
