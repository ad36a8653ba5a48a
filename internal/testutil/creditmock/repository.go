package creditmock

import (
	"context"

	domain "sme-exchange-backend/internal/domain/credit"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn        func(ctx context.Context, t *domain.Transaction) error
	HistoryFn       func(ctx context.Context, lenderID uint64, limit int) ([]domain.Transaction, error)
	FindByTargetFn  func(ctx context.Context, lenderID uint64, action domain.ActionType, targetID string) (*domain.Transaction, error)
	TotalSpentFn    func(ctx context.Context, lenderID uint64) (int64, error)
	CountByLenderFn func(ctx context.Context, lenderID uint64) (int64, error)
}

func (m *Repo) Append(ctx context.Context, t *domain.Transaction) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, t)
	}
	return nil
}

func (m *Repo) History(ctx context.Context, lenderID uint64, limit int) ([]domain.Transaction, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(ctx, lenderID, limit)
	}
	return nil, nil
}

func (m *Repo) FindByTarget(ctx context.Context, lenderID uint64, action domain.ActionType, targetID string) (*domain.Transaction, error) {
	if m.FindByTargetFn != nil {
		return m.FindByTargetFn(ctx, lenderID, action, targetID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) TotalSpent(ctx context.Context, lenderID uint64) (int64, error) {
	if m.TotalSpentFn != nil {
		return m.TotalSpentFn(ctx, lenderID)
	}
	return 0, nil
}

func (m *Repo) CountByLender(ctx context.Context, lenderID uint64) (int64, error) {
	if m.CountByLenderFn != nil {
		return m.CountByLenderFn(ctx, lenderID)
	}
	return 0, nil
}
