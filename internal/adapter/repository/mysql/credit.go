package mysql

import (
	"context"

	creditDomain "sme-exchange-backend/internal/domain/credit"

	"gorm.io/gorm"
)

type CreditRepository struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) *CreditRepository { return &CreditRepository{db: db} }

func (r *CreditRepository) Append(ctx context.Context, t *creditDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *CreditRepository) History(ctx context.Context, lenderID uint64, limit int) ([]creditDomain.Transaction, error) {
	var out []creditDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC, id DESC").
		Limit(limit).Find(&out)
	return out, res.Error
}

func (r *CreditRepository) FindByTarget(ctx context.Context, lenderID uint64, action creditDomain.ActionType, targetID string) (*creditDomain.Transaction, error) {
	var out creditDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("lender_id = ? AND action_type = ? AND target_id = ?", lenderID, action, targetID).
		First(&out)
	return &out, res.Error
}

func (r *CreditRepository) TotalSpent(ctx context.Context, lenderID uint64) (int64, error) {
	var sum *int64
	res := r.db.WithContext(ctx).Model(&creditDomain.Transaction{}).
		Select("SUM(cost)").
		Where("lender_id = ?", lenderID).Scan(&sum)
	if res.Error != nil || sum == nil {
		return 0, res.Error
	}
	return *sum, nil
}

func (r *CreditRepository) CountByLender(ctx context.Context, lenderID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&creditDomain.Transaction{}).
		Where("lender_id = ?", lenderID).Count(&n)
	return n, res.Error
}
