package mysql

import (
	"context"

	lenderDomain "sme-exchange-backend/internal/domain/lender"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LenderRepository struct{ db *gorm.DB }

func NewLenderRepository(db *gorm.DB) *LenderRepository { return &LenderRepository{db: db} }

func (r *LenderRepository) Create(ctx context.Context, l *lenderDomain.Lender) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LenderRepository) Save(ctx context.Context, l *lenderDomain.Lender) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LenderRepository) GetByID(ctx context.Context, id uint64) (*lenderDomain.Lender, error) {
	var out lenderDomain.Lender
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LenderRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*lenderDomain.Lender, error) {
	var out lenderDomain.Lender
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LenderRepository) ListAll(ctx context.Context) ([]lenderDomain.Lender, error) {
	var out []lenderDomain.Lender
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LenderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&lenderDomain.Lender{}).Count(&n)
	return n, res.Error
}
