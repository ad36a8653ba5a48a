package mysql

import (
	"context"

	swapDomain "sme-exchange-backend/internal/domain/swap"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SwapRepository struct{ db *gorm.DB }

func NewSwapRepository(db *gorm.DB) *SwapRepository { return &SwapRepository{db: db} }

func (r *SwapRepository) Create(ctx context.Context, p *swapDomain.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *SwapRepository) Save(ctx context.Context, p *swapDomain.Proposal) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *SwapRepository) GetByID(ctx context.Context, id uint64) (*swapDomain.Proposal, error) {
	var out swapDomain.Proposal
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *SwapRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*swapDomain.Proposal, error) {
	var out swapDomain.Proposal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *SwapRepository) ListByLender(ctx context.Context, lenderID uint64, status swapDomain.Status) ([]swapDomain.Proposal, error) {
	q := r.db.WithContext(ctx).
		Where("proposer_lender_id = ? OR counterparty_lender_id = ?", lenderID, lenderID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []swapDomain.Proposal
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *SwapRepository) ListPendingByLoan(ctx context.Context, loanID uint64) ([]swapDomain.Proposal, error) {
	var out []swapDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("status = ? AND (proposer_loan_id = ? OR counterparty_loan_id = ?)",
			swapDomain.StatusPending, loanID, loanID).
		Find(&out)
	return out, res.Error
}
