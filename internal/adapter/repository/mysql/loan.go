package mysql

import (
	"context"

	loanDomain "sme-exchange-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByCompanyID(ctx context.Context, companyID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByLender(ctx context.Context, lenderID uint64, mismatchedOnly bool) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Where("current_lender_id = ?", lenderID)
	if mismatchedOnly {
		q = q.Where("is_mismatch = ?", true)
	}
	var out []loanDomain.Loan
	res := q.Order("fit_gap DESC, id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListMismatched(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("is_mismatch = ?", true).
		Order("fit_gap DESC, id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListMismatchedByLender(ctx context.Context, lenderID uint64, minGap float64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("current_lender_id = ? AND is_mismatch = ? AND fit_gap >= ?", lenderID, true, minGap).
		Order("fit_gap DESC, id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListComplementary(ctx context.Context, holderID, targetID uint64, minGap float64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("current_lender_id = ? AND best_match_lender_id = ? AND is_mismatch = ? AND fit_gap >= ?",
			holderID, targetID, true, minGap).
		Order("fit_gap DESC, id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) CountMismatched(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("is_mismatch = ?", true).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) SumOutstanding(ctx context.Context) (float64, error) {
	var sum *float64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("SUM(outstanding_balance)").Scan(&sum)
	if res.Error != nil || sum == nil {
		return 0, res.Error
	}
	return *sum, nil
}

func (r *LoanRepository) SumOutstandingByLender(ctx context.Context, lenderID uint64, byBestMatch bool) (float64, error) {
	col := "current_lender_id"
	if byBestMatch {
		col = "best_match_lender_id"
	}
	var sum *float64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("SUM(outstanding_balance)").
		Where(col+" = ?", lenderID).Scan(&sum)
	if res.Error != nil || sum == nil {
		return 0, res.Error
	}
	return *sum, nil
}

func (r *LoanRepository) CountByLender(ctx context.Context, lenderID uint64, byBestMatch bool) (int64, error) {
	col := "current_lender_id"
	if byBestMatch {
		col = "best_match_lender_id"
	}
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where(col+" = ?", lenderID).Count(&n)
	return n, res.Error
}
