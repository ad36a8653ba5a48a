package mysql

import (
	"context"

	mktDomain "sme-exchange-backend/internal/domain/marketplace"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarketplaceRepository struct{ db *gorm.DB }

func NewMarketplaceRepository(db *gorm.DB) *MarketplaceRepository {
	return &MarketplaceRepository{db: db}
}

// ---- listings ----

func (r *MarketplaceRepository) CreateListing(ctx context.Context, l *mktDomain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *MarketplaceRepository) SaveListing(ctx context.Context, l *mktDomain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *MarketplaceRepository) GetActiveListing(ctx context.Context, loanID uint64) (*mktDomain.Listing, error) {
	var out mktDomain.Listing
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND is_active = ?", loanID, true).First(&out)
	return &out, res.Error
}

func (r *MarketplaceRepository) ListActiveListings(ctx context.Context) ([]mktDomain.Listing, error) {
	var out []mktDomain.Listing
	res := r.db.WithContext(ctx).
		Where("is_active = ?", true).Order("listed_at DESC").Find(&out)
	return out, res.Error
}

func (r *MarketplaceRepository) CountActiveListings(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&mktDomain.Listing{}).
		Where("is_active = ?", true).Count(&n)
	return n, res.Error
}

// ---- bids ----

func (r *MarketplaceRepository) CreateBid(ctx context.Context, b *mktDomain.Bid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *MarketplaceRepository) SaveBid(ctx context.Context, b *mktDomain.Bid) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *MarketplaceRepository) GetBidByID(ctx context.Context, id uint64) (*mktDomain.Bid, error) {
	var out mktDomain.Bid
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *MarketplaceRepository) GetBidByIDForUpdate(ctx context.Context, id uint64) (*mktDomain.Bid, error) {
	var out mktDomain.Bid
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *MarketplaceRepository) ListPendingBids(ctx context.Context, loanID uint64) ([]mktDomain.Bid, error) {
	var out []mktDomain.Bid
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND status = ?", loanID, mktDomain.BidPending).
		Order("discount_percent DESC, submitted_at ASC").Find(&out)
	return out, res.Error
}

func (r *MarketplaceRepository) CountBids(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&mktDomain.Bid{}).
		Where("loan_id = ?", loanID).Count(&n)
	return n, res.Error
}

func (r *MarketplaceRepository) CountPendingBids(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&mktDomain.Bid{}).
		Where("status = ?", mktDomain.BidPending).Count(&n)
	return n, res.Error
}

// ---- interests ----

func (r *MarketplaceRepository) CreateInterest(ctx context.Context, i *mktDomain.Interest) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *MarketplaceRepository) GetInterest(ctx context.Context, loanID, lenderID uint64) (*mktDomain.Interest, error) {
	var out mktDomain.Interest
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND buyer_lender_id = ?", loanID, lenderID).First(&out)
	return &out, res.Error
}

func (r *MarketplaceRepository) CountInterests(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&mktDomain.Interest{}).
		Where("loan_id = ?", loanID).Count(&n)
	return n, res.Error
}

func (r *MarketplaceRepository) CountAllInterests(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&mktDomain.Interest{}).Count(&n)
	return n, res.Error
}

// ---- reveals ----

func (r *MarketplaceRepository) CreateReveal(ctx context.Context, rv *mktDomain.Reveal) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *MarketplaceRepository) SaveReveal(ctx context.Context, rv *mktDomain.Reveal) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *MarketplaceRepository) GetReveal(ctx context.Context, loanID uint64) (*mktDomain.Reveal, error) {
	var out mktDomain.Reveal
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *MarketplaceRepository) DeleteReveal(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).Delete(&mktDomain.Reveal{}).Error
}
