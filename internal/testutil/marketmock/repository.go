package marketmock

import (
	"context"

	domain "sme-exchange-backend/internal/domain/marketplace"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateListingFn       func(ctx context.Context, l *domain.Listing) error
	SaveListingFn         func(ctx context.Context, l *domain.Listing) error
	GetActiveListingFn    func(ctx context.Context, loanID uint64) (*domain.Listing, error)
	ListActiveListingsFn  func(ctx context.Context) ([]domain.Listing, error)
	CountActiveListingsFn func(ctx context.Context) (int64, error)

	CreateBidFn           func(ctx context.Context, b *domain.Bid) error
	SaveBidFn             func(ctx context.Context, b *domain.Bid) error
	GetBidByIDFn          func(ctx context.Context, id uint64) (*domain.Bid, error)
	GetBidByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Bid, error)
	ListPendingBidsFn     func(ctx context.Context, loanID uint64) ([]domain.Bid, error)
	CountBidsFn           func(ctx context.Context, loanID uint64) (int64, error)
	CountPendingBidsFn    func(ctx context.Context) (int64, error)

	CreateInterestFn    func(ctx context.Context, i *domain.Interest) error
	GetInterestFn       func(ctx context.Context, loanID, lenderID uint64) (*domain.Interest, error)
	CountInterestsFn    func(ctx context.Context, loanID uint64) (int64, error)
	CountAllInterestsFn func(ctx context.Context) (int64, error)

	CreateRevealFn func(ctx context.Context, r *domain.Reveal) error
	SaveRevealFn   func(ctx context.Context, r *domain.Reveal) error
	GetRevealFn    func(ctx context.Context, loanID uint64) (*domain.Reveal, error)
	DeleteRevealFn func(ctx context.Context, loanID uint64) error
}

func (m *Repo) CreateListing(ctx context.Context, l *domain.Listing) error {
	if m.CreateListingFn != nil {
		return m.CreateListingFn(ctx, l)
	}
	return nil
}

func (m *Repo) SaveListing(ctx context.Context, l *domain.Listing) error {
	if m.SaveListingFn != nil {
		return m.SaveListingFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetActiveListing(ctx context.Context, loanID uint64) (*domain.Listing, error) {
	if m.GetActiveListingFn != nil {
		return m.GetActiveListingFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListActiveListings(ctx context.Context) ([]domain.Listing, error) {
	if m.ListActiveListingsFn != nil {
		return m.ListActiveListingsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CountActiveListings(ctx context.Context) (int64, error) {
	if m.CountActiveListingsFn != nil {
		return m.CountActiveListingsFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CreateBid(ctx context.Context, b *domain.Bid) error {
	if m.CreateBidFn != nil {
		return m.CreateBidFn(ctx, b)
	}
	return nil
}

func (m *Repo) SaveBid(ctx context.Context, b *domain.Bid) error {
	if m.SaveBidFn != nil {
		return m.SaveBidFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetBidByID(ctx context.Context, id uint64) (*domain.Bid, error) {
	if m.GetBidByIDFn != nil {
		return m.GetBidByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetBidByIDForUpdate(ctx context.Context, id uint64) (*domain.Bid, error) {
	if m.GetBidByIDForUpdateFn != nil {
		return m.GetBidByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListPendingBids(ctx context.Context, loanID uint64) ([]domain.Bid, error) {
	if m.ListPendingBidsFn != nil {
		return m.ListPendingBidsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CountBids(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountBidsFn != nil {
		return m.CountBidsFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) CountPendingBids(ctx context.Context) (int64, error) {
	if m.CountPendingBidsFn != nil {
		return m.CountPendingBidsFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CreateInterest(ctx context.Context, i *domain.Interest) error {
	if m.CreateInterestFn != nil {
		return m.CreateInterestFn(ctx, i)
	}
	return nil
}

func (m *Repo) GetInterest(ctx context.Context, loanID, lenderID uint64) (*domain.Interest, error) {
	if m.GetInterestFn != nil {
		return m.GetInterestFn(ctx, loanID, lenderID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) CountInterests(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountInterestsFn != nil {
		return m.CountInterestsFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) CountAllInterests(ctx context.Context) (int64, error) {
	if m.CountAllInterestsFn != nil {
		return m.CountAllInterestsFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CreateReveal(ctx context.Context, r *domain.Reveal) error {
	if m.CreateRevealFn != nil {
		return m.CreateRevealFn(ctx, r)
	}
	return nil
}

func (m *Repo) SaveReveal(ctx context.Context, r *domain.Reveal) error {
	if m.SaveRevealFn != nil {
		return m.SaveRevealFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetReveal(ctx context.Context, loanID uint64) (*domain.Reveal, error) {
	if m.GetRevealFn != nil {
		return m.GetRevealFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) DeleteReveal(ctx context.Context, loanID uint64) error {
	if m.DeleteRevealFn != nil {
		return m.DeleteRevealFn(ctx, loanID)
	}
	return nil
}
