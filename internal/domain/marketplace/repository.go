package marketplace

import "context"

type Repository interface {
	// Listings
	CreateListing(ctx context.Context, l *Listing) error
	SaveListing(ctx context.Context, l *Listing) error
	GetActiveListing(ctx context.Context, loanID uint64) (*Listing, error)
	ListActiveListings(ctx context.Context) ([]Listing, error)
	CountActiveListings(ctx context.Context) (int64, error)

	// Bids
	CreateBid(ctx context.Context, b *Bid) error
	SaveBid(ctx context.Context, b *Bid) error
	GetBidByID(ctx context.Context, id uint64) (*Bid, error)
	// GetBidByIDForUpdate locks the bid row within the enclosing transaction.
	GetBidByIDForUpdate(ctx context.Context, id uint64) (*Bid, error)
	ListPendingBids(ctx context.Context, loanID uint64) ([]Bid, error)
	CountBids(ctx context.Context, loanID uint64) (int64, error)
	CountPendingBids(ctx context.Context) (int64, error)

	// Interests
	CreateInterest(ctx context.Context, i *Interest) error
	GetInterest(ctx context.Context, loanID, lenderID uint64) (*Interest, error)
	CountInterests(ctx context.Context, loanID uint64) (int64, error)
	CountAllInterests(ctx context.Context) (int64, error)

	// Reveals
	CreateReveal(ctx context.Context, r *Reveal) error
	SaveReveal(ctx context.Context, r *Reveal) error
	GetReveal(ctx context.Context, loanID uint64) (*Reveal, error)
	DeleteReveal(ctx context.Context, loanID uint64) error
}
