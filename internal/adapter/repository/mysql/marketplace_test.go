package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	mktDomain "sme-exchange-backend/internal/domain/marketplace"

	"gorm.io/gorm"
)

func TestListingLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewMarketplaceRepository(db)
	ctx := context.Background()

	l := &mktDomain.Listing{LoanID: 1, SellerLenderID: 5, IsActive: true}
	if err := repo.CreateListing(ctx, l); err != nil {
		t.Fatalf("CreateListing: %v", err)
	}

	got, err := repo.GetActiveListing(ctx, 1)
	if err != nil {
		t.Fatalf("GetActiveListing: %v", err)
	}
	if got.SellerLenderID != 5 {
		t.Errorf("unexpected listing: %+v", got)
	}

	now := time.Now().UTC()
	got.IsActive = false
	got.ClosedAt = &now
	if err := repo.SaveListing(ctx, got); err != nil {
		t.Fatalf("SaveListing: %v", err)
	}

	if _, err := repo.GetActiveListing(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("closed listing still active: %v", err)
	}
	if n, err := repo.CountActiveListings(ctx); err != nil || n != 0 {
		t.Errorf("CountActiveListings = %d, %v", n, err)
	}
}

func TestBidQueries(t *testing.T) {
	db := openTestDB(t)
	repo := NewMarketplaceRepository(db)
	ctx := context.Background()

	for _, b := range []*mktDomain.Bid{
		{LoanID: 1, BuyerLenderID: 6, DiscountPercent: 5, Status: mktDomain.BidPending},
		{LoanID: 1, BuyerLenderID: 7, DiscountPercent: 12, Status: mktDomain.BidPending},
		{LoanID: 1, BuyerLenderID: 8, DiscountPercent: 2, Status: mktDomain.BidRejected},
		{LoanID: 2, BuyerLenderID: 6, DiscountPercent: 3, Status: mktDomain.BidPending},
	} {
		if err := repo.CreateBid(ctx, b); err != nil {
			t.Fatalf("CreateBid: %v", err)
		}
	}

	pending, err := repo.ListPendingBids(ctx, 1)
	if err != nil {
		t.Fatalf("ListPendingBids: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending bids, want 2", len(pending))
	}
	if pending[0].DiscountPercent != 12 {
		t.Errorf("deepest discount must come first: %+v", pending[0])
	}

	if n, err := repo.CountBids(ctx, 1); err != nil || n != 3 {
		t.Errorf("CountBids = %d, %v", n, err)
	}
	if n, err := repo.CountPendingBids(ctx); err != nil || n != 3 {
		t.Errorf("CountPendingBids = %d, %v", n, err)
	}

	got, err := repo.GetBidByID(ctx, pending[0].ID)
	if err != nil {
		t.Fatalf("GetBidByID: %v", err)
	}
	got.Status = mktDomain.BidAccepted
	if err := repo.SaveBid(ctx, got); err != nil {
		t.Fatalf("SaveBid: %v", err)
	}
	if again, _ := repo.GetBidByID(ctx, got.ID); again.Status != mktDomain.BidAccepted {
		t.Errorf("status not persisted: %+v", again)
	}
}

func TestInterestQueries(t *testing.T) {
	db := openTestDB(t)
	repo := NewMarketplaceRepository(db)
	ctx := context.Background()

	if _, err := repo.GetInterest(ctx, 1, 6); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing interest: err = %v", err)
	}

	if err := repo.CreateInterest(ctx, &mktDomain.Interest{LoanID: 1, BuyerLenderID: 6}); err != nil {
		t.Fatalf("CreateInterest: %v", err)
	}
	if err := repo.CreateInterest(ctx, &mktDomain.Interest{LoanID: 1, BuyerLenderID: 7}); err != nil {
		t.Fatalf("CreateInterest: %v", err)
	}

	if _, err := repo.GetInterest(ctx, 1, 6); err != nil {
		t.Fatalf("GetInterest: %v", err)
	}
	if n, err := repo.CountInterests(ctx, 1); err != nil || n != 2 {
		t.Errorf("CountInterests = %d, %v", n, err)
	}
	if n, err := repo.CountAllInterests(ctx); err != nil || n != 2 {
		t.Errorf("CountAllInterests = %d, %v", n, err)
	}
}

func TestRevealLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewMarketplaceRepository(db)
	ctx := context.Background()

	rv := &mktDomain.Reveal{LoanID: 1, SellerLenderID: 5}
	if err := repo.CreateReveal(ctx, rv); err != nil {
		t.Fatalf("CreateReveal: %v", err)
	}

	buyer := uint64(6)
	rv.SellerRevealed = true
	rv.BuyerRevealed = true
	rv.BuyerLenderID = &buyer
	if err := repo.SaveReveal(ctx, rv); err != nil {
		t.Fatalf("SaveReveal: %v", err)
	}

	got, err := repo.GetReveal(ctx, 1)
	if err != nil {
		t.Fatalf("GetReveal: %v", err)
	}
	if !got.Mutual() || got.BuyerLenderID == nil || *got.BuyerLenderID != 6 {
		t.Errorf("unexpected reveal: %+v", got)
	}

	if err := repo.DeleteReveal(ctx, 1); err != nil {
		t.Fatalf("DeleteReveal: %v", err)
	}
	if _, err := repo.GetReveal(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("reveal survived delete: %v", err)
	}
}
