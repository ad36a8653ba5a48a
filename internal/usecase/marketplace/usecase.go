package marketplace

import (
	"context"
	"errors"
	"sort"
	"time"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	mktDomain "sme-exchange-backend/internal/domain/marketplace"
	"sme-exchange-backend/internal/domain/scoring"
	swapDomain "sme-exchange-backend/internal/domain/swap"
	"sme-exchange-backend/internal/domain/uow"
	"sme-exchange-backend/internal/usecase/analysis"
	"sme-exchange-backend/pkg/banding"

	"gorm.io/gorm"
)

type Usecase struct {
	loans     loanDomain.Repository
	companies companyDomain.Repository
	lenders   lenderDomain.Repository
	market    mktDomain.Repository
	policy    scoring.Policy
	uow       uow.UnitOfWork
}

func NewUsecase(loans loanDomain.Repository, companies companyDomain.Repository, lenders lenderDomain.Repository, market mktDomain.Repository, policy scoring.Policy, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, companies: companies, lenders: lenders, market: market, policy: policy, uow: tx}
}

// List puts a loan up for sale. Only the owning lender may list, and at most
// one active listing per loan exists at any time.
func (u *Usecase) List(ctx context.Context, in ListLoanInput) (*ListingDTO, error) {
	var dto *ListingDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.CurrentLenderID != in.LenderID {
			return loanDomain.ErrNotOwned
		}

		_, err := r.Marketplace.GetActiveListing(ctx, in.LoanID)
		switch {
		case err == nil:
			return mktDomain.ErrAlreadyListed
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		listing := &mktDomain.Listing{
			LoanID:         in.LoanID,
			SellerLenderID: in.LenderID,
			IsActive:       true,
		}
		if err := r.Marketplace.CreateListing(ctx, listing); err != nil {
			return err
		}
		dto = &ListingDTO{
			ListingID: listing.ID,
			LoanID:    listing.LoanID,
			Status:    "success",
			Message:   "loan listed for sale",
			ListedAt:  listing.ListedAt,
		}
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

// Bid appends a pending bid on a listed loan. Bidding on your own loan is
// rejected; ownership never changes here.
func (u *Usecase) Bid(ctx context.Context, in BidInput) (*BidDTO, error) {
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return nil, mktDomain.ErrInvalidDiscount
	}

	var dto *BidDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		listing, err := r.Marketplace.GetActiveListing(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return mktDomain.ErrNotListed
			}
			return err
		}
		if listing.SellerLenderID == in.LenderID {
			return mktDomain.ErrOwnBid
		}

		b := &mktDomain.Bid{
			LoanID:          in.LoanID,
			BuyerLenderID:   in.LenderID,
			DiscountPercent: in.DiscountPercent,
			Status:          mktDomain.BidPending,
		}
		if err := r.Marketplace.CreateBid(ctx, b); err != nil {
			return err
		}
		count, err := r.Marketplace.CountBids(ctx, in.LoanID)
		if err != nil {
			return err
		}
		dto = &BidDTO{
			BidID:    b.ID,
			LoanID:   b.LoanID,
			Status:   string(b.Status),
			BidCount: count,
			Message:  "bid submitted",
		}
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

// AcceptBid settles a sale: the seller picks one pending bid, ownership moves
// to the bidder at the suggested price less the bid discount, every other
// pending bid is rejected, the listing closes and any pending swap proposals
// touching the loan are declined. All of it commits atomically or not at all.
func (u *Usecase) AcceptBid(ctx context.Context, in AcceptBidInput) (*SaleDTO, error) {
	bid, err := u.market.GetBidByID(ctx, in.BidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mktDomain.ErrBidNotFound
		}
		return nil, err
	}

	var dto *SaleDTO
	err = u.uow.WithinLoanTx(ctx, bid.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		b, err := r.Marketplace.GetBidByIDForUpdate(ctx, in.BidID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return mktDomain.ErrBidNotFound
			}
			return err
		}
		if b.Status != mktDomain.BidPending {
			return mktDomain.ErrBidResolved
		}
		if l.CurrentLenderID != in.LenderID {
			return loanDomain.ErrNotOwned
		}

		listing, err := r.Marketplace.GetActiveListing(ctx, b.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return mktDomain.ErrNotListed
			}
			return err
		}

		salePrice := l.Value() * (1 - b.DiscountPercent/100)

		pending, err := r.Marketplace.ListPendingBids(ctx, b.LoanID)
		if err != nil {
			return err
		}
		rejected := 0
		for i := range pending {
			other := &pending[i]
			if other.ID == b.ID {
				continue
			}
			other.Status = mktDomain.BidRejected
			if err := r.Marketplace.SaveBid(ctx, other); err != nil {
				return err
			}
			rejected++
		}

		b.Status = mktDomain.BidAccepted
		if err := r.Marketplace.SaveBid(ctx, b); err != nil {
			return err
		}

		now := time.Now().UTC()
		listing.IsActive = false
		listing.ClosedAt = &now
		if err := r.Marketplace.SaveListing(ctx, listing); err != nil {
			return err
		}
		if err := r.Marketplace.DeleteReveal(ctx, b.LoanID); err != nil {
			return err
		}

		// The loan is no longer available; stale swap offers lose.
		proposals, err := r.Swaps.ListPendingByLoan(ctx, b.LoanID)
		if err != nil {
			return err
		}
		for i := range proposals {
			p := &proposals[i]
			p.Status = swapDomain.StatusDeclined
			p.RespondedAt = &now
			if err := r.Swaps.Save(ctx, p); err != nil {
				return err
			}
		}

		seller := l.CurrentLenderID
		l.CurrentLenderID = b.BuyerLenderID
		if err := analysis.RescoreLoan(ctx, r, l, u.policy); err != nil {
			return err
		}

		dto = &SaleDTO{
			LoanID:          l.ID,
			BidID:           b.ID,
			SellerLenderID:  seller,
			BuyerLenderID:   b.BuyerLenderID,
			SalePrice:       salePrice,
			DiscountPercent: b.DiscountPercent,
			RejectedBids:    rejected,
			Status:          "settled",
		}
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

// Interest records non-binding buying interest; repeating it is a no-op.
func (u *Usecase) Interest(ctx context.Context, in InterestInput) (*InterestDTO, error) {
	if _, err := u.loans.GetByID(ctx, in.LoanID); err != nil {
		return nil, mapLoanErr(err)
	}

	_, err := u.market.GetInterest(ctx, in.LoanID, in.LenderID)
	switch {
	case err == nil:
		count, err := u.market.CountInterests(ctx, in.LoanID)
		if err != nil {
			return nil, err
		}
		return &InterestDTO{Status: "exists", Message: "interest already expressed", InterestCount: count}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := u.market.CreateInterest(ctx, &mktDomain.Interest{LoanID: in.LoanID, BuyerLenderID: in.LenderID}); err != nil {
		return nil, err
	}
	count, err := u.market.CountInterests(ctx, in.LoanID)
	if err != nil {
		return nil, err
	}
	return &InterestDTO{Status: "success", Message: "interest expressed", InterestCount: count}, nil
}

// Reveal runs the two-party consent gate. Each side's opt-in is idempotent;
// identities come back only once both sides have revealed.
func (u *Usecase) Reveal(ctx context.Context, in RevealInput) (*RevealDTO, error) {
	var dto *RevealDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		rv, err := r.Marketplace.GetReveal(ctx, in.LoanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rv = &mktDomain.Reveal{LoanID: in.LoanID, SellerLenderID: l.CurrentLenderID}
			if err := r.Marketplace.CreateReveal(ctx, rv); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if in.IsBuyer {
			rv.BuyerRevealed = true
			rv.BuyerLenderID = &in.LenderID
		} else {
			rv.SellerRevealed = true
		}
		if rv.Mutual() && rv.RevealedAt == nil {
			now := time.Now().UTC()
			rv.RevealedAt = &now
		}
		if err := r.Marketplace.SaveReveal(ctx, rv); err != nil {
			return err
		}

		dto = &RevealDTO{
			Status:         "pending",
			SellerRevealed: rv.SellerRevealed,
			BuyerRevealed:  rv.BuyerRevealed,
			RevealedAt:     rv.RevealedAt,
		}
		if rv.Mutual() {
			dto.Status = "revealed"
			seller, err := r.Lenders.GetByID(ctx, rv.SellerLenderID)
			if err != nil {
				return err
			}
			dto.SellerName = seller.Name
			if rv.BuyerLenderID != nil {
				buyer, err := r.Lenders.GetByID(ctx, *rv.BuyerLenderID)
				if err != nil {
					return err
				}
				dto.BuyerName = buyer.Name
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

type OpportunityFilter struct {
	LenderID uint64
	Sector   string
	MinROI   float64
}

// Opportunities lists active listings where the caller is the best-match
// lender, best fit improvement first. Seller identity is aliased.
func (u *Usecase) Opportunities(ctx context.Context, f OpportunityFilter) ([]OpportunityDTO, error) {
	listings, err := u.market.ListActiveListings(ctx)
	if err != nil {
		return nil, err
	}

	aliaser := banding.NewAliaser()
	out := make([]OpportunityDTO, 0, len(listings))
	for i := range listings {
		listing := &listings[i]
		l, err := u.loans.GetByID(ctx, listing.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if l.CurrentLenderID == f.LenderID {
			continue
		}
		if l.BestMatchLenderID == nil || *l.BestMatchLenderID != f.LenderID {
			continue
		}
		if f.MinROI > 0 && l.AnnualizedROI < f.MinROI {
			continue
		}

		c, err := u.companies.GetByID(ctx, l.CompanyID)
		if err != nil {
			return nil, err
		}
		if f.Sector != "" && c.Sector != f.Sector {
			continue
		}

		seller, err := u.lenders.GetByID(ctx, l.CurrentLenderID)
		if err != nil {
			return nil, err
		}
		interests, err := u.market.CountInterests(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		bids, err := u.market.CountBids(ctx, l.ID)
		if err != nil {
			return nil, err
		}

		out = append(out, OpportunityDTO{
			LoanID:                   l.ID,
			CompanyID:                c.SMEID,
			Sector:                   c.Sector,
			Region:                   c.Region,
			SellerLender:             aliaser.Alias(seller.Name),
			OutstandingBalance:       l.OutstandingBalance,
			OutstandingBalanceBanded: banding.Amount(l.OutstandingBalance),
			YearsRemaining:           l.YearsRemaining,
			RiskScore:                c.RiskScore,
			RiskCategory:             c.RiskCategory,
			InclusionScore:           c.InclusionScore,
			CurrentFit:               l.CurrentLenderFit,
			YourFit:                  l.BestMatchFit,
			FitImprovement:           l.FitGap,
			SuggestedPrice:           l.SuggestedPrice,
			DiscountPercent:          l.DiscountPercent,
			GrossROI:                 l.GrossROI,
			RiskAdjustedROI:          l.RiskAdjustedROI,
			AnnualizedROI:            l.AnnualizedROI,
			InterestCount:            interests,
			BidCount:                 bids,
			ListedAt:                 listing.ListedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FitImprovement > out[j].FitImprovement })
	return out, nil
}

// MyLoans lists the caller's book, widest fit gap first.
func (u *Usecase) MyLoans(ctx context.Context, lenderID uint64, mismatchedOnly bool) ([]MyLoanDTO, error) {
	loans, err := u.loans.ListByLender(ctx, lenderID, mismatchedOnly)
	if err != nil {
		return nil, err
	}

	aliaser := banding.NewAliaser()
	out := make([]MyLoanDTO, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		c, err := u.companies.GetByID(ctx, l.CompanyID)
		if err != nil {
			return nil, err
		}

		dto := MyLoanDTO{
			LoanID:                   l.ID,
			CompanyID:                c.SMEID,
			Sector:                   c.Sector,
			Region:                   c.Region,
			OutstandingBalance:       l.OutstandingBalance,
			OutstandingBalanceBanded: banding.Amount(l.OutstandingBalance),
			YearsRemaining:           l.YearsRemaining,
			RiskScore:                c.RiskScore,
			CurrentFit:               l.CurrentLenderFit,
			BestMatchFit:             l.BestMatchFit,
			FitGap:                   l.FitGap,
			ReallocationStatus:       string(l.ReallocationTier),
			SuggestedPrice:           l.SuggestedPrice,
		}
		if l.BestMatchLenderID != nil {
			best, err := u.lenders.GetByID(ctx, *l.BestMatchLenderID)
			if err == nil {
				dto.BestMatchLender = aliaser.Alias(best.Name)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}

		_, err = u.market.GetActiveListing(ctx, l.ID)
		switch {
		case err == nil:
			dto.IsListed = true
			bids, err := u.market.ListPendingBids(ctx, l.ID)
			if err != nil {
				return nil, err
			}
			dto.BidCount = len(bids)
			if len(bids) > 0 {
				best := bids[0].DiscountPercent
				for _, b := range bids[1:] {
					if b.DiscountPercent < best {
						best = b.DiscountPercent
					}
				}
				dto.BestBidDiscount = &best
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		out = append(out, dto)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FitGap > out[j].FitGap })
	return out, nil
}

func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	listed, err := u.market.CountActiveListings(ctx)
	if err != nil {
		return nil, err
	}
	bids, err := u.market.CountPendingBids(ctx)
	if err != nil {
		return nil, err
	}
	interests, err := u.market.CountAllInterests(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsDTO{ListedLoans: listed, PendingBids: bids, TotalInterests: interests}, nil
}

func mapLoanErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
