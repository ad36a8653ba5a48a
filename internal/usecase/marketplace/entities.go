package marketplace

import "time"

type ListLoanInput struct {
	LoanID   uint64 `json:"loan_id" validate:"required"`
	LenderID uint64 `json:"lender_id" validate:"required"`
}

type ListingDTO struct {
	ListingID uint64    `json:"listing_id"`
	LoanID    uint64    `json:"loan_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	ListedAt  time.Time `json:"listed_at"`
}

type BidInput struct {
	LoanID          uint64  `json:"loan_id" validate:"required"`
	LenderID        uint64  `json:"lender_id" validate:"required"`
	DiscountPercent float64 `json:"discount_percent" validate:"min=0,max=100,dec2"`
}

type BidDTO struct {
	BidID    uint64 `json:"bid_id"`
	LoanID   uint64 `json:"loan_id"`
	Status   string `json:"status"`
	BidCount int64  `json:"bid_count"`
	Message  string `json:"message"`
}

type AcceptBidInput struct {
	BidID    uint64 `json:"bid_id" validate:"required"`
	LenderID uint64 `json:"lender_id" validate:"required"`
}

type SaleDTO struct {
	LoanID          uint64  `json:"loan_id"`
	BidID           uint64  `json:"bid_id"`
	SellerLenderID  uint64  `json:"seller_lender_id"`
	BuyerLenderID   uint64  `json:"buyer_lender_id"`
	SalePrice       float64 `json:"sale_price"`
	DiscountPercent float64 `json:"discount_percent"`
	RejectedBids    int     `json:"rejected_bids"`
	Status          string  `json:"status"`
}

type InterestInput struct {
	LoanID   uint64 `json:"loan_id" validate:"required"`
	LenderID uint64 `json:"lender_id" validate:"required"`
}

type InterestDTO struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	InterestCount int64  `json:"interest_count"`
}

type RevealInput struct {
	LoanID   uint64 `json:"loan_id" validate:"required"`
	LenderID uint64 `json:"lender_id" validate:"required"`
	IsBuyer  bool   `json:"is_buyer"`
}

type RevealDTO struct {
	Status         string     `json:"status"` // pending or revealed
	SellerRevealed bool       `json:"seller_revealed"`
	BuyerRevealed  bool       `json:"buyer_revealed"`
	SellerName     string     `json:"seller_name,omitempty"`
	BuyerName      string     `json:"buyer_name,omitempty"`
	RevealedAt     *time.Time `json:"revealed_at,omitempty"`
}

// OpportunityDTO is an externally-surfaced listing: counterparty identity is
// aliased and the balance is banded alongside the exact figure.
type OpportunityDTO struct {
	LoanID                   uint64    `json:"loan_id"`
	CompanyID                string    `json:"company_id"`
	Sector                   string    `json:"sector"`
	Region                   string    `json:"region"`
	SellerLender             string    `json:"seller_lender"`
	OutstandingBalance       float64   `json:"outstanding_balance"`
	OutstandingBalanceBanded string    `json:"outstanding_balance_banded"`
	YearsRemaining           float64   `json:"years_remaining"`
	RiskScore                float64   `json:"risk_score"`
	RiskCategory             string    `json:"risk_category"`
	InclusionScore           float64   `json:"inclusion_score"`
	CurrentFit               float64   `json:"current_fit"`
	YourFit                  float64   `json:"your_fit"`
	FitImprovement           float64   `json:"fit_improvement"`
	SuggestedPrice           float64   `json:"suggested_price"`
	DiscountPercent          float64   `json:"discount_percent"`
	GrossROI                 float64   `json:"gross_roi"`
	RiskAdjustedROI          float64   `json:"risk_adjusted_roi"`
	AnnualizedROI            float64   `json:"annualized_roi"`
	InterestCount            int64     `json:"interest_count"`
	BidCount                 int64     `json:"bid_count"`
	ListedAt                 time.Time `json:"listed_at"`
}

type MyLoanDTO struct {
	LoanID                   uint64   `json:"loan_id"`
	CompanyID                string   `json:"company_id"`
	Sector                   string   `json:"sector"`
	Region                   string   `json:"region"`
	OutstandingBalance       float64  `json:"outstanding_balance"`
	OutstandingBalanceBanded string   `json:"outstanding_balance_banded"`
	YearsRemaining           float64  `json:"years_remaining"`
	RiskScore                float64  `json:"risk_score"`
	CurrentFit               float64  `json:"current_fit"`
	BestMatchLender          string   `json:"best_match_lender,omitempty"`
	BestMatchFit             float64  `json:"best_match_fit"`
	FitGap                   float64  `json:"fit_gap"`
	ReallocationStatus       string   `json:"reallocation_status"`
	SuggestedPrice           float64  `json:"suggested_price"`
	IsListed                 bool     `json:"is_listed"`
	BidCount                 int      `json:"bid_count"`
	BestBidDiscount          *float64 `json:"best_bid_discount,omitempty"`
}

type StatsDTO struct {
	ListedLoans    int64 `json:"listed_loans"`
	PendingBids    int64 `json:"pending_bids"`
	TotalInterests int64 `json:"total_interests"`
}
