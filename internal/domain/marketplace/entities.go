package marketplace

import (
	"errors"
	"time"
)

var (
	ErrNotListed       = errors.New("loan is not listed for sale")
	ErrAlreadyListed   = errors.New("loan is already listed")
	ErrOwnBid          = errors.New("cannot bid on your own loan")
	ErrBidNotFound     = errors.New("bid not found")
	ErrBidResolved     = errors.New("bid is already resolved")
	ErrInvalidDiscount = errors.New("discount_percent must be between 0 and 100")
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Listing marks a loan for sale. At most one active listing per loan.
type Listing struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"id"`
	LoanID         uint64     `gorm:"index;not null" json:"loan_id"`
	SellerLenderID uint64     `gorm:"index;not null" json:"seller_lender_id"`
	IsActive       bool       `gorm:"index;default:true" json:"is_active"`
	ListedAt       time.Time  `gorm:"autoCreateTime" json:"listed_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

func (Listing) TableName() string { return "listed_loans" }

type Bid struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"id"`
	LoanID          uint64    `gorm:"index;not null" json:"loan_id"`
	BuyerLenderID   uint64    `gorm:"index;not null" json:"buyer_lender_id"`
	DiscountPercent float64   `gorm:"type:decimal(6,2)" json:"discount_percent"`
	Status          BidStatus `gorm:"size:16;default:'pending'" json:"status"`
	SubmittedAt     time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

func (Bid) TableName() string { return "bids" }

// Interest is a non-binding expression of buying interest.
type Interest struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	LoanID        uint64    `gorm:"index;not null" json:"loan_id"`
	BuyerLenderID uint64    `gorm:"index;not null" json:"buyer_lender_id"`
	ExpressedAt   time.Time `gorm:"autoCreateTime" json:"expressed_at"`
}

func (Interest) TableName() string { return "interests" }

// Reveal tracks the mutual-consent disclosure gate for one loan. Identities are
// disclosed only once both sides have opted in; each side's opt-in is idempotent.
type Reveal struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"id"`
	LoanID         uint64     `gorm:"uniqueIndex;not null" json:"loan_id"`
	SellerLenderID uint64     `json:"seller_lender_id"`
	BuyerLenderID  *uint64    `json:"buyer_lender_id"`
	SellerRevealed bool       `json:"seller_revealed"`
	BuyerRevealed  bool       `json:"buyer_revealed"`
	RevealedAt     *time.Time `json:"revealed_at"`
}

func (Reveal) TableName() string { return "reveals" }

func (r *Reveal) Mutual() bool { return r.SellerRevealed && r.BuyerRevealed }
