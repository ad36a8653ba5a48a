package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("loan not found")
	ErrNotOwned      = errors.New("loan does not belong to this lender")
	ErrAlreadyListed = errors.New("loan is already listed")
)

// ReallocationStatus tiers a loan by how far current-lender fit trails the best
// achievable fit. Every loan carries exactly one tier.
type ReallocationStatus string

const (
	StatusStrong   ReallocationStatus = "STRONG"
	StatusModerate ReallocationStatus = "MODERATE"
	StatusMinor    ReallocationStatus = "MINOR"
	StatusNone     ReallocationStatus = "NONE"
)

type Loan struct {
	ID              uint64 `gorm:"primaryKey;column:id" json:"id"`
	CompanyID       uint64 `gorm:"index;not null" json:"company_id"`
	CurrentLenderID uint64 `gorm:"index;not null" json:"current_lender_id"`

	// Loan terms
	LoanAmount         float64 `gorm:"type:decimal(18,2)" json:"loan_amount"`
	OutstandingBalance float64 `gorm:"type:decimal(18,2)" json:"outstanding_balance"`
	LoanTermYears      int     `json:"loan_term_years"`
	YearsRemaining     float64 `gorm:"type:decimal(6,2)" json:"years_remaining"`
	InterestRate       float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	MonthlyPayment     float64 `gorm:"type:decimal(18,2)" json:"monthly_payment"`

	// Matcher outputs
	CurrentLenderFit  float64            `gorm:"type:decimal(6,2)" json:"current_lender_fit"`
	BestMatchLenderID *uint64            `gorm:"index" json:"best_match_lender_id"`
	BestMatchFit      float64            `gorm:"type:decimal(6,2)" json:"best_match_fit"`
	FitGap            float64            `gorm:"type:decimal(6,2)" json:"fit_gap"`
	ReallocationTier  ReallocationStatus `gorm:"size:16;column:reallocation_status" json:"reallocation_status"`
	IsMismatch        bool               `gorm:"index" json:"is_mismatch"`

	// Pricer outputs
	DefaultProbability float64 `gorm:"type:decimal(6,4)" json:"default_probability"`
	RemainingPayments  float64 `gorm:"type:decimal(18,2)" json:"remaining_payments"`
	ExpectedLoss       float64 `gorm:"type:decimal(18,2)" json:"expected_loss"`
	RiskAdjustedValue  float64 `gorm:"type:decimal(18,2)" json:"risk_adjusted_value"`
	MisfitDiscount     float64 `gorm:"type:decimal(6,4)" json:"misfit_discount"`
	SuggestedPrice     float64 `gorm:"type:decimal(18,2)" json:"suggested_price"`
	DiscountPercent    float64 `gorm:"type:decimal(6,2)" json:"discount_percent"`
	GrossROI           float64 `gorm:"type:decimal(8,2)" json:"gross_roi"`
	RiskAdjustedROI    float64 `gorm:"type:decimal(8,2)" json:"risk_adjusted_roi"`
	AnnualizedROI      float64 `gorm:"type:decimal(8,2)" json:"annualized_roi"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Value is what a buyer pays absent a negotiated discount: the suggested price
// when priced, otherwise the outstanding balance.
func (l *Loan) Value() float64 {
	if l.SuggestedPrice > 0 {
		return l.SuggestedPrice
	}
	return l.OutstandingBalance
}
