package swap

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("swap proposal not found")
	ErrNotCounterparty = errors.New("only the counterparty lender may accept")
	ErrNotParticipant  = errors.New("lender is not a party to this proposal")
	ErrAlreadyResolved = errors.New("swap proposal is already resolved")
	ErrLoanRequired    = errors.New("open swap requires a selected loan")
	ErrLoanNotEligible = errors.New("selected loan is not owned by the counterparty")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Proposal is a manual loan-swap offer. An open swap leaves the counterparty
// loan unspecified; the counterparty picks one of its own loans at accept time.
type Proposal struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"id"`

	ProposerLenderID     uint64  `gorm:"index;not null" json:"proposer_lender_id"`
	ProposerLoanID       uint64  `gorm:"index;not null" json:"proposer_loan_id"`
	CounterpartyLenderID uint64  `gorm:"index;not null" json:"counterparty_lender_id"`
	CounterpartyLoanID   *uint64 `gorm:"index" json:"counterparty_loan_id"`

	IsOpenSwap     bool    `json:"is_open_swap"`
	CashAdjustment float64 `gorm:"type:decimal(18,2)" json:"cash_adjustment"`

	ProposerFitImprovement     float64 `gorm:"type:decimal(6,2)" json:"proposer_fit_improvement"`
	CounterpartyFitImprovement float64 `gorm:"type:decimal(6,2)" json:"counterparty_fit_improvement"`
	TotalFitImprovement        float64 `gorm:"type:decimal(6,2)" json:"total_fit_improvement"`

	InclusionBonus  float64 `gorm:"type:decimal(6,2)" json:"inclusion_bonus"`
	IsInclusionSwap bool    `json:"is_inclusion_swap"`

	Status      Status     `gorm:"size:16;index;default:'pending'" json:"status"`
	Reasoning   string     `gorm:"type:text" json:"reasoning,omitempty"`
	RespondedAt *time.Time `json:"responded_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Proposal) TableName() string { return "swap_proposals" }

func (p *Proposal) Terminal() bool { return p.Status != StatusPending }

// References reports whether the proposal touches the given loan on either leg.
func (p *Proposal) References(loanID uint64) bool {
	if p.ProposerLoanID == loanID {
		return true
	}
	return p.CounterpartyLoanID != nil && *p.CounterpartyLoanID == loanID
}
