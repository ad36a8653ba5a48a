package swaps

import "time"

// AutoMatchDTO is a computed double-benefit pairing; never persisted.
// Counterparty identity is aliased and loan values banded.
type AutoMatchDTO struct {
	GiveLoanID         uint64  `json:"give_loan_id"`
	GiveCompanyID      string  `json:"give_company_id"`
	GiveSector         string  `json:"give_sector"`
	GiveRegion         string  `json:"give_region"`
	GiveValue          float64 `json:"give_value"`
	GiveValueBanded    string  `json:"give_value_banded"`
	GiveYourFit        float64 `json:"give_your_fit"`
	GiveTheirFit       float64 `json:"give_their_fit"`
	GiveFitImprovement float64 `json:"give_fit_improvement"`

	ReceiveLoanID         uint64  `json:"receive_loan_id"`
	ReceiveCompanyID      string  `json:"receive_company_id"`
	ReceiveSector         string  `json:"receive_sector"`
	ReceiveRegion         string  `json:"receive_region"`
	ReceiveValue          float64 `json:"receive_value"`
	ReceiveValueBanded    string  `json:"receive_value_banded"`
	ReceiveTheirFit       float64 `json:"receive_their_fit"`
	ReceiveYourFit        float64 `json:"receive_your_fit"`
	ReceiveFitImprovement float64 `json:"receive_fit_improvement"`

	CounterpartyLender  string  `json:"counterparty_lender"`
	TotalFitImprovement float64 `json:"total_fit_improvement"`
	ValueDifference     float64 `json:"value_difference"`
	CashAdjustment      float64 `json:"cash_adjustment"` // positive: you receive cash
	InclusionBonus      float64 `json:"inclusion_bonus"`
	IsInclusionSwap     bool    `json:"is_inclusion_swap"`
	SwapScore           float64 `json:"swap_score"`
}

type ProposeInput struct {
	ProposerLenderID     uint64  `json:"proposer_lender_id" validate:"required"`
	ProposerLoanID       uint64  `json:"proposer_loan_id" validate:"required"`
	CounterpartyLenderID uint64  `json:"counterparty_lender_id" validate:"required"`
	CounterpartyLoanID   *uint64 `json:"counterparty_loan_id"`
	Reasoning            string  `json:"reasoning"`
}

type ProposalDTO struct {
	ProposalID uint64 `json:"proposal_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type AcceptInput struct {
	ProposalID     uint64  `json:"proposal_id" validate:"required"`
	LenderID       uint64  `json:"lender_id" validate:"required"`
	SelectedLoanID *uint64 `json:"selected_loan_id"`
}

type SettlementDTO struct {
	ProposalID           uint64  `json:"proposal_id"`
	Status               string  `json:"status"`
	ProposerLoanID       uint64  `json:"proposer_loan_id"`
	CounterpartyLoanID   uint64  `json:"counterparty_loan_id"`
	CashAdjustment       float64 `json:"cash_adjustment"`
	TotalFitImprovement  float64 `json:"total_fit_improvement"`
	InvalidatedProposals int     `json:"invalidated_proposals"`
}

// DeclineInput binds from query params (the decline contract) or a JSON body.
type DeclineInput struct {
	ProposalID uint64 `json:"proposal_id" query:"proposal_id" validate:"required"`
	LenderID   uint64 `json:"lender_id" query:"lender_id" validate:"required"`
}

// ProposalDetailDTO is one proposal as seen by a participant; the other side's
// identity stays aliased until settled through the reveal gate.
type ProposalDetailDTO struct {
	ID         uint64 `json:"id"`
	IsProposer bool   `json:"is_proposer"`
	Status     string `json:"status"`
	IsOpenSwap bool   `json:"is_open_swap"`

	ProposerLender    string  `json:"proposer_lender"`
	ProposerLoanID    uint64  `json:"proposer_loan_id"`
	ProposerCompanyID string  `json:"proposer_company_id,omitempty"`
	ProposerSector    string  `json:"proposer_sector,omitempty"`
	ProposerValue     float64 `json:"proposer_value"`

	CounterpartyLender    string   `json:"counterparty_lender"`
	CounterpartyLoanID    *uint64  `json:"counterparty_loan_id"`
	CounterpartyCompanyID string   `json:"counterparty_company_id,omitempty"`
	CounterpartySector    string   `json:"counterparty_sector,omitempty"`
	CounterpartyValue     *float64 `json:"counterparty_value"`

	CashAdjustment      float64   `json:"cash_adjustment"`
	TotalFitImprovement float64   `json:"total_fit_improvement"`
	IsInclusionSwap     bool      `json:"is_inclusion_swap"`
	Reasoning           string    `json:"reasoning,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}
