package credit

import (
	"errors"
	"time"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUnknownAction       = errors.New("unknown action type")
)

// ActionType names a chargeable action. Costs come from the published table.
type ActionType string

const (
	ActionViewDetails         ActionType = "view_details"
	ActionViewSwapDetails     ActionType = "view_swap_details"
	ActionGenerateExplanation ActionType = "generate_explanation"
	ActionGenerateSwapStory   ActionType = "generate_swap_story"
	ActionBrowseUnlisted      ActionType = "browse_unlisted_loans"
	ActionSubmitBid           ActionType = "submit_bid"
	ActionViewBids            ActionType = "view_bids"
	ActionAcceptSwap          ActionType = "accept_swap"
	ActionExpressInterest     ActionType = "express_interest"
	ActionRevealCounterparty  ActionType = "reveal_counterparty"
	ActionProposeSwap         ActionType = "propose_swap"
)

// Costs is the published cost table.
var Costs = map[ActionType]int{
	ActionViewDetails:         1,
	ActionViewSwapDetails:     1,
	ActionGenerateExplanation: 2,
	ActionGenerateSwapStory:   2,
	ActionBrowseUnlisted:      2,
	ActionSubmitBid:           3,
	ActionViewBids:            3,
	ActionAcceptSwap:          3,
	ActionExpressInterest:     5,
	ActionRevealCounterparty:  5,
	ActionProposeSwap:         5,
}

// Cost returns the price of an action, or ErrUnknownAction.
func Cost(a ActionType) (int, error) {
	c, ok := Costs[a]
	if !ok {
		return 0, ErrUnknownAction
	}
	return c, nil
}

// Transaction is an append-only ledger entry. Rows are never updated or deleted.
type Transaction struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"id"`
	Reference string `gorm:"size:32;uniqueIndex" json:"reference"`

	LenderID     uint64     `gorm:"index;not null" json:"lender_id"`
	Action       ActionType `gorm:"size:32;column:action_type" json:"action_type"`
	Cost         int        `json:"cost"`
	BalanceAfter int        `json:"balance_after"`

	TargetType  string `gorm:"size:32" json:"target_type,omitempty"`
	TargetID    string `gorm:"size:64;index" json:"target_id,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (Transaction) TableName() string { return "credit_transactions" }
