package credits

import (
	"context"
	"errors"
	"time"

	creditDomain "sme-exchange-backend/internal/domain/credit"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	"sme-exchange-backend/internal/domain/uow"
	"sme-exchange-backend/pkg/id"

	"gorm.io/gorm"
)

const defaultHistoryLimit = 50

type Usecase struct {
	lenders lenderDomain.Repository
	ledger  creditDomain.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(lenders lenderDomain.Repository, ledger creditDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{lenders: lenders, ledger: ledger, uow: tx}
}

type SpendInput struct {
	LenderID    uint64                  `json:"lender_id" validate:"required"`
	Action      creditDomain.ActionType `json:"action_type" validate:"required"`
	TargetType  string                  `json:"target_type"`
	TargetID    string                  `json:"target_id"`
	Description string                  `json:"description"`
}

type SpendResult struct {
	Reference  string `json:"reference"`
	Cost       int    `json:"cost"`
	NewBalance int    `json:"new_balance"`
	Charged    bool   `json:"charged"`
	Message    string `json:"message"`
}

// Spend meters a chargeable action against the lender's balance. The lender
// row is locked for the whole transaction, so the balance can never race below
// zero. A repeat of the same (lender, action, target) replays at zero cost.
func (u *Usecase) Spend(ctx context.Context, in SpendInput) (*SpendResult, error) {
	cost, err := creditDomain.Cost(in.Action)
	if err != nil {
		return nil, err
	}

	var out *SpendResult
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Lenders.GetByIDForUpdate(ctx, in.LenderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return lenderDomain.ErrNotFound
			}
			return err
		}

		if in.TargetID != "" {
			prior, err := r.Credits.FindByTarget(ctx, in.LenderID, in.Action, in.TargetID)
			switch {
			case err == nil:
				out = &SpendResult{
					Reference:  prior.Reference,
					Cost:       0,
					NewBalance: l.CreditBalance,
					Charged:    false,
					Message:    "already performed this action (no charge)",
				}
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if l.CreditBalance < cost {
			return creditDomain.ErrInsufficientCredits
		}

		l.CreditBalance -= cost
		if err := r.Lenders.Save(ctx, l); err != nil {
			return err
		}

		t := &creditDomain.Transaction{
			Reference:    id.NewID32(),
			LenderID:     in.LenderID,
			Action:       in.Action,
			Cost:         cost,
			BalanceAfter: l.CreditBalance,
			TargetType:   in.TargetType,
			TargetID:     in.TargetID,
			Description:  in.Description,
			CreatedAt:    time.Now().UTC(),
		}
		if err := r.Credits.Append(ctx, t); err != nil {
			return err
		}

		out = &SpendResult{
			Reference:  t.Reference,
			Cost:       cost,
			NewBalance: l.CreditBalance,
			Charged:    true,
			Message:    "charged for " + string(t.Action),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type BalanceDTO struct {
	Balance     int   `json:"balance"`
	TotalSpent  int64 `json:"total_spent"`
	ActionCount int64 `json:"action_count"`
}

func (u *Usecase) Balance(ctx context.Context, lenderID uint64) (*BalanceDTO, error) {
	l, err := u.lenders.GetByID(ctx, lenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lenderDomain.ErrNotFound
		}
		return nil, err
	}
	spent, err := u.ledger.TotalSpent(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	count, err := u.ledger.CountByLender(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	return &BalanceDTO{Balance: l.CreditBalance, TotalSpent: spent, ActionCount: count}, nil
}

func (u *Usecase) History(ctx context.Context, lenderID uint64, limit int) ([]creditDomain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	return u.ledger.History(ctx, lenderID, limit)
}

// Costs returns the published cost table.
func (u *Usecase) Costs() map[creditDomain.ActionType]int { return creditDomain.Costs }
