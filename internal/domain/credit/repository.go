package credit

import "context"

type Repository interface {
	Append(ctx context.Context, t *Transaction) error
	// History returns entries most-recent-first, capped at limit.
	History(ctx context.Context, lenderID uint64, limit int) ([]Transaction, error)
	// FindByTarget locates a prior charge for the same (lender, action, target),
	// used to avoid double charging.
	FindByTarget(ctx context.Context, lenderID uint64, action ActionType, targetID string) (*Transaction, error)
	TotalSpent(ctx context.Context, lenderID uint64) (int64, error)
	CountByLender(ctx context.Context, lenderID uint64) (int64, error)
}
