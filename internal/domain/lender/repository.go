package lender

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lender) error
	Save(ctx context.Context, l *Lender) error
	GetByID(ctx context.Context, id uint64) (*Lender, error)
	// GetByIDForUpdate locks the lender row for the duration of the enclosing
	// transaction; used by the credits ledger.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Lender, error)
	ListAll(ctx context.Context) ([]Lender, error)
	Count(ctx context.Context) (int64, error)
}
