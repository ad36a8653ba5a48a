package swap

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	Save(ctx context.Context, p *Proposal) error
	GetByID(ctx context.Context, id uint64) (*Proposal, error)
	// GetByIDForUpdate locks the proposal row within the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Proposal, error)
	ListByLender(ctx context.Context, lenderID uint64, status Status) ([]Proposal, error)
	// ListPendingByLoan returns pending proposals referencing the loan on either leg.
	ListPendingByLoan(ctx context.Context, loanID uint64) ([]Proposal, error)
}
