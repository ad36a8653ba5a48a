package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the loan row within the enclosing transaction.
	// Ownership transfers acquire locks in ascending id order.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	GetByCompanyID(ctx context.Context, companyID uint64) (*Loan, error)
	ListByLender(ctx context.Context, lenderID uint64, mismatchedOnly bool) ([]Loan, error)
	ListMismatched(ctx context.Context) ([]Loan, error)
	ListMismatchedByLender(ctx context.Context, lenderID uint64, minGap float64) ([]Loan, error)
	// ListComplementary returns mismatched loans held by holderID whose best
	// match is targetID with at least minGap of improvement.
	ListComplementary(ctx context.Context, holderID, targetID uint64, minGap float64) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	Count(ctx context.Context) (int64, error)
	CountMismatched(ctx context.Context) (int64, error)
	SumOutstanding(ctx context.Context) (float64, error)
	SumOutstandingByLender(ctx context.Context, lenderID uint64, byBestMatch bool) (float64, error)
	CountByLender(ctx context.Context, lenderID uint64, byBestMatch bool) (int64, error)
}
