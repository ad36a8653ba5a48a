package mysql

import (
	"context"
	"errors"
	"testing"

	swapDomain "sme-exchange-backend/internal/domain/swap"

	"gorm.io/gorm"
)

func makeProposal(proposer, counterparty uint64, proposerLoan uint64, counterpartyLoan *uint64, status swapDomain.Status) *swapDomain.Proposal {
	return &swapDomain.Proposal{
		ProposerLenderID:     proposer,
		ProposerLoanID:       proposerLoan,
		CounterpartyLenderID: counterparty,
		CounterpartyLoanID:   counterpartyLoan,
		IsOpenSwap:           counterpartyLoan == nil,
		Status:               status,
	}
}

func TestProposalCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	two := uint64(2)
	p := makeProposal(5, 6, 1, &two, swapDomain.StatusPending)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProposerLenderID != 5 || got.CounterpartyLoanID == nil || *got.CounterpartyLoanID != 2 {
		t.Errorf("unexpected proposal: %+v", got)
	}

	if _, err := repo.GetByID(ctx, 404); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing proposal: err = %v", err)
	}
}

func TestProposalListByLender(t *testing.T) {
	db := openTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	two := uint64(2)
	for _, p := range []*swapDomain.Proposal{
		makeProposal(5, 6, 1, &two, swapDomain.StatusPending),
		makeProposal(7, 5, 3, nil, swapDomain.StatusDeclined), // lender 5 on the receiving side
		makeProposal(7, 8, 4, nil, swapDomain.StatusPending),  // unrelated
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	both, err := repo.ListByLender(ctx, 5, "")
	if err != nil {
		t.Fatalf("ListByLender: %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("got %d proposals, want both sides (2)", len(both))
	}
	// newest first
	if both[0].ProposerLenderID != 7 {
		t.Errorf("unexpected order: %+v", both)
	}

	pending, err := repo.ListByLender(ctx, 5, swapDomain.StatusPending)
	if err != nil {
		t.Fatalf("ListByLender pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ProposerLenderID != 5 {
		t.Fatalf("status filter failed: %+v", pending)
	}
}

func TestProposalListPendingByLoan(t *testing.T) {
	db := openTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	one := uint64(1)
	for _, p := range []*swapDomain.Proposal{
		makeProposal(5, 6, 1, nil, swapDomain.StatusPending),  // proposer leg
		makeProposal(7, 5, 9, &one, swapDomain.StatusPending), // counterparty leg
		makeProposal(5, 6, 1, nil, swapDomain.StatusDeclined), // terminal
		makeProposal(5, 6, 3, nil, swapDomain.StatusPending),  // other loan
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	out, err := repo.ListPendingByLoan(ctx, 1)
	if err != nil {
		t.Fatalf("ListPendingByLoan: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d proposals, want 2 (both legs, pending only)", len(out))
	}
}

func TestProposalSaveTransitions(t *testing.T) {
	db := openTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	p := makeProposal(5, 6, 1, nil, swapDomain.StatusPending)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	two := uint64(2)
	p.CounterpartyLoanID = &two
	p.Status = swapDomain.StatusAccepted
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != swapDomain.StatusAccepted || got.CounterpartyLoanID == nil {
		t.Errorf("transition not persisted: %+v", got)
	}
	if !got.Terminal() {
		t.Error("accepted proposal must be terminal")
	}
}
