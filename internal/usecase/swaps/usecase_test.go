package swaps

import (
	"context"
	"errors"
	"testing"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/scoring"
	swapDomain "sme-exchange-backend/internal/domain/swap"
	"sme-exchange-backend/internal/domain/uow"
	"sme-exchange-backend/internal/testutil/companymock"
	"sme-exchange-backend/internal/testutil/creditmock"
	"sme-exchange-backend/internal/testutil/lendermock"
	"sme-exchange-backend/internal/testutil/loanmock"
	"sme-exchange-backend/internal/testutil/marketmock"
	"sme-exchange-backend/internal/testutil/swapmock"
	"sme-exchange-backend/internal/testutil/uowmock"
)

type env struct {
	loans     *loanmock.Repo
	companies *companymock.Repo
	lenders   *lendermock.Repo
	swaps     *swapmock.Repo
	uc        *Usecase
}

func newEnv() *env {
	e := &env{
		loans:     &loanmock.Repo{},
		companies: &companymock.Repo{},
		lenders:   &lendermock.Repo{},
		swaps:     &swapmock.Repo{},
	}
	repos := uow.Repos{
		Companies:   e.companies,
		Lenders:     e.lenders,
		Loans:       e.loans,
		Marketplace: &marketmock.Repo{},
		Swaps:       e.swaps,
		Credits:     &creditmock.Repo{},
	}
	e.uc = NewUsecase(e.loans, e.companies, e.lenders, e.swaps, scoring.DefaultPolicy(), uowmock.New(repos))
	return e
}

func (e *env) loanStore(loans ...*loanDomain.Loan) map[uint64]*loanDomain.Loan {
	store := make(map[uint64]*loanDomain.Loan, len(loans))
	for _, l := range loans {
		store[l.ID] = l
	}
	get := func(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
		if l, ok := store[id]; ok {
			return l, nil
		}
		return nil, loanDomain.ErrNotFound
	}
	e.loans.GetByIDFn = get
	e.loans.GetByIDForUpdateFn = get
	return store
}

func (e *env) companyStore(cs ...*companyDomain.Company) {
	e.companies.GetByIDFn = func(ctx context.Context, id uint64) (*companyDomain.Company, error) {
		for _, c := range cs {
			if c.ID == id {
				return c, nil
			}
		}
		return nil, companyDomain.ErrNotFound
	}
}

func TestAutoMatches_RanksAndFiltersPairings(t *testing.T) {
	e := newEnv()
	six := uint64(6)

	mine := loanDomain.Loan{
		ID: 1, CompanyID: 10, CurrentLenderID: 5,
		BestMatchLenderID: &six, FitGap: 20,
		CurrentLenderFit: 50, BestMatchFit: 70,
		SuggestedPrice: 100_000,
	}
	e.loans.ListMismatchedByLenderFn = func(ctx context.Context, lenderID uint64, minGap float64) ([]loanDomain.Loan, error) {
		return []loanDomain.Loan{mine}, nil
	}
	e.loans.ListComplementaryFn = func(ctx context.Context, holderID, targetID uint64, minGap float64) ([]loanDomain.Loan, error) {
		return []loanDomain.Loan{
			{ID: 2, CompanyID: 11, CurrentLenderID: 6, FitGap: 18, SuggestedPrice: 95_000},
			{ID: 3, CompanyID: 12, CurrentLenderID: 6, FitGap: 18, SuggestedPrice: 99_000},
			// far outside the 20% value band
			{ID: 4, CompanyID: 13, CurrentLenderID: 6, FitGap: 18, SuggestedPrice: 300_000},
		}, nil
	}
	e.companyStore(
		&companyDomain.Company{ID: 10, SMEID: "SME-000010", Sector: "Defence", InclusionScore: 70},
		&companyDomain.Company{ID: 11, SMEID: "SME-000011", InclusionScore: 40},
		&companyDomain.Company{ID: 12, SMEID: "SME-000012", InclusionScore: 40},
	)
	e.lenders.GetByIDFn = func(ctx context.Context, id uint64) (*lenderDomain.Lender, error) {
		return &lenderDomain.Lender{ID: id, Name: "Beta Credit"}, nil
	}

	out, err := e.uc.AutoMatches(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("AutoMatches: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d matches, want 2 (value band must drop loan 4): %+v", len(out), out)
	}
	// equal swap scores; the tighter cash leg ranks first
	if out[0].ReceiveLoanID != 3 || out[1].ReceiveLoanID != 2 {
		t.Errorf("unexpected ranking: %d then %d", out[0].ReceiveLoanID, out[1].ReceiveLoanID)
	}
	first := out[0]
	if first.TotalFitImprovement != 38 {
		t.Errorf("total improvement = %v, want 38", first.TotalFitImprovement)
	}
	if !first.IsInclusionSwap || first.InclusionBonus != 10 || first.SwapScore != 48 {
		t.Errorf("inclusion bonus not applied: %+v", first)
	}
	if first.CashAdjustment != 1_000 {
		t.Errorf("cash adjustment = %v, want 1000", first.CashAdjustment)
	}
	if first.CounterpartyLender != "Lender A" {
		t.Errorf("counterparty must be aliased, got %q", first.CounterpartyLender)
	}
}

func TestAutoMatches_InclusionOnlyFilter(t *testing.T) {
	e := newEnv()
	six := uint64(6)
	e.loans.ListMismatchedByLenderFn = func(ctx context.Context, lenderID uint64, minGap float64) ([]loanDomain.Loan, error) {
		return []loanDomain.Loan{{ID: 1, CompanyID: 10, BestMatchLenderID: &six, FitGap: 20, SuggestedPrice: 100_000}}, nil
	}
	e.loans.ListComplementaryFn = func(ctx context.Context, holderID, targetID uint64, minGap float64) ([]loanDomain.Loan, error) {
		return []loanDomain.Loan{{ID: 2, CompanyID: 11, FitGap: 18, SuggestedPrice: 95_000}}, nil
	}
	// neither side crosses the inclusion cut
	e.companyStore(
		&companyDomain.Company{ID: 10, InclusionScore: 40},
		&companyDomain.Company{ID: 11, InclusionScore: 40},
	)
	e.lenders.GetByIDFn = func(ctx context.Context, id uint64) (*lenderDomain.Lender, error) {
		return &lenderDomain.Lender{ID: id}, nil
	}

	out, err := e.uc.AutoMatches(context.Background(), 5, true)
	if err != nil {
		t.Fatalf("AutoMatches: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("inclusion-only filter leaked %d matches", len(out))
	}
}

func TestInclusionBonus_OverlookedFlag(t *testing.T) {
	e := newEnv()
	bonus, isInclusion := e.uc.inclusionBonus(
		&companyDomain.Company{InclusionScore: 70, InclusionFlags: companyDomain.Flags{scoring.FlagStrongButOverlooked}},
		&companyDomain.Company{InclusionScore: 30},
	)
	if bonus != 15 || !isInclusion {
		t.Errorf("bonus = %v (%v), want 15 (true)", bonus, isInclusion)
	}
}

func TestPropose_TargetedSwap(t *testing.T) {
	e := newEnv()
	two := uint64(2)
	e.loanStore(
		&loanDomain.Loan{ID: 1, CompanyID: 10, CurrentLenderID: 5, FitGap: 20, SuggestedPrice: 100_000},
		&loanDomain.Loan{ID: 2, CompanyID: 11, CurrentLenderID: 6, FitGap: 12, SuggestedPrice: 95_000},
	)
	e.companyStore(
		&companyDomain.Company{ID: 10, InclusionScore: 40},
		&companyDomain.Company{ID: 11, InclusionScore: 40},
	)
	var created *swapDomain.Proposal
	e.swaps.CreateFn = func(ctx context.Context, p *swapDomain.Proposal) error {
		p.ID = 31
		created = p
		return nil
	}

	dto, err := e.uc.Propose(context.Background(), ProposeInput{
		ProposerLenderID: 5, ProposerLoanID: 1,
		CounterpartyLenderID: 6, CounterpartyLoanID: &two,
		Reasoning: "better sector fit both ways",
	})
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if dto.ProposalID != 31 || dto.Status != "pending" {
		t.Errorf("unexpected dto: %+v", dto)
	}
	if created.IsOpenSwap {
		t.Error("targeted swap marked open")
	}
	if created.CashAdjustment != 5_000 {
		t.Errorf("cash adjustment = %v, want 5000", created.CashAdjustment)
	}
	if created.TotalFitImprovement != 32 {
		t.Errorf("total improvement = %v, want 32", created.TotalFitImprovement)
	}
}

func TestPropose_OpenSwap(t *testing.T) {
	e := newEnv()
	e.loanStore(&loanDomain.Loan{ID: 1, CompanyID: 10, CurrentLenderID: 5, FitGap: 20, SuggestedPrice: 100_000})
	e.companyStore(&companyDomain.Company{ID: 10})
	var created *swapDomain.Proposal
	e.swaps.CreateFn = func(ctx context.Context, p *swapDomain.Proposal) error {
		created = p
		return nil
	}

	_, err := e.uc.Propose(context.Background(), ProposeInput{
		ProposerLenderID: 5, ProposerLoanID: 1, CounterpartyLenderID: 6,
	})
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if !created.IsOpenSwap || created.CounterpartyLoanID != nil {
		t.Errorf("open swap not recorded: %+v", created)
	}
	if created.CashAdjustment != 100_000 {
		t.Errorf("open-swap cash baseline = %v, want the full proposer value", created.CashAdjustment)
	}
}

func TestPropose_OwnershipChecks(t *testing.T) {
	e := newEnv()
	two := uint64(2)
	e.loanStore(
		&loanDomain.Loan{ID: 1, CompanyID: 10, CurrentLenderID: 5},
		&loanDomain.Loan{ID: 2, CompanyID: 11, CurrentLenderID: 7},
	)

	_, err := e.uc.Propose(context.Background(), ProposeInput{ProposerLenderID: 9, ProposerLoanID: 1, CounterpartyLenderID: 6})
	if !errors.Is(err, loanDomain.ErrNotOwned) {
		t.Fatalf("err = %v, want ErrNotOwned", err)
	}

	_, err = e.uc.Propose(context.Background(), ProposeInput{
		ProposerLenderID: 5, ProposerLoanID: 1,
		CounterpartyLenderID: 6, CounterpartyLoanID: &two,
	})
	if !errors.Is(err, swapDomain.ErrLoanNotEligible) {
		t.Fatalf("err = %v, want ErrLoanNotEligible", err)
	}
}

// acceptEnv seeds a pending targeted proposal 41: lender 5 gives loan 1,
// lender 6 gives loan 2.
func acceptEnv(e *env) (*swapDomain.Proposal, map[uint64]*loanDomain.Loan) {
	two := uint64(2)
	p := &swapDomain.Proposal{
		ID:                   41,
		ProposerLenderID:     5,
		ProposerLoanID:       1,
		CounterpartyLenderID: 6,
		CounterpartyLoanID:   &two,
		TotalFitImprovement:  32,
		Status:               swapDomain.StatusPending,
	}
	e.swaps.GetByIDFn = func(ctx context.Context, id uint64) (*swapDomain.Proposal, error) { return p, nil }
	e.swaps.GetByIDForUpdateFn = func(ctx context.Context, id uint64) (*swapDomain.Proposal, error) { return p, nil }

	store := e.loanStore(
		&loanDomain.Loan{ID: 1, CompanyID: 10, CurrentLenderID: 5, SuggestedPrice: 100_000},
		&loanDomain.Loan{ID: 2, CompanyID: 11, CurrentLenderID: 6, SuggestedPrice: 95_000},
	)
	e.companyStore(
		&companyDomain.Company{ID: 10},
		&companyDomain.Company{ID: 11},
	)
	e.lenders.ListAllFn = func(ctx context.Context) ([]lenderDomain.Lender, error) {
		return []lenderDomain.Lender{
			{ID: 5, RiskScoreMin: 40, MinTurnover: 1},
			{ID: 6, RiskScoreMin: 40, MinTurnover: 1},
		}, nil
	}
	return p, store
}

func TestAccept_SwapsBothLegsAtomically(t *testing.T) {
	e := newEnv()
	p, store := acceptEnv(e)

	rival := swapDomain.Proposal{ID: 42, ProposerLoanID: 1, Status: swapDomain.StatusPending}
	e.swaps.ListPendingByLoanFn = func(ctx context.Context, loanID uint64) ([]swapDomain.Proposal, error) {
		if loanID == 1 {
			return []swapDomain.Proposal{rival, *p}, nil
		}
		return []swapDomain.Proposal{*p}, nil
	}
	var saved []swapDomain.Proposal
	e.swaps.SaveFn = func(ctx context.Context, sp *swapDomain.Proposal) error {
		saved = append(saved, *sp)
		return nil
	}

	dto, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 41, LenderID: 6})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if dto.Status != "accepted" || dto.CashAdjustment != 5_000 {
		t.Errorf("unexpected settlement: %+v", dto)
	}
	if dto.InvalidatedProposals != 1 {
		t.Errorf("invalidated = %d, want 1", dto.InvalidatedProposals)
	}
	if store[1].CurrentLenderID != 6 || store[2].CurrentLenderID != 5 {
		t.Errorf("legs did not swap: loan1 -> %d, loan2 -> %d", store[1].CurrentLenderID, store[2].CurrentLenderID)
	}
	if p.Status != swapDomain.StatusAccepted || p.RespondedAt == nil {
		t.Errorf("proposal not settled: %+v", p)
	}
	// first save declines the rival, last save commits the acceptance
	if len(saved) != 2 || saved[0].ID != 42 || saved[0].Status != swapDomain.StatusDeclined {
		t.Errorf("rival proposal not declined: %+v", saved)
	}
}

func TestAccept_OnlyCounterparty(t *testing.T) {
	e := newEnv()
	acceptEnv(e)
	_, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 41, LenderID: 5})
	if !errors.Is(err, swapDomain.ErrNotCounterparty) {
		t.Fatalf("err = %v, want ErrNotCounterparty", err)
	}
}

func TestAccept_OpenSwapNeedsSelectedLoan(t *testing.T) {
	e := newEnv()
	p, _ := acceptEnv(e)
	p.CounterpartyLoanID = nil
	p.IsOpenSwap = true

	_, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 41, LenderID: 6})
	if !errors.Is(err, swapDomain.ErrLoanRequired) {
		t.Fatalf("err = %v, want ErrLoanRequired", err)
	}
}

func TestAccept_OpenSwapUsesSelectedLoan(t *testing.T) {
	e := newEnv()
	p, store := acceptEnv(e)
	p.CounterpartyLoanID = nil
	p.IsOpenSwap = true
	selected := uint64(2)

	dto, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 41, LenderID: 6, SelectedLoanID: &selected})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if dto.CounterpartyLoanID != 2 {
		t.Errorf("settled loan = %d, want the selected 2", dto.CounterpartyLoanID)
	}
	if p.CounterpartyLoanID == nil || *p.CounterpartyLoanID != 2 {
		t.Errorf("proposal not pinned to the selected loan: %+v", p)
	}
	if store[2].CurrentLenderID != 5 {
		t.Errorf("selected leg did not move: %d", store[2].CurrentLenderID)
	}
}

func TestAccept_TerminalProposal(t *testing.T) {
	e := newEnv()
	p, _ := acceptEnv(e)
	p.Status = swapDomain.StatusDeclined

	_, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 41, LenderID: 6})
	if !errors.Is(err, swapDomain.ErrAlreadyResolved) {
		t.Fatalf("err = %v, want ErrAlreadyResolved", err)
	}
}

func TestAccept_OwnershipMovedSinceProposal(t *testing.T) {
	e := newEnv()
	_, store := acceptEnv(e)
	store[2].CurrentLenderID = 9 // sold in the meantime

	_, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 41, LenderID: 6})
	if !errors.Is(err, swapDomain.ErrLoanNotEligible) {
		t.Fatalf("err = %v, want ErrLoanNotEligible", err)
	}
	if store[1].CurrentLenderID != 5 {
		t.Errorf("failed accept moved a leg: %d", store[1].CurrentLenderID)
	}
}

func TestAccept_UnknownProposal(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Accept(context.Background(), AcceptInput{ProposalID: 404, LenderID: 6})
	if !errors.Is(err, swapDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecline_EitherParticipant(t *testing.T) {
	for _, lenderID := range []uint64{5, 6} {
		e := newEnv()
		p, _ := acceptEnv(e)

		dto, err := e.uc.Decline(context.Background(), DeclineInput{ProposalID: 41, LenderID: lenderID})
		if err != nil {
			t.Fatalf("Decline as %d: %v", lenderID, err)
		}
		if dto.Status != "declined" || p.Status != swapDomain.StatusDeclined || p.RespondedAt == nil {
			t.Errorf("decline as %d not recorded: %+v", lenderID, p)
		}
	}
}

func TestDecline_StrangerRejected(t *testing.T) {
	e := newEnv()
	acceptEnv(e)
	_, err := e.uc.Decline(context.Background(), DeclineInput{ProposalID: 41, LenderID: 9})
	if !errors.Is(err, swapDomain.ErrNotParticipant) {
		t.Fatalf("err = %v, want ErrNotParticipant", err)
	}
}

func TestDecline_TerminalIsConflict(t *testing.T) {
	e := newEnv()
	p, _ := acceptEnv(e)
	p.Status = swapDomain.StatusAccepted

	_, err := e.uc.Decline(context.Background(), DeclineInput{ProposalID: 41, LenderID: 5})
	if !errors.Is(err, swapDomain.ErrAlreadyResolved) {
		t.Fatalf("err = %v, want ErrAlreadyResolved", err)
	}
}

func TestMyProposals_AliasesTheOtherSide(t *testing.T) {
	e := newEnv()
	two := uint64(2)
	e.swaps.ListByLenderFn = func(ctx context.Context, lenderID uint64, status swapDomain.Status) ([]swapDomain.Proposal, error) {
		return []swapDomain.Proposal{{
			ID: 41, ProposerLenderID: 5, ProposerLoanID: 1,
			CounterpartyLenderID: 6, CounterpartyLoanID: &two,
			Status: swapDomain.StatusPending,
		}}, nil
	}
	e.lenders.GetByIDFn = func(ctx context.Context, id uint64) (*lenderDomain.Lender, error) {
		names := map[uint64]string{5: "Alpha Bank", 6: "Beta Credit"}
		return &lenderDomain.Lender{ID: id, Name: names[id]}, nil
	}
	e.loanStore(
		&loanDomain.Loan{ID: 1, CompanyID: 10, CurrentLenderID: 5, SuggestedPrice: 100_000},
		&loanDomain.Loan{ID: 2, CompanyID: 11, CurrentLenderID: 6, SuggestedPrice: 95_000},
	)
	e.companyStore(
		&companyDomain.Company{ID: 10, SMEID: "SME-000010", Sector: "Defence"},
		&companyDomain.Company{ID: 11, SMEID: "SME-000011", Sector: "Maritime"},
	)

	out, err := e.uc.MyProposals(context.Background(), 5, "")
	if err != nil {
		t.Fatalf("MyProposals: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d proposals, want 1", len(out))
	}
	got := out[0]
	if !got.IsProposer {
		t.Error("lender 5 proposed this swap")
	}
	if got.ProposerLender != "Alpha Bank" {
		t.Errorf("own name must stay plain, got %q", got.ProposerLender)
	}
	if got.CounterpartyLender != "Lender A" {
		t.Errorf("counterparty must be aliased, got %q", got.CounterpartyLender)
	}
	if got.ProposerValue != 100_000 || got.CounterpartyValue == nil || *got.CounterpartyValue != 95_000 {
		t.Errorf("loan values not resolved: %+v", got)
	}
}
