package swaps

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/scoring"
	swapDomain "sme-exchange-backend/internal/domain/swap"
	"sme-exchange-backend/internal/domain/uow"
	"sme-exchange-backend/internal/usecase/analysis"
	"sme-exchange-backend/pkg/banding"

	"gorm.io/gorm"
)

type Usecase struct {
	loans     loanDomain.Repository
	companies companyDomain.Repository
	lenders   lenderDomain.Repository
	swaps     swapDomain.Repository
	policy    scoring.Policy
	uow       uow.UnitOfWork
}

func NewUsecase(loans loanDomain.Repository, companies companyDomain.Repository, lenders lenderDomain.Repository, swaps swapDomain.Repository, policy scoring.Policy, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, companies: companies, lenders: lenders, swaps: swaps, policy: policy, uow: tx}
}

/// AutoMatches finds double-benefit pairings for one lender: its mismatched
// loans against complementary loans held by each best-match counterparty, with
// values inside the tolerance band. Read-only; best swap score first.
func (u *Usecase) AutoMatches(ctx context.Context, lenderID uint64, inclusionOnly bool) ([]AutoMatchDTO, error) {
	mine, err := u.loans.ListMismatchedByLender(ctx, lenderID, u.policy.MinSwapImprovement)
	if err != nil {
		return nil, err
	}

	aliaser := banding.NewAliaser()
	var matches []AutoMatchDTO
	for i := range mine {
		myLoan := &mine[i]
		if myLoan.BestMatchLenderID == nil {
			continue
		}
		counterpartyID := *myLoan.BestMatchLenderID

		theirs, err := u.loans.ListComplementary(ctx, counterpartyID, lenderID, u.policy.MinSwapImprovement)
		if err != nil {
			return nil, err
		}
		if len(theirs) == 0 {
			continue
		}

		myCompany, err := u.companies.GetByID(ctx, myLoan.CompanyID)
		if err != nil {
			return nil, err
		}
		counterparty, err := u.lenders.GetByID(ctx, counterpartyID)
		if err != nil {
			return nil, err
		}

		for j := range theirs {
			theirLoan := &theirs[j]
			myValue := myLoan.Value()
			theirValue := theirLoan.Value()
			valueDiff := math.Abs(myValue - theirValue)
			if valueDiff > u.policy.ValueTolerance*math.Max(myValue, theirValue) {
				continue
			}

			theirCompany, err := u.companies.GetByID(ctx, theirLoan.CompanyID)
			if err != nil {
				return nil, err
			}

			bonus, isInclusion := u.inclusionBonus(myCompany, theirCompany)
			if inclusionOnly && !isInclusion {
				continue
			}

			total := myLoan.FitGap + theirLoan.FitGap
			matches = append(matches, AutoMatchDTO{
				GiveLoanID:         myLoan.ID,
				GiveCompanyID:      myCompany.SMEID,
				GiveSector:         myCompany.Sector,
				GiveRegion:         myCompany.Region,
				GiveValue:          myValue,
				GiveValueBanded:    banding.Amount(myValue),
				GiveYourFit:        myLoan.CurrentLenderFit,
				GiveTheirFit:       myLoan.BestMatchFit,
				GiveFitImprovement: myLoan.FitGap,

				ReceiveLoanID:         theirLoan.ID,
				ReceiveCompanyID:      theirCompany.SMEID,
				ReceiveSector:         theirCompany.Sector,
				ReceiveRegion:         theirCompany.Region,
				ReceiveValue:          theirValue,
				ReceiveValueBanded:    banding.Amount(theirValue),
				ReceiveTheirFit:       theirLoan.CurrentLenderFit,
				ReceiveYourFit:        theirLoan.BestMatchFit,
				ReceiveFitImprovement: theirLoan.FitGap,

				CounterpartyLender:  aliaser.Alias(counterparty.Name),
				TotalFitImprovement: total,
				ValueDifference:     valueDiff,
				CashAdjustment:      myValue - theirValue,
				InclusionBonus:      bonus,
				IsInclusionSwap:     isInclusion,
				SwapScore:           total + bonus,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].SwapScore != matches[j].SwapScore {
			return matches[i].SwapScore > matches[j].SwapScore
		}
		// equal scores: the tighter cash leg wins
		return math.Abs(matches[i].CashAdjustment) < math.Abs(matches[j].CashAdjustment)
	})
	return matches, nil
}

func (u *Usecase) inclusionBonus(a, b *companyDomain.Company) (bonus float64, isInclusion bool) {
	for _, c := range []*companyDomain.Company{a, b} {
		if c == nil {
			continue
		}
		if c.InclusionScore >= u.policy.InclusionScoreCut {
			bonus += u.policy.InclusionBonusScore
			isInclusion = true
		}
		for _, f := range c.InclusionFlags {
			if f == scoring.FlagStrongButOverlooked {
				bonus += u.policy.OverlookedBonusScore
				break
			}
		}
	}
	return bonus, isInclusion
}

// Propose creates a pending proposal. A nil counterparty loan makes it an open
// swap; the counterparty picks one of its own loans at accept time.
func (u *Usecase) Propose(ctx context.Context, in ProposeInput) (*ProposalDTO, error) {
	proposerLoan, err := u.loans.GetByID(ctx, in.ProposerLoanID)
	if err != nil {
		return nil, mapLoanErr(err)
	}
	if proposerLoan.CurrentLenderID != in.ProposerLenderID {
		return nil, loanDomain.ErrNotOwned
	}

	var counterpartyLoan *loanDomain.Loan
	if in.CounterpartyLoanID != nil {
		counterpartyLoan, err = u.loans.GetByID(ctx, *in.CounterpartyLoanID)
		if err != nil {
			return nil, mapLoanErr(err)
		}
		if counterpartyLoan.CurrentLenderID != in.CounterpartyLenderID {
			return nil, swapDomain.ErrLoanNotEligible
		}
	}

	proposerCompany, err := u.companies.GetByID(ctx, proposerLoan.CompanyID)
	if err != nil {
		return nil, err
	}
	var counterpartyCompany *companyDomain.Company
	if counterpartyLoan != nil {
		counterpartyCompany, err = u.companies.GetByID(ctx, counterpartyLoan.CompanyID)
		if err != nil {
			return nil, err
		}
	}
	bonus, isInclusion := u.inclusionBonus(proposerCompany, counterpartyCompany)

	proposerImprovement := proposerLoan.FitGap
	var counterpartyImprovement, counterpartyValue float64
	if counterpartyLoan != nil {
		counterpartyImprovement = counterpartyLoan.FitGap
		counterpartyValue = counterpartyLoan.Value()
	}

	p := &swapDomain.Proposal{
		ProposerLenderID:           in.ProposerLenderID,
		ProposerLoanID:             in.ProposerLoanID,
		CounterpartyLenderID:       in.CounterpartyLenderID,
		CounterpartyLoanID:         in.CounterpartyLoanID,
		IsOpenSwap:                 in.CounterpartyLoanID == nil,
		CashAdjustment:             proposerLoan.Value() - counterpartyValue,
		ProposerFitImprovement:     proposerImprovement,
		CounterpartyFitImprovement: counterpartyImprovement,
		TotalFitImprovement:        proposerImprovement + counterpartyImprovement,
		InclusionBonus:             bonus,
		IsInclusionSwap:            isInclusion,
		Status:                     swapDomain.StatusPending,
		Reasoning:                  in.Reasoning,
	}
	if err := u.swaps.Create(ctx, p); err != nil {
		return nil, err
	}
	return &ProposalDTO{ProposalID: p.ID, Status: string(p.Status), Message: "swap proposal created"}, nil
}

// Accept settles a swap: only the counterparty may accept, open swaps must
// name a loan the counterparty owns, both loans change owner in one
// transaction and every other pending proposal touching either loan is
// declined. Either everything commits or nothing does.
func (u *Usecase) Accept(ctx context.Context, in AcceptInput) (*SettlementDTO, error) {
	p, err := u.swaps.GetByID(ctx, in.ProposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, swapDomain.ErrNotFound
		}
		return nil, err
	}
	if p.CounterpartyLenderID != in.LenderID {
		return nil, swapDomain.ErrNotCounterparty
	}

	counterpartyLoanID := p.CounterpartyLoanID
	if in.SelectedLoanID != nil {
		counterpartyLoanID = in.SelectedLoanID
	}
	if counterpartyLoanID == nil {
		return nil, swapDomain.ErrLoanRequired
	}

	var dto *SettlementDTO
	err = u.uow.WithinLoanPairTx(ctx, p.ProposerLoanID, *counterpartyLoanID, func(r uow.Repos, proposerLoan, counterpartyLoan *loanDomain.Loan) error {
		locked, err := r.Swaps.GetByIDForUpdate(ctx, in.ProposalID)
		if err != nil {
			return err
		}
		if locked.Terminal() {
			return swapDomain.ErrAlreadyResolved
		}
		// Ownership can have moved since the proposal was created.
		if proposerLoan.CurrentLenderID != locked.ProposerLenderID {
			return swapDomain.ErrLoanNotEligible
		}
		if counterpartyLoan.CurrentLenderID != in.LenderID {
			return swapDomain.ErrLoanNotEligible
		}

		now := time.Now().UTC()
		invalidated := 0
		for _, loanID := range []uint64{proposerLoan.ID, counterpartyLoan.ID} {
			others, err := r.Swaps.ListPendingByLoan(ctx, loanID)
			if err != nil {
				return err
			}
			for i := range others {
				o := &others[i]
				if o.ID == locked.ID {
					continue
				}
				o.Status = swapDomain.StatusDeclined
				o.RespondedAt = &now
				if err := r.Swaps.Save(ctx, o); err != nil {
					return err
				}
				invalidated++
			}
		}

		cash := proposerLoan.Value() - counterpartyLoan.Value()
		proposerLoan.CurrentLenderID, counterpartyLoan.CurrentLenderID =
			locked.CounterpartyLenderID, locked.ProposerLenderID
		if err := analysis.RescoreLoan(ctx, r, proposerLoan, u.policy); err != nil {
			return err
		}
		if err := analysis.RescoreLoan(ctx, r, counterpartyLoan, u.policy); err != nil {
			return err
		}

		locked.CounterpartyLoanID = &counterpartyLoan.ID
		locked.CashAdjustment = cash
		locked.Status = swapDomain.StatusAccepted
		locked.RespondedAt = &now
		if err := r.Swaps.Save(ctx, locked); err != nil {
			return err
		}

		dto = &SettlementDTO{
			ProposalID:           locked.ID,
			Status:               string(locked.Status),
			ProposerLoanID:       proposerLoan.ID,
			CounterpartyLoanID:   counterpartyLoan.ID,
			CashAdjustment:       cash,
			TotalFitImprovement:  locked.TotalFitImprovement,
			InvalidatedProposals: invalidated,
		}
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

// Decline rejects a pending proposal. Either participant may decline;
// declining a terminal proposal is a conflict, not a silent success.
func (u *Usecase) Decline(ctx context.Context, in DeclineInput) (*ProposalDTO, error) {
	var dto *ProposalDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Swaps.GetByIDForUpdate(ctx, in.ProposalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return swapDomain.ErrNotFound
			}
			return err
		}
		if p.ProposerLenderID != in.LenderID && p.CounterpartyLenderID != in.LenderID {
			return swapDomain.ErrNotParticipant
		}
		if p.Terminal() {
			return swapDomain.ErrAlreadyResolved
		}

		now := time.Now().UTC()
		p.Status = swapDomain.StatusDeclined
		p.RespondedAt = &now
		if err := r.Swaps.Save(ctx, p); err != nil {
			return err
		}
		dto = &ProposalDTO{ProposalID: p.ID, Status: string(p.Status), Message: "swap proposal declined"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MyProposals lists proposals where the lender sits on either side, newest
// first. The other party's identity is aliased.
func (u *Usecase) MyProposals(ctx context.Context, lenderID uint64, status swapDomain.Status) ([]ProposalDetailDTO, error) {
	proposals, err := u.swaps.ListByLender(ctx, lenderID, status)
	if err != nil {
		return nil, err
	}

	aliaser := banding.NewAliaser()
	out := make([]ProposalDetailDTO, 0, len(proposals))
	for i := range proposals {
		p := &proposals[i]
		isProposer := p.ProposerLenderID == lenderID

		dto := ProposalDetailDTO{
			ID:                  p.ID,
			IsProposer:          isProposer,
			Status:              string(p.Status),
			IsOpenSwap:          p.IsOpenSwap,
			ProposerLoanID:      p.ProposerLoanID,
			CounterpartyLoanID:  p.CounterpartyLoanID,
			CashAdjustment:      p.CashAdjustment,
			TotalFitImprovement: p.TotalFitImprovement,
			IsInclusionSwap:     p.IsInclusionSwap,
			Reasoning:           p.Reasoning,
			CreatedAt:           p.CreatedAt,
		}

		proposerLender, err := u.lenders.GetByID(ctx, p.ProposerLenderID)
		if err != nil {
			return nil, err
		}
		counterpartyLender, err := u.lenders.GetByID(ctx, p.CounterpartyLenderID)
		if err != nil {
			return nil, err
		}
		if isProposer {
			dto.ProposerLender = proposerLender.Name
			dto.CounterpartyLender = aliaser.Alias(counterpartyLender.Name)
		} else {
			dto.ProposerLender = aliaser.Alias(proposerLender.Name)
			dto.CounterpartyLender = counterpartyLender.Name
		}

		if l, err := u.loans.GetByID(ctx, p.ProposerLoanID); err == nil {
			dto.ProposerValue = l.Value()
			if c, err := u.companies.GetByID(ctx, l.CompanyID); err == nil {
				dto.ProposerCompanyID = c.SMEID
				dto.ProposerSector = c.Sector
			}
		}
		if p.CounterpartyLoanID != nil {
			if l, err := u.loans.GetByID(ctx, *p.CounterpartyLoanID); err == nil {
				v := l.Value()
				dto.CounterpartyValue = &v
				if c, err := u.companies.GetByID(ctx, l.CompanyID); err == nil {
					dto.CounterpartyCompanyID = c.SMEID
					dto.CounterpartySector = c.Sector
				}
			}
		}

		out = append(out, dto)
	}
	return out, nil
}

func mapLoanErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
