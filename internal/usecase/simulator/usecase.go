package simulator

import (
	"context"
	"errors"
	"sort"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/scoring"
	"sme-exchange-backend/pkg/banding"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrIncomingRequired   = errors.New("incoming loan required for swap")
	ErrInvalidTransaction = errors.New("transaction_type must be sale, swap or swap_cash")
)

const (
	TransactionSale     = "sale"
	TransactionSwap     = "swap"
	TransactionSwapCash = "swap_cash"
)

// Usecase computes settlement previews. Everything here is read-only: the same
// inputs always produce the same output and no ownership or credits change.
type Usecase struct {
	loans     loanDomain.Repository
	companies companyDomain.Repository
	lenders   lenderDomain.Repository
	policy    scoring.Policy
}

func NewUsecase(loans loanDomain.Repository, companies companyDomain.Repository, lenders lenderDomain.Repository, policy scoring.Policy) *Usecase {
	return &Usecase{loans: loans, companies: companies, lenders: lenders, policy: policy}
}

type CandidateDTO struct {
	LoanID                   uint64  `json:"loan_id"`
	CompanyID                string  `json:"company_id"`
	Sector                   string  `json:"sector"`
	Region                   string  `json:"region"`
	CurrentLender            string  `json:"current_lender"`
	BestMatchLender          string  `json:"best_match_lender"`
	OutstandingBalance       float64 `json:"outstanding_balance"`
	OutstandingBalanceBanded string  `json:"outstanding_balance_banded"`
	FitGap                   float64 `json:"fit_gap"`
	ReallocationStatus       string  `json:"reallocation_status"`
	RiskScore                float64 `json:"risk_score"`
	InclusionScore           float64 `json:"inclusion_score"`
}

// Candidates lists mismatched loans worth simulating, widest gap first. A zero
// lenderID returns the whole book.
func (u *Usecase) Candidates(ctx context.Context, lenderID uint64) ([]CandidateDTO, error) {
	var (
		loans []loanDomain.Loan
		err   error
	)
	if lenderID != 0 {
		loans, err = u.loans.ListByLender(ctx, lenderID, true)
	} else {
		loans, err = u.loans.ListMismatched(ctx)
	}
	if err != nil {
		return nil, err
	}

	aliaser := banding.NewAliaser()
	out := make([]CandidateDTO, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		c, err := u.companies.GetByID(ctx, l.CompanyID)
		if err != nil {
			return nil, err
		}
		current, err := u.lenders.GetByID(ctx, l.CurrentLenderID)
		if err != nil {
			return nil, err
		}

		dto := CandidateDTO{
			LoanID:                   l.ID,
			CompanyID:                c.SMEID,
			Sector:                   c.Sector,
			Region:                   c.Region,
			CurrentLender:            current.Name,
			BestMatchLender:          "Unknown",
			OutstandingBalance:       l.OutstandingBalance,
			OutstandingBalanceBanded: banding.Amount(l.OutstandingBalance),
			FitGap:                   l.FitGap,
			ReallocationStatus:       string(l.ReallocationTier),
			RiskScore:                c.RiskScore,
			InclusionScore:           c.InclusionScore,
		}
		if l.BestMatchLenderID != nil {
			if best, err := u.lenders.GetByID(ctx, *l.BestMatchLenderID); err == nil {
				dto.BestMatchLender = aliaser.Alias(best.Name)
			}
		}
		out = append(out, dto)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FitGap > out[j].FitGap })
	return out, nil
}

type LoanDetailsDTO struct {
	LoanID             uint64  `json:"loan_id"`
	LoanAmount         float64 `json:"loan_amount"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	LoanTermYears      int     `json:"loan_term_years"`
	YearsRemaining     float64 `json:"years_remaining"`
	InterestRate       float64 `json:"interest_rate"`
	MonthlyPayment     float64 `json:"monthly_payment"`

	CompanyID         string  `json:"company_id"`
	Sector            string  `json:"sector"`
	Region            string  `json:"region"`
	Turnover          float64 `json:"turnover"`
	RiskScore         float64 `json:"risk_score"`
	RiskCategory      string  `json:"risk_category"`
	InclusionScore    float64 `json:"inclusion_score"`
	InclusionCategory string  `json:"inclusion_category"`

	CurrentLenderID    uint64   `json:"current_lender_id"`
	CurrentLenderName  string   `json:"current_lender_name"`
	CurrentLenderFit   float64  `json:"current_lender_fit"`
	CurrentFitReasons  []string `json:"current_fit_reasons"`
	BestMatchLenderID  *uint64  `json:"best_match_lender_id"`
	BestMatchLender    string   `json:"best_match_lender_name,omitempty"`
	BestMatchFit       float64  `json:"best_match_fit"`
	BestMatchReasons   []string `json:"best_match_reasons"`
	FitGap             float64  `json:"fit_gap"`
	ReallocationStatus string   `json:"reallocation_status"`

	DefaultProbability float64 `json:"default_probability"`
	RemainingPayments  float64 `json:"remaining_payments"`
	ExpectedLoss       float64 `json:"expected_loss"`
	RiskAdjustedValue  float64 `json:"risk_adjusted_value"`
	MisfitDiscount     float64 `json:"misfit_discount"`
	SuggestedPrice     float64 `json:"suggested_price"`
	DiscountPercent    float64 `json:"discount_percent"`
	GrossROI           float64 `json:"gross_roi"`
	RiskAdjustedROI    float64 `json:"risk_adjusted_roi"`
	AnnualizedROI      float64 `json:"annualized_roi"`
}

// Details returns the full valuation picture for one loan, with fit reasons
// recomputed on read so they never drift from the stored scores.
func (u *Usecase) Details(ctx context.Context, loanID uint64) (*LoanDetailsDTO, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	c, err := u.companies.GetByID(ctx, l.CompanyID)
	if err != nil {
		return nil, err
	}
	current, err := u.lenders.GetByID(ctx, l.CurrentLenderID)
	if err != nil {
		return nil, err
	}

	currentFit := scoring.Fit(c, current)
	dto := &LoanDetailsDTO{
		LoanID:             l.ID,
		LoanAmount:         l.LoanAmount,
		OutstandingBalance: l.OutstandingBalance,
		LoanTermYears:      l.LoanTermYears,
		YearsRemaining:     l.YearsRemaining,
		InterestRate:       l.InterestRate,
		MonthlyPayment:     l.MonthlyPayment,

		CompanyID:         c.SMEID,
		Sector:            c.Sector,
		Region:            c.Region,
		Turnover:          c.Turnover,
		RiskScore:         c.RiskScore,
		RiskCategory:      c.RiskCategory,
		InclusionScore:    c.InclusionScore,
		InclusionCategory: c.InclusionCategory,

		CurrentLenderID:    current.ID,
		CurrentLenderName:  current.Name,
		CurrentLenderFit:   l.CurrentLenderFit,
		CurrentFitReasons:  currentFit.Positive,
		BestMatchLenderID:  l.BestMatchLenderID,
		BestMatchFit:       l.BestMatchFit,
		FitGap:             l.FitGap,
		ReallocationStatus: string(l.ReallocationTier),

		DefaultProbability: l.DefaultProbability,
		RemainingPayments:  l.RemainingPayments,
		ExpectedLoss:       l.ExpectedLoss,
		RiskAdjustedValue:  l.RiskAdjustedValue,
		MisfitDiscount:     l.MisfitDiscount,
		SuggestedPrice:     l.SuggestedPrice,
		DiscountPercent:    l.DiscountPercent,
		GrossROI:           l.GrossROI,
		RiskAdjustedROI:    l.RiskAdjustedROI,
		AnnualizedROI:      l.AnnualizedROI,
	}
	if len(currentFit.Negative) > 0 {
		dto.CurrentFitReasons = append(dto.CurrentFitReasons, currentFit.Negative...)
	}

	if l.BestMatchLenderID != nil {
		best, err := u.lenders.GetByID(ctx, *l.BestMatchLenderID)
		if err == nil {
			bestFit := scoring.Fit(c, best)
			dto.BestMatchLender = banding.NewAliaser().Alias(best.Name)
			dto.BestMatchReasons = append(bestFit.Positive, bestFit.Negative...)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return dto, nil
}

type CalculateInput struct {
	TransactionType string  `json:"transaction_type" validate:"required,oneof=sale swap swap_cash"`
	OutgoingLoanID  uint64  `json:"outgoing_loan_id" validate:"required"`
	IncomingLoanID  *uint64 `json:"incoming_loan_id"`
}

type SimulationDTO struct {
	TransactionType   string `json:"transaction_type"`
	OutgoingLoanID    uint64 `json:"outgoing_loan_id"`
	OutgoingCompanyID string `json:"outgoing_company_id"`

	OutgoingValue     float64 `json:"outgoing_value"`
	OutgoingRiskScore float64 `json:"outgoing_risk_score"`
	OutgoingFit       float64 `json:"outgoing_fit"`

	IncomingLoanID    *uint64  `json:"incoming_loan_id"`
	IncomingCompanyID string   `json:"incoming_company_id,omitempty"`
	IncomingValue     *float64 `json:"incoming_value"`
	IncomingRiskScore *float64 `json:"incoming_risk_score"`
	IncomingFit       *float64 `json:"incoming_fit"`

	ValuationDelta      float64 `json:"valuation_delta"`
	NetSettlement       float64 `json:"net_settlement"`
	TotalFitImprovement float64 `json:"total_fit_improvement"`
	IsZeroCash          bool    `json:"is_zero_cash"`
}

// Calculate prices one hypothetical transaction. Positive net settlement means
// the outgoing side receives cash. A pure swap settles at zero when the
// valuation delta sits inside the zero-cash tolerance of the outgoing value;
// swap_cash always surfaces the cash leg.
func (u *Usecase) Calculate(ctx context.Context, in CalculateInput) (*SimulationDTO, error) {
	switch in.TransactionType {
	case TransactionSale, TransactionSwap, TransactionSwapCash:
	default:
		return nil, ErrInvalidTransaction
	}

	outgoing, err := u.loans.GetByID(ctx, in.OutgoingLoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	outgoingCompany, err := u.companies.GetByID(ctx, outgoing.CompanyID)
	if err != nil {
		return nil, err
	}

	outgoingValue := decimal.NewFromFloat(outgoing.Value())
	dto := &SimulationDTO{
		TransactionType:     in.TransactionType,
		OutgoingLoanID:      outgoing.ID,
		OutgoingCompanyID:   outgoingCompany.SMEID,
		OutgoingValue:       outgoingValue.Round(2).InexactFloat64(),
		OutgoingRiskScore:   outgoingCompany.RiskScore,
		OutgoingFit:         outgoing.CurrentLenderFit,
		TotalFitImprovement: outgoing.FitGap,
		IsZeroCash:          true,
	}

	if in.TransactionType == TransactionSale {
		dto.NetSettlement = dto.OutgoingValue
		dto.IsZeroCash = false
		return dto, nil
	}

	if in.IncomingLoanID == nil {
		return nil, ErrIncomingRequired
	}
	incoming, err := u.loans.GetByID(ctx, *in.IncomingLoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	incomingCompany, err := u.companies.GetByID(ctx, incoming.CompanyID)
	if err != nil {
		return nil, err
	}

	incomingValue := decimal.NewFromFloat(incoming.Value())
	iv := incomingValue.Round(2).InexactFloat64()
	dto.IncomingLoanID = &incoming.ID
	dto.IncomingCompanyID = incomingCompany.SMEID
	dto.IncomingValue = &iv
	dto.IncomingRiskScore = &incomingCompany.RiskScore
	dto.IncomingFit = &incoming.BestMatchFit

	delta := outgoingValue.Sub(incomingValue)
	dto.ValuationDelta = delta.Round(2).InexactFloat64()
	dto.TotalFitImprovement = outgoing.FitGap + incoming.FitGap

	tolerance := outgoingValue.Mul(decimal.NewFromFloat(u.policy.ZeroCashTolerance))
	switch {
	case in.TransactionType == TransactionSwap && delta.Abs().LessThan(tolerance):
		dto.NetSettlement = 0
		dto.IsZeroCash = true
	default:
		dto.NetSettlement = dto.ValuationDelta
		dto.IsZeroCash = delta.IsZero()
	}
	return dto, nil
}
