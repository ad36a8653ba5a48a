package analysis

import (
	"context"
	"time"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/pricing"
	"sme-exchange-backend/internal/domain/scoring"
	"sme-exchange-backend/internal/domain/uow"

	"go.uber.org/zap"
)

// Usecase runs the scoring pipeline over the whole book:
// risk -> inclusion -> fit/mismatch -> pricing.
type Usecase struct {
	policy scoring.Policy
	uow    uow.UnitOfWork
	log    *zap.Logger
}

func NewUsecase(policy scoring.Policy, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{policy: policy, uow: tx, log: log}
}

type RecomputeResult struct {
	Companies  int           `json:"companies_scored"`
	Loans      int           `json:"loans_scored"`
	Mismatched int           `json:"mismatched_loans"`
	Elapsed    time.Duration `json:"-"`
	ElapsedMS  int64         `json:"elapsed_ms"`
}

// Recompute rescoring is all-or-nothing: one transaction covers every company
// and loan, so readers never observe a half-scored book.
func (u *Usecase) Recompute(ctx context.Context) (*RecomputeResult, error) {
	start := time.Now()
	out := &RecomputeResult{}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		lenders, err := r.Lenders.ListAll(ctx)
		if err != nil {
			return err
		}
		companies, err := r.Companies.ListAll(ctx)
		if err != nil {
			return err
		}
		quartiles := scoring.ComputeTurnoverQuartiles(companies)

		scored := make(map[uint64]*companyDomain.Company, len(companies))
		for i := range companies {
			c := &companies[i]
			applyRisk(c, scoring.ScoreRisk(c))
			applyInclusion(c, scoring.ScoreInclusion(c, c.RiskScore, quartiles))
			if err := r.Companies.Save(ctx, c); err != nil {
				return err
			}
			scored[c.ID] = c
		}
		out.Companies = len(companies)

		loans, err := r.Loans.ListAll(ctx)
		if err != nil {
			return err
		}
		for i := range loans {
			l := &loans[i]
			c, ok := scored[l.CompanyID]
			if !ok {
				u.log.Warn("loan references unknown company",
					zap.Uint64("loan_id", l.ID), zap.Uint64("company_id", l.CompanyID))
				continue
			}
			applyMatch(l, c, lenders, u.policy)
			applyPricing(l, c)
			if l.IsMismatch {
				out.Mismatched++
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}
		out.Loans = len(loans)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Elapsed = time.Since(start)
	out.ElapsedMS = out.Elapsed.Milliseconds()
	u.log.Info("book rescored",
		zap.Int("companies", out.Companies),
		zap.Int("loans", out.Loans),
		zap.Int("mismatched", out.Mismatched),
		zap.Duration("elapsed", out.Elapsed))
	return out, nil
}

// RescoreLoan refreshes one loan's match and pricing fields after an ownership
// change. Caller must already hold the loan row lock; runs on the transaction's
// repositories.
func RescoreLoan(ctx context.Context, r uow.Repos, l *loanDomain.Loan, policy scoring.Policy) error {
	c, err := r.Companies.GetByID(ctx, l.CompanyID)
	if err != nil {
		return err
	}
	lenders, err := r.Lenders.ListAll(ctx)
	if err != nil {
		return err
	}
	applyMatch(l, c, lenders, policy)
	applyPricing(l, c)
	return r.Loans.Save(ctx, l)
}

func applyRisk(c *companyDomain.Company, r scoring.RiskResult) {
	c.RiskScore = r.Score
	c.RiskCategory = r.Category
	c.LiquidityScore = r.Liquidity
	c.ProfitabilityScore = r.Profitability
	c.LeverageScore = r.Leverage
	c.CashScore = r.Cash
	c.EfficiencyScore = r.Efficiency
	c.StabilityScore = r.Stability
}

func applyInclusion(c *companyDomain.Company, r scoring.InclusionResult) {
	c.InclusionScore = r.Score
	c.InclusionCategory = r.Category
	c.RegionalInclusionScore = r.Regional
	c.SectorInclusionScore = r.Sector
	c.SizeInclusionScore = r.Size
	c.OverlookedScore = r.Overlooked
	c.InclusionFlags = r.Flags
}

func applyMatch(l *loanDomain.Loan, c *companyDomain.Company, lenders []lenderDomain.Lender, policy scoring.Policy) {
	var current *lenderDomain.Lender
	for i := range lenders {
		if lenders[i].ID == l.CurrentLenderID {
			current = &lenders[i]
			break
		}
	}
	l.CurrentLenderFit = scoring.Fit(c, current).Score

	best, bestFit, _ := scoring.BestMatch(c, lenders, l.CurrentLenderID)
	if best != nil && bestFit.Score > l.CurrentLenderFit {
		id := best.ID
		l.BestMatchLenderID = &id
		l.BestMatchFit = bestFit.Score
		l.FitGap = bestFit.Score - l.CurrentLenderFit
	} else {
		l.BestMatchLenderID = nil
		l.BestMatchFit = l.CurrentLenderFit
		l.FitGap = 0
	}
	l.ReallocationTier = loanDomain.ReallocationStatus(policy.Tier(l.FitGap))
	l.IsMismatch = policy.Mismatch(l.FitGap)
}

func applyPricing(l *loanDomain.Loan, c *companyDomain.Company) {
	v := pricing.Price(l, c.RiskScore, l.CurrentLenderFit)
	l.DefaultProbability = v.DefaultProbability
	l.RemainingPayments = v.RemainingPayments
	l.ExpectedLoss = v.ExpectedLoss
	l.RiskAdjustedValue = v.RiskAdjustedValue
	l.MisfitDiscount = v.MisfitDiscount
	l.SuggestedPrice = v.SuggestedPrice
	l.DiscountPercent = v.DiscountPercent
	l.GrossROI = v.GrossROI
	l.RiskAdjustedROI = v.RiskAdjustedROI
	l.AnnualizedROI = v.AnnualizedROI
}
