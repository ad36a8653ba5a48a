package analysis

import (
	"context"
	"fmt"
	"math/rand"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/uow"

	"go.uber.org/zap"
)

// Four lender archetypes with distinct risk appetites, sector focuses and
// inclusion mandates. A nil sector/region list means agnostic/national.
func lenderArchetypes(initialCredits int) []lenderDomain.Lender {
	fifty := 50_000_000.0
	thirty := 30_000_000.0
	hundred := 100_000_000.0
	return []lenderDomain.Lender{
		{
			Name:             "Alpha Bank",
			Description:      "Conservative traditional bank focused on established businesses in financial and professional services sectors.",
			RiskTolerance:    "low",
			RiskScoreMin:     70,
			PreferredSectors: lenderDomain.StringList{"Financial", "Professional_Business"},
			PreferredRegions: lenderDomain.StringList{"London", "South East"},
			MinTurnover:      20_000_000,
			CreditBalance:    initialCredits,
		},
		{
			Name:             "Growth Capital Partners",
			Description:      "Growth-focused investor comfortable with volatility, specializing in tech, clean energy, and life sciences.",
			RiskTolerance:    "high",
			RiskScoreMin:     40,
			PreferredSectors: lenderDomain.StringList{"Digital&Technologies", "Clean_Energy", "Life_Science"},
			MinTurnover:      5_000_000,
			MaxTurnover:      &fifty,
			CreditBalance:    initialCredits,
		},
		{
			Name:             "Regional Development Fund",
			Description:      "Development fund with explicit inclusion mandate for underserved regions. Prioritizes regional economic impact.",
			RiskTolerance:    "medium",
			RiskScoreMin:     55,
			PreferredRegions: lenderDomain.StringList{"North West", "Scotland", "Wales", "North East", "Yorkshire And The Humber", "Northern Ireland"},
			MinTurnover:      5_000_000,
			MaxTurnover:      &thirty,
			InclusionMandate: true,
			CreditBalance:    initialCredits,
		},
		{
			Name:             "Sector Specialist Credit",
			Description:      "Specialist lender with deep sector knowledge in advanced manufacturing and defence industries.",
			RiskTolerance:    "medium",
			RiskScoreMin:     50,
			PreferredSectors: lenderDomain.StringList{"Advanced_Manufacturing", "Defence"},
			MinTurnover:      10_000_000,
			MaxTurnover:      &hundred,
			CreditBalance:    initialCredits,
		},
	}
}

var seedSectors = []string{
	"Financial", "Professional_Business", "Digital&Technologies", "Clean_Energy",
	"Life_Science", "Advanced_Manufacturing", "Defence", "Creative_Industries",
}

var seedRegions = []string{
	"London", "South East", "North West", "Scotland", "Wales", "North East",
	"Yorkshire And The Humber", "Northern Ireland", "East Midlands", "West Midlands",
	"South West", "East Of England",
}

// Seed populates an empty database with the lender archetypes and a synthetic
// loan book, then runs the scoring pipeline once. Idempotent: a non-empty
// lenders table skips everything.
func (u *Usecase) Seed(ctx context.Context, companies, initialCredits int) error {
	var seeded bool
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Lenders.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		archetypes := lenderArchetypes(initialCredits)
		for i := range archetypes {
			if err := r.Lenders.Create(ctx, &archetypes[i]); err != nil {
				return err
			}
		}

		// Deterministic book: a fixed seed keeps local runs comparable.
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < companies; i++ {
			c := syntheticCompany(rng, i)
			if err := r.Companies.Create(ctx, c); err != nil {
				return err
			}
			l := syntheticLoan(rng, c, archetypes)
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return err
	}
	if !seeded {
		return nil
	}

	u.log.Info("seeded synthetic book", zap.Int("companies", companies))
	_, err = u.Recompute(ctx)
	return err
}

func syntheticCompany(rng *rand.Rand, i int) *companyDomain.Company {
	turnover := (1 + rng.Float64()*59) * 1_000_000 // £1m-£60m
	operatingMargin := -0.05 + rng.Float64()*0.30
	totalAssets := turnover * (0.5 + rng.Float64()*1.5)
	liabilities := totalAssets * (0.2 + rng.Float64()*0.6)
	currentAssets := totalAssets * (0.3 + rng.Float64()*0.4)
	currentLiabilities := liabilities * (0.3 + rng.Float64()*0.5)

	c := &companyDomain.Company{
		SMEID:              fmt.Sprintf("SME_%04d", i),
		Sector:             seedSectors[rng.Intn(len(seedSectors))],
		Region:             seedRegions[rng.Intn(len(seedRegions))],
		Turnover:           turnover,
		OperatingProfit:    turnover * operatingMargin,
		GrossProfit:        turnover * (operatingMargin + 0.15),
		EBITDA:             turnover * (operatingMargin + 0.05),
		ProfitAfterTax:     turnover * operatingMargin * 0.75,
		TotalAssets:        totalAssets,
		TotalLiabilities:   liabilities,
		CurrentAssets:      currentAssets,
		CurrentLiabilities: currentLiabilities,
		Cash:               currentAssets * rng.Float64() * 0.5,
		Stock:              currentAssets * rng.Float64() * 0.3,
		Receivables:        currentAssets * rng.Float64() * 0.4,
		Employees:          10 + rng.Intn(490),
	}
	c.NetAssets = c.TotalAssets - c.TotalLiabilities
	c.WorkingCapital = c.CurrentAssets - c.CurrentLiabilities
	return c
}

func syntheticLoan(rng *rand.Rand, c *companyDomain.Company, lenders []lenderDomain.Lender) *loanDomain.Loan {
	termYears := 5 + rng.Intn(3)
	yearsRemaining := float64(1 + rng.Intn(termYears-1))
	amount := c.Turnover * (0.05 + rng.Float64()*0.10)
	rate := 0.045 + rng.Float64()*0.030

	return &loanDomain.Loan{
		CompanyID:          c.ID,
		CurrentLenderID:    lenders[rng.Intn(len(lenders))].ID,
		LoanAmount:         amount,
		OutstandingBalance: amount * yearsRemaining / float64(termYears),
		LoanTermYears:      termYears,
		YearsRemaining:     yearsRemaining,
		InterestRate:       rate,
		MonthlyPayment:     amount * (1 + rate*float64(termYears)) / (float64(termYears) * 12),
	}
}
