// Package explain produces deterministic narrative explanations from the
// stored scoring fields. Same inputs, same words; nothing is generated
// remotely.
package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type Usecase struct {
	loans     loanDomain.Repository
	companies companyDomain.Repository
	lenders   lenderDomain.Repository
}

func NewUsecase(loans loanDomain.Repository, companies companyDomain.Repository, lenders lenderDomain.Repository) *Usecase {
	return &Usecase{loans: loans, companies: companies, lenders: lenders}
}

type ExplainLoanInput struct {
	LoanID uint64 `json:"loan_id" validate:"required"`
}

type ExplanationDTO struct {
	LoanID      uint64 `json:"loan_id"`
	Explanation string `json:"explanation"`
	GeneratedBy string `json:"generated_by"`
}

// ExplainLoan narrates why moving the loan to its best-match lender makes
// sense, built from the fit gap, inclusion and risk fields.
func (u *Usecase) ExplainLoan(ctx context.Context, in ExplainLoanInput) (*ExplanationDTO, error) {
	l, err := u.loans.GetByID(ctx, in.LoanID)
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

	var best *lenderDomain.Lender
	if l.BestMatchLenderID != nil {
		best, err = u.lenders.GetByID(ctx, *l.BestMatchLenderID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var reasons []string
	if l.FitGap > 20 {
		reasons = append(reasons, fmt.Sprintf(
			"This loan shows a significant fit improvement of %.0f%% with the recommended lender.", l.FitGap))
	}
	if c.InclusionScore >= 60 {
		reasons = append(reasons, fmt.Sprintf(
			"The company has a high inclusion priority score of %.0f, indicating it serves an underserved market.", c.InclusionScore))
	}
	if c.RiskScore >= 60 {
		reasons = append(reasons, fmt.Sprintf(
			"With a risk score of %.0f, this company demonstrates solid financial health.", c.RiskScore))
	}
	if best != nil && best.InclusionMandate {
		reasons = append(reasons,
			"The recommended lender has an inclusion mandate, making this a mission-aligned opportunity.")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "This reallocation would optimize portfolio fit for both parties.")
	}

	return &ExplanationDTO{
		LoanID:      l.ID,
		Explanation: strings.Join(reasons, " "),
		GeneratedBy: "template",
	}, nil
}

type SwapStoryInput struct {
	Loan1ID uint64 `json:"loan1_id" validate:"required"`
	Loan2ID uint64 `json:"loan2_id" validate:"required"`
}

type SwapStoryDTO struct {
	Story       string `json:"story"`
	GeneratedBy string `json:"generated_by"`
}

// SwapStory narrates the inclusion impact of swapping two loans.
func (u *Usecase) SwapStory(ctx context.Context, in SwapStoryInput) (*SwapStoryDTO, error) {
	c1, err := u.companyForLoan(ctx, in.Loan1ID)
	if err != nil {
		return nil, err
	}
	c2, err := u.companyForLoan(ctx, in.Loan2ID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		"This swap connects %s and %s businesses with lenders better suited to their needs, advancing financial inclusion in %s and %s.",
		c1.Sector, c2.Sector, c1.Region, c2.Region)
	if flagged := flaggedCompanies(c1, c2); len(flagged) > 0 {
		fmt.Fprintf(&sb, " %s carries the flags: %s.",
			strings.Join(flagged, " and "), strings.Join(allFlags(c1, c2), ", "))
	}

	return &SwapStoryDTO{Story: sb.String(), GeneratedBy: "template"}, nil
}

func (u *Usecase) companyForLoan(ctx context.Context, loanID uint64) (*companyDomain.Company, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return u.companies.GetByID(ctx, l.CompanyID)
}

func flaggedCompanies(cs ...*companyDomain.Company) []string {
	var out []string
	for _, c := range cs {
		if len(c.InclusionFlags) > 0 {
			out = append(out, c.SMEID)
		}
	}
	return out
}

func allFlags(cs ...*companyDomain.Company) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range cs {
		for _, f := range c.InclusionFlags {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
