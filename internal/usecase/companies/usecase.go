package companies

import (
	"context"
	"errors"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/pkg/banding"

	"gorm.io/gorm"
)

type Usecase struct {
	companies companyDomain.Repository
	loans     loanDomain.Repository
	lenders   lenderDomain.Repository
}

func NewUsecase(companies companyDomain.Repository, loans loanDomain.Repository, lenders lenderDomain.Repository) *Usecase {
	return &Usecase{companies: companies, loans: loans, lenders: lenders}
}

// DetailDTO is the full company card: exact turnover for the owner-facing
// field plus the banded value for disclosure, the risk and inclusion
// breakdowns, and the loan's fit picture with the best match aliased.
type DetailDTO struct {
	ID             uint64  `json:"id"`
	SMEID          string  `json:"sme_id"`
	Sector         string  `json:"sector"`
	Region         string  `json:"region"`
	Turnover       float64 `json:"turnover"`
	TurnoverBanded string  `json:"turnover_banded"`
	Employees      int     `json:"employees"`

	RiskScore          float64 `json:"risk_score"`
	RiskCategory       string  `json:"risk_category"`
	LiquidityScore     float64 `json:"liquidity_score"`
	ProfitabilityScore float64 `json:"profitability_score"`
	LeverageScore      float64 `json:"leverage_score"`
	CashScore          float64 `json:"cash_score"`
	EfficiencyScore    float64 `json:"efficiency_score"`
	StabilityScore     float64 `json:"stability_score"`

	InclusionScore         float64  `json:"inclusion_score"`
	InclusionCategory      string   `json:"inclusion_category"`
	RegionalInclusionScore float64  `json:"regional_inclusion_score"`
	SectorInclusionScore   float64  `json:"sector_inclusion_score"`
	SizeInclusionScore     float64  `json:"size_inclusion_score"`
	OverlookedScore        float64  `json:"overlooked_score"`
	InclusionFlags         []string `json:"inclusion_flags"`

	CurrentLender      string  `json:"current_lender,omitempty"`
	CurrentLenderFit   float64 `json:"current_lender_fit"`
	BestMatchLender    string  `json:"best_match_lender,omitempty"`
	BestMatchFit       float64 `json:"best_match_fit"`
	FitGap             float64 `json:"fit_gap"`
	ReallocationStatus string  `json:"reallocation_status,omitempty"`
}

func (u *Usecase) Detail(ctx context.Context, companyID uint64) (*DetailDTO, error) {
	c, err := u.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyDomain.ErrNotFound
		}
		return nil, err
	}

	dto := &DetailDTO{
		ID:             c.ID,
		SMEID:          c.SMEID,
		Sector:         c.Sector,
		Region:         c.Region,
		Turnover:       c.Turnover,
		TurnoverBanded: banding.Turnover(c.Turnover),
		Employees:      c.Employees,

		RiskScore:          c.RiskScore,
		RiskCategory:       c.RiskCategory,
		LiquidityScore:     c.LiquidityScore,
		ProfitabilityScore: c.ProfitabilityScore,
		LeverageScore:      c.LeverageScore,
		CashScore:          c.CashScore,
		EfficiencyScore:    c.EfficiencyScore,
		StabilityScore:     c.StabilityScore,

		InclusionScore:         c.InclusionScore,
		InclusionCategory:      c.InclusionCategory,
		RegionalInclusionScore: c.RegionalInclusionScore,
		SectorInclusionScore:   c.SectorInclusionScore,
		SizeInclusionScore:     c.SizeInclusionScore,
		OverlookedScore:        c.OverlookedScore,
		InclusionFlags:         c.InclusionFlags,
	}
	if dto.InclusionFlags == nil {
		dto.InclusionFlags = []string{}
	}

	l, err := u.loans.GetByCompanyID(ctx, c.ID)
	switch {
	case err == nil:
		dto.CurrentLenderFit = l.CurrentLenderFit
		dto.BestMatchFit = l.BestMatchFit
		dto.FitGap = l.FitGap
		dto.ReallocationStatus = string(l.ReallocationTier)

		current, err := u.lenders.GetByID(ctx, l.CurrentLenderID)
		if err == nil {
			dto.CurrentLender = current.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if l.BestMatchLenderID != nil {
			best, err := u.lenders.GetByID(ctx, *l.BestMatchLenderID)
			if err == nil {
				dto.BestMatchLender = banding.NewAliaser().Alias(best.Name)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return dto, nil
}
