package portfolio

import (
	"context"
	"math"
	"sort"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/pkg/banding"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type Usecase struct {
	companies companyDomain.Repository
	loans     loanDomain.Repository
	lenders   lenderDomain.Repository
}

func NewUsecase(companies companyDomain.Repository, loans loanDomain.Repository, lenders lenderDomain.Repository) *Usecase {
	return &Usecase{companies: companies, loans: loans, lenders: lenders}
}

type OverviewDTO struct {
	TotalCompanies       int64   `json:"total_companies"`
	TotalLoanValue       float64 `json:"total_loan_value"`
	TotalLoanValueBanded string  `json:"total_loan_value_banded"`
	MismatchedLoans      int64   `json:"mismatched_loans"`
	MismatchPercentage   float64 `json:"mismatch_percentage"`
	AvgRiskScore         float64 `json:"avg_risk_score"`
}

func (u *Usecase) Overview(ctx context.Context) (*OverviewDTO, error) {
	totalCompanies, err := u.companies.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalValue, err := u.loans.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	totalLoans, err := u.loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	mismatched, err := u.loans.CountMismatched(ctx)
	if err != nil {
		return nil, err
	}
	avgRisk, err := u.companies.AvgRiskScore(ctx)
	if err != nil {
		return nil, err
	}

	dto := &OverviewDTO{
		TotalCompanies:       totalCompanies,
		TotalLoanValue:       totalValue,
		TotalLoanValueBanded: banding.Amount(totalValue),
		MismatchedLoans:      mismatched,
		AvgRiskScore:         round1(avgRisk),
	}
	if totalLoans > 0 {
		dto.MismatchPercentage = round1(float64(mismatched) / float64(totalLoans) * 100)
	}
	return dto, nil
}

type BucketDTO struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func (u *Usecase) BySector(ctx context.Context) ([]BucketDTO, error) {
	counts, err := u.companies.CountBySector(ctx)
	if err != nil {
		return nil, err
	}
	return sortedBuckets(counts), nil
}

// ByRegion optionally folds raw regions into macro regions for disclosure.
func (u *Usecase) ByRegion(ctx context.Context, grouped bool) ([]BucketDTO, error) {
	counts, err := u.companies.CountByRegion(ctx)
	if err != nil {
		return nil, err
	}
	if grouped {
		folded := make(map[string]int64, len(counts))
		for region, n := range counts {
			folded[banding.Region(region)] += n
		}
		counts = folded
	}
	return sortedBuckets(counts), nil
}

type LenderShareDTO struct {
	Lender     string  `json:"lender"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

func (u *Usecase) LenderDistribution(ctx context.Context) ([]LenderShareDTO, error) {
	lenders, err := u.lenders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]LenderShareDTO, 0, len(lenders))
	var total int64
	for i := range lenders {
		n, err := u.loans.CountByLender(ctx, lenders[i].ID, false)
		if err != nil {
			return nil, err
		}
		total += n
		out = append(out, LenderShareDTO{Lender: lenders[i].Name, Count: n})
	}
	if total > 0 {
		for i := range out {
			out[i].Percentage = round1(float64(out[i].Count) / float64(total) * 100)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

type CompanyListItemDTO struct {
	ID                uint64  `json:"id"`
	SMEID             string  `json:"sme_id"`
	Sector            string  `json:"sector"`
	Region            string  `json:"region"`
	Turnover          float64 `json:"turnover"`
	TurnoverBanded    string  `json:"turnover_banded"`
	RiskScore         float64 `json:"risk_score"`
	RiskCategory      string  `json:"risk_category"`
	InclusionScore    float64 `json:"inclusion_score"`
	InclusionCategory string  `json:"inclusion_category"`
}

type CompaniesFilter struct {
	Sector string
	Region string
	Skip   int
	Limit  int
}

func (u *Usecase) Companies(ctx context.Context, f CompaniesFilter) ([]CompanyListItemDTO, error) {
	if f.Limit <= 0 || f.Limit > maxPageSize {
		f.Limit = defaultPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	companies, err := u.companies.List(ctx, companyDomain.Filter{
		Sector: f.Sector,
		Region: f.Region,
		Offset: f.Skip,
		Limit:  f.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]CompanyListItemDTO, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		out = append(out, CompanyListItemDTO{
			ID:                c.ID,
			SMEID:             c.SMEID,
			Sector:            c.Sector,
			Region:            c.Region,
			Turnover:          c.Turnover,
			TurnoverBanded:    banding.Turnover(c.Turnover),
			RiskScore:         c.RiskScore,
			RiskCategory:      c.RiskCategory,
			InclusionScore:    c.InclusionScore,
			InclusionCategory: c.InclusionCategory,
		})
	}
	return out, nil
}

func sortedBuckets(counts map[string]int64) []BucketDTO {
	out := make([]BucketDTO, 0, len(counts))
	for label, n := range counts {
		out = append(out, BucketDTO{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
