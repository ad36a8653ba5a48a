package market

import (
	"context"
	"math"
	"sort"

	companyDomain "sme-exchange-backend/internal/domain/company"
	lenderDomain "sme-exchange-backend/internal/domain/lender"
	loanDomain "sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/scoring"
	"sme-exchange-backend/pkg/banding"
)

// Usecase serves the market-intelligence reports: inclusion analysis by
// region, lender flow projections and reallocation statistics. Read-only.
type Usecase struct {
	companies companyDomain.Repository
	loans     loanDomain.Repository
	lenders   lenderDomain.Repository
	policy    scoring.Policy
}

func NewUsecase(companies companyDomain.Repository, loans loanDomain.Repository, lenders lenderDomain.Repository, policy scoring.Policy) *Usecase {
	return &Usecase{companies: companies, loans: loans, lenders: lenders, policy: policy}
}

type RegionalInclusionDTO struct {
	Region              string  `json:"region"`
	CompanyCount        int64   `json:"company_count"`
	AvgInclusionScore   float64 `json:"avg_inclusion_score"`
	HighPriorityCount   int64   `json:"high_priority_count"`
	InclusionPercentage float64 `json:"inclusion_percentage"`
}

type InclusionAnalysisDTO struct {
	Regions              []RegionalInclusionDTO `json:"regions"`
	TotalCompanies       int64                  `json:"total_companies"`
	TotalHighPriority    int64                  `json:"total_high_priority"`
	OverallInclusionRate float64                `json:"overall_inclusion_rate"`
}

// InclusionAnalysis folds per-region inclusion stats into macro regions,
// highest inclusion share first.
func (u *Usecase) InclusionAnalysis(ctx context.Context) (*InclusionAnalysisDTO, error) {
	stats, err := u.companies.InclusionStatsByRegion(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		count, highPriority int64
		inclusionSum        float64
	}
	folded := make(map[string]*acc)
	for _, s := range stats {
		group := banding.Region(s.Region)
		a := folded[group]
		if a == nil {
			a = &acc{}
			folded[group] = a
		}
		a.count += s.Count
		a.inclusionSum += s.AvgInclusion * float64(s.Count)
		a.highPriority += s.HighPriority
	}

	out := &InclusionAnalysisDTO{Regions: make([]RegionalInclusionDTO, 0, len(folded))}
	for region, a := range folded {
		dto := RegionalInclusionDTO{
			Region:            region,
			CompanyCount:      a.count,
			HighPriorityCount: a.highPriority,
		}
		if a.count > 0 {
			dto.AvgInclusionScore = round1(a.inclusionSum / float64(a.count))
			dto.InclusionPercentage = round1(float64(a.highPriority) / float64(a.count) * 100)
		}
		out.Regions = append(out.Regions, dto)
		out.TotalCompanies += a.count
		out.TotalHighPriority += a.highPriority
	}
	sort.Slice(out.Regions, func(i, j int) bool {
		return out.Regions[i].InclusionPercentage > out.Regions[j].InclusionPercentage
	})
	if out.TotalCompanies > 0 {
		out.OverallInclusionRate = round1(float64(out.TotalHighPriority) / float64(out.TotalCompanies) * 100)
	}
	return out, nil
}

type LenderFlowDTO struct {
	LenderID      uint64  `json:"lender_id"`
	LenderName    string  `json:"lender_name"`
	CurrentCount  int64   `json:"current_count"`
	CurrentValue  float64 `json:"current_value"`
	OptimalCount  int64   `json:"optimal_count"`
	OptimalValue  float64 `json:"optimal_value"`
	InboundCount  int64   `json:"inbound_count"`
	OutboundCount int64   `json:"outbound_count"`
	NetFlow       int64   `json:"net_flow"`
}

// LenderFlows projects each lender's book against the book it would hold if
// every loan sat with its best-match lender.
func (u *Usecase) LenderFlows(ctx context.Context) ([]LenderFlowDTO, error) {
	lenders, err := u.lenders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]LenderFlowDTO, 0, len(lenders))
	for i := range lenders {
		l := &lenders[i]
		currentCount, err := u.loans.CountByLender(ctx, l.ID, false)
		if err != nil {
			return nil, err
		}
		currentValue, err := u.loans.SumOutstandingByLender(ctx, l.ID, false)
		if err != nil {
			return nil, err
		}
		optimalCount, err := u.loans.CountByLender(ctx, l.ID, true)
		if err != nil {
			return nil, err
		}
		optimalValue, err := u.loans.SumOutstandingByLender(ctx, l.ID, true)
		if err != nil {
			return nil, err
		}

		outbound, err := u.loans.ListMismatchedByLender(ctx, l.ID, 0)
		if err != nil {
			return nil, err
		}

		flow := LenderFlowDTO{
			LenderID:      l.ID,
			LenderName:    l.Name,
			CurrentCount:  currentCount,
			CurrentValue:  currentValue,
			OptimalCount:  optimalCount,
			OptimalValue:  optimalValue,
			InboundCount:  optimalCount,
			OutboundCount: int64(len(outbound)),
		}
		flow.NetFlow = flow.InboundCount - flow.OutboundCount
		out = append(out, flow)
	}
	return out, nil
}

type ReallocationStatsDTO struct {
	TotalLoans                 int64   `json:"total_loans"`
	MismatchedCount            int64   `json:"mismatched_count"`
	MismatchedPercentage       float64 `json:"mismatched_percentage"`
	TotalValueAtRisk           float64 `json:"total_value_at_risk"`
	AvgFitImprovement          float64 `json:"avg_fit_improvement"`
	StrongReallocationCount    int64   `json:"strong_reallocation_count"`
	ModerateReallocationCount  int64   `json:"moderate_reallocation_count"`
	MinorReallocationCount     int64   `json:"minor_reallocation_count"`
	HighInclusionPriorityCount int64   `json:"high_inclusion_priority_count"`
}

func (u *Usecase) ReallocationStats(ctx context.Context) (*ReallocationStatsDTO, error) {
	total, err := u.loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	mismatched, err := u.loans.ListMismatched(ctx)
	if err != nil {
		return nil, err
	}

	out := &ReallocationStatsDTO{
		TotalLoans:      total,
		MismatchedCount: int64(len(mismatched)),
	}
	if total > 0 {
		out.MismatchedPercentage = round1(float64(len(mismatched)) / float64(total) * 100)
	}

	var gapSum float64
	for i := range mismatched {
		l := &mismatched[i]
		out.TotalValueAtRisk += l.OutstandingBalance
		gapSum += l.FitGap
		switch l.ReallocationTier {
		case loanDomain.StatusStrong:
			out.StrongReallocationCount++
		case loanDomain.StatusModerate:
			out.ModerateReallocationCount++
		case loanDomain.StatusMinor:
			out.MinorReallocationCount++
		}

		c, err := u.companies.GetByID(ctx, l.CompanyID)
		if err != nil {
			return nil, err
		}
		if c.InclusionScore >= u.policy.InclusionScoreCut {
			out.HighInclusionPriorityCount++
		}
	}
	if len(mismatched) > 0 {
		out.AvgFitImprovement = round1(gapSum / float64(len(mismatched)))
	}
	return out, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
