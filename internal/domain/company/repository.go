package company

import "context"

type Filter struct {
	Sector string
	Region string
	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, c *Company) error
	Save(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uint64) (*Company, error)
	GetBySMEID(ctx context.Context, smeID string) (*Company, error)
	List(ctx context.Context, f Filter) ([]Company, error)
	ListAll(ctx context.Context) ([]Company, error)
	Count(ctx context.Context) (int64, error)
	AvgRiskScore(ctx context.Context) (float64, error)
	CountBySector(ctx context.Context) (map[string]int64, error)
	CountByRegion(ctx context.Context) (map[string]int64, error)
	InclusionStatsByRegion(ctx context.Context) ([]RegionInclusionStat, error)
}

// RegionInclusionStat aggregates inclusion scoring per raw region.
type RegionInclusionStat struct {
	Region        string
	Count         int64
	AvgInclusion  float64
	HighPriority  int64 // companies with inclusion_score >= the high-priority cut
}
