package companymock

import (
	"context"

	domain "sme-exchange-backend/internal/domain/company"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, c *domain.Company) error
	SaveFn                   func(ctx context.Context, c *domain.Company) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Company, error)
	GetBySMEIDFn             func(ctx context.Context, smeID string) (*domain.Company, error)
	ListFn                   func(ctx context.Context, f domain.Filter) ([]domain.Company, error)
	ListAllFn                func(ctx context.Context) ([]domain.Company, error)
	CountFn                  func(ctx context.Context) (int64, error)
	AvgRiskScoreFn           func(ctx context.Context) (float64, error)
	CountBySectorFn          func(ctx context.Context) (map[string]int64, error)
	CountByRegionFn          func(ctx context.Context) (map[string]int64, error)
	InclusionStatsByRegionFn func(ctx context.Context) ([]domain.RegionInclusionStat, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Company) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Company) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Company, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetBySMEID(ctx context.Context, smeID string) (*domain.Company, error) {
	if m.GetBySMEIDFn != nil {
		return m.GetBySMEIDFn(ctx, smeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Company, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Company, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) AvgRiskScore(ctx context.Context) (float64, error) {
	if m.AvgRiskScoreFn != nil {
		return m.AvgRiskScoreFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountBySector(ctx context.Context) (map[string]int64, error) {
	if m.CountBySectorFn != nil {
		return m.CountBySectorFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CountByRegion(ctx context.Context) (map[string]int64, error) {
	if m.CountByRegionFn != nil {
		return m.CountByRegionFn(ctx)
	}
	return nil, nil
}

func (m *Repo) InclusionStatsByRegion(ctx context.Context) ([]domain.RegionInclusionStat, error) {
	if m.InclusionStatsByRegionFn != nil {
		return m.InclusionStatsByRegionFn(ctx)
	}
	return nil, nil
}
