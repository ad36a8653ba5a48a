package mysql

import (
	"context"

	companyDomain "sme-exchange-backend/internal/domain/company"

	"gorm.io/gorm"
)

type CompanyRepository struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) *CompanyRepository { return &CompanyRepository{db: db} }

func (r *CompanyRepository) Create(ctx context.Context, c *companyDomain.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CompanyRepository) Save(ctx context.Context, c *companyDomain.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint64) (*companyDomain.Company, error) {
	var out companyDomain.Company
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CompanyRepository) GetBySMEID(ctx context.Context, smeID string) (*companyDomain.Company, error) {
	var out companyDomain.Company
	res := r.db.WithContext(ctx).Where("sme_id = ?", smeID).First(&out)
	return &out, res.Error
}

func (r *CompanyRepository) List(ctx context.Context, f companyDomain.Filter) ([]companyDomain.Company, error) {
	q := r.db.WithContext(ctx).Model(&companyDomain.Company{})
	if f.Sector != "" {
		q = q.Where("sector = ?", f.Sector)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []companyDomain.Company
	res := q.Offset(f.Offset).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *CompanyRepository) ListAll(ctx context.Context) ([]companyDomain.Company, error) {
	var out []companyDomain.Company
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&companyDomain.Company{}).Count(&n)
	return n, res.Error
}

func (r *CompanyRepository) AvgRiskScore(ctx context.Context) (float64, error) {
	var avg *float64
	res := r.db.WithContext(ctx).Model(&companyDomain.Company{}).
		Select("AVG(risk_score)").Scan(&avg)
	if res.Error != nil || avg == nil {
		return 0, res.Error
	}
	return *avg, nil
}

func (r *CompanyRepository) CountBySector(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "sector")
}

func (r *CompanyRepository) CountByRegion(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "region")
}

func (r *CompanyRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		Label string
		N     int64
	}
	var rows []row
	res := r.db.WithContext(ctx).Model(&companyDomain.Company{}).
		Select(column + " AS label, COUNT(*) AS n").
		Group(column).Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Label] = rw.N
	}
	return out, nil
}

func (r *CompanyRepository) InclusionStatsByRegion(ctx context.Context) ([]companyDomain.RegionInclusionStat, error) {
	var rows []companyDomain.RegionInclusionStat
	res := r.db.WithContext(ctx).Model(&companyDomain.Company{}).
		Select("region, COUNT(*) AS count, AVG(inclusion_score) AS avg_inclusion, " +
			"SUM(CASE WHEN inclusion_score >= 60 THEN 1 ELSE 0 END) AS high_priority").
		Group("region").Scan(&rows)
	return rows, res.Error
}
