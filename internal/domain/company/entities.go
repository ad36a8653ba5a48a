package company

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("company not found")

// Flags is a JSON-encoded list of inclusion tags, e.g. "Strong but Overlooked".
type Flags []string

func (f Flags) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	return string(b), err
}

func (f *Flags) Scan(src any) error {
	if src == nil {
		*f = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return errors.New("company: unsupported flags column type")
	}
}

type Company struct {
	ID    uint64 `gorm:"primaryKey;column:id" json:"id"`
	SMEID string `gorm:"column:sme_id;size:32;uniqueIndex" json:"sme_id"`

	Sector string `gorm:"size:64;index" json:"sector"`
	Region string `gorm:"size:64;index" json:"region"`

	// Financials (exact internal values; banded on external surfaces)
	Turnover           float64 `gorm:"type:decimal(18,2)" json:"turnover"`
	EBITDA             float64 `gorm:"type:decimal(18,2)" json:"ebitda"`
	OperatingProfit    float64 `gorm:"type:decimal(18,2)" json:"operating_profit"`
	GrossProfit        float64 `gorm:"type:decimal(18,2)" json:"gross_profit"`
	ProfitAfterTax     float64 `gorm:"type:decimal(18,2)" json:"profit_after_tax"`
	TotalAssets        float64 `gorm:"type:decimal(18,2)" json:"total_assets"`
	TotalLiabilities   float64 `gorm:"type:decimal(18,2)" json:"total_liabilities"`
	CurrentAssets      float64 `gorm:"type:decimal(18,2)" json:"current_assets"`
	CurrentLiabilities float64 `gorm:"type:decimal(18,2)" json:"current_liabilities"`
	Cash               float64 `gorm:"type:decimal(18,2)" json:"cash"`
	Stock              float64 `gorm:"type:decimal(18,2)" json:"stock"`
	Receivables        float64 `gorm:"type:decimal(18,2)" json:"receivables"`
	NetAssets          float64 `gorm:"type:decimal(18,2)" json:"net_assets"`
	WorkingCapital     float64 `gorm:"type:decimal(18,2)" json:"working_capital"`
	Employees          int     `json:"employees"`

	// Risk analysis outputs
	RiskScore          float64 `gorm:"type:decimal(6,2)" json:"risk_score"`
	RiskCategory       string  `gorm:"size:32" json:"risk_category"`
	LiquidityScore     float64 `gorm:"type:decimal(6,2)" json:"liquidity_score"`
	ProfitabilityScore float64 `gorm:"type:decimal(6,2)" json:"profitability_score"`
	LeverageScore      float64 `gorm:"type:decimal(6,2)" json:"leverage_score"`
	CashScore          float64 `gorm:"type:decimal(6,2)" json:"cash_score"`
	EfficiencyScore    float64 `gorm:"type:decimal(6,2)" json:"efficiency_score"`
	StabilityScore     float64 `gorm:"type:decimal(6,2)" json:"stability_score"`

	// Inclusion analysis outputs
	InclusionScore         float64 `gorm:"type:decimal(6,2)" json:"inclusion_score"`
	InclusionCategory      string  `gorm:"size:32" json:"inclusion_category"`
	RegionalInclusionScore float64 `gorm:"type:decimal(6,2)" json:"regional_inclusion_score"`
	SectorInclusionScore   float64 `gorm:"type:decimal(6,2)" json:"sector_inclusion_score"`
	SizeInclusionScore     float64 `gorm:"type:decimal(6,2)" json:"size_inclusion_score"`
	OverlookedScore        float64 `gorm:"type:decimal(6,2)" json:"overlooked_score"`
	InclusionFlags         Flags   `gorm:"type:text" json:"inclusion_flags"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Company) TableName() string { return "companies" }
