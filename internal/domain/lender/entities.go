package lender

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("lender not found")

// StringList is a JSON-encoded list column. A nil list means "no preference"
// (sector-agnostic or national coverage).
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringList) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("lender: unsupported list column type")
	}
}

func (s StringList) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

type Lender struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"size:128;uniqueIndex" json:"name"`

	Description   string `gorm:"type:text" json:"description"`
	RiskTolerance string `gorm:"size:16" json:"risk_tolerance"` // low, medium, high
	RiskScoreMin  int    `json:"risk_score_min"`

	PreferredSectors StringList `gorm:"type:text" json:"preferred_sectors"`
	PreferredRegions StringList `gorm:"type:text" json:"preferred_regions"`
	MinTurnover      float64    `gorm:"type:decimal(18,2)" json:"min_turnover"`
	MaxTurnover      *float64   `gorm:"type:decimal(18,2)" json:"max_turnover"`
	InclusionMandate bool       `json:"inclusion_mandate"`

	// Credits balance; mutated only inside a spend/grant transaction.
	CreditBalance int `gorm:"not null;default:0" json:"credit_balance"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lender) TableName() string { return "lenders" }
