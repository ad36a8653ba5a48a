package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sme-exchange-backend/internal/domain/company"
	"sme-exchange-backend/internal/domain/lender"
)

func specialistLender() *lender.Lender {
	fifty := 50_000_000.0
	return &lender.Lender{
		ID:               1,
		Name:             "Sector Specialist Credit",
		RiskScoreMin:     50,
		PreferredSectors: lender.StringList{"Advanced_Manufacturing", "Defence"},
		PreferredRegions: lender.StringList{"North West", "Wales"},
		MinTurnover:      10_000_000,
		MaxTurnover:      &fifty,
	}
}

func TestFit_FullAlignment(t *testing.T) {
	l := specialistLender()
	c := &company.Company{
		Sector:         "Defence",
		Region:         "Wales",
		Turnover:       20_000_000,
		RiskScore:      80,
		InclusionScore: 40,
	}

	r := Fit(c, l)
	// risk 30 + sector 25 + region 20 + size 15 + well-served credit 5
	require.InDelta(t, 95, r.Score, 0.001)
	assert.NotEmpty(t, r.Positive)
	assert.Empty(t, r.Negative)
}

func TestFit_AgnosticNationalLender(t *testing.T) {
	l := &lender.Lender{ID: 2, RiskScoreMin: 40, MinTurnover: 1_000_000}
	c := &company.Company{
		Sector:         "Clean_Energy",
		Region:         "Scotland",
		Turnover:       5_000_000,
		RiskScore:      60,
		InclusionScore: 70,
	}

	r := Fit(c, l)
	// risk 30 + agnostic 20 + national 15 + size 15; no inclusion credit
	assert.InDelta(t, 80, r.Score, 0.001)
}

func TestFit_RiskGapLadder(t *testing.T) {
	l := &lender.Lender{RiskScoreMin: 70, MinTurnover: 1}
	base := company.Company{Sector: "Defence", Region: "Wales", Turnover: 1e6, InclusionScore: 50}

	// Agnostic national lender: every non-risk component is fixed at
	// 20 + 15 + 15, so the ladder shows through directly.
	for _, tc := range []struct {
		risk float64
		want float64
	}{
		{75, 30 + 50},
		{62, 20 + 50}, // within 10 of the threshold
		{52, 10 + 50}, // within 20
		{40, 0 + 50},
	} {
		c := base
		c.RiskScore = tc.risk
		assert.InDelta(t, tc.want, Fit(&c, l).Score, 0.001, "risk %.0f", tc.risk)
	}
}

func TestFit_SizeBounds(t *testing.T) {
	l := specialistLender()
	c := &company.Company{Sector: "Defence", Region: "Wales", RiskScore: 80, InclusionScore: 50}

	c.Turnover = 5_000_000 // below min
	small := Fit(c, l)
	c.Turnover = 80_000_000 // above max
	large := Fit(c, l)
	c.Turnover = 30_000_000
	right := Fit(c, l)

	assert.Equal(t, small.Score, large.Score)
	assert.InDelta(t, 15, right.Score-small.Score, 0.001)
}

func TestFit_InclusionMandate(t *testing.T) {
	l := &lender.Lender{RiskScoreMin: 40, MinTurnover: 1, InclusionMandate: true}
	c := &company.Company{Turnover: 1e6, RiskScore: 60}

	c.InclusionScore = 70
	high := Fit(c, l)
	c.InclusionScore = 50
	mid := Fit(c, l)
	c.InclusionScore = 30
	low := Fit(c, l)

	assert.InDelta(t, 10, high.Score-low.Score, 0.001)
	assert.InDelta(t, 5, mid.Score-low.Score, 0.001)
}

func TestFit_NilLender(t *testing.T) {
	r := Fit(&company.Company{}, nil)
	assert.Zero(t, r.Score)
	assert.NotEmpty(t, r.Negative)
}

func TestBestMatch_ExcludesCurrentOwner(t *testing.T) {
	fifty := 50_000_000.0
	lenders := []lender.Lender{
		{ID: 1, RiskScoreMin: 40, PreferredSectors: lender.StringList{"Defence"}, PreferredRegions: lender.StringList{"Wales"}, MinTurnover: 1},
		{ID: 2, RiskScoreMin: 40, MinTurnover: 1, MaxTurnover: &fifty},
	}
	c := &company.Company{Sector: "Defence", Region: "Wales", Turnover: 1e6, RiskScore: 80, InclusionScore: 50}

	// Lender 1 is the perfect fit but owns the loan already.
	best, fit, all := BestMatch(c, lenders, 1)
	require.NotNil(t, best)
	assert.Equal(t, uint64(2), best.ID)
	assert.Len(t, all, 2)
	assert.Greater(t, all[uint64(1)], fit.Score)
}

func TestPolicyTierAndMismatch(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, "STRONG", p.Tier(35))
	assert.Equal(t, "STRONG", p.Tier(30))
	assert.Equal(t, "MODERATE", p.Tier(20))
	assert.Equal(t, "MODERATE", p.Tier(15))
	assert.Equal(t, "MINOR", p.Tier(5))
	assert.Equal(t, "NONE", p.Tier(0))
	assert.Equal(t, "NONE", p.Tier(-10))

	assert.True(t, p.Mismatch(15.1))
	assert.False(t, p.Mismatch(15))
	assert.False(t, p.Mismatch(0))
}
