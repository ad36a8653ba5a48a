package scoring

import (
	"fmt"

	"sme-exchange-backend/internal/domain/company"
	"sme-exchange-backend/internal/domain/lender"
)

// FitResult is the alignment score between one company and one lender, with
// human-readable reasons for both directions.
type FitResult struct {
	Score    float64
	Positive []string
	Negative []string
}

// Fit scores how well a company's profile matches a lender's appetite on a
// 0-100 scale: risk alignment 30, sector 25, region 20, size 15, inclusion 10.
// Pure function; identical inputs always produce identical output. Missing
// attributes contribute neutrally rather than erroring.
func Fit(c *company.Company, l *lender.Lender) FitResult {
	if l == nil {
		return FitResult{Negative: []string{"Unknown lender"}}
	}

	var r FitResult

	// 1. Risk alignment (30 points max)
	riskScore := orNeutral(c.RiskScore)
	riskMin := float64(l.RiskScoreMin)
	switch gap := riskMin - riskScore; {
	case gap <= 0:
		r.Score += 30
		r.Positive = append(r.Positive, fmt.Sprintf("Risk score %.0f meets threshold %.0f", riskScore, riskMin))
	case gap <= 10:
		r.Score += 20
		r.Negative = append(r.Negative, fmt.Sprintf("Risk score %.0f slightly below %.0f", riskScore, riskMin))
	case gap <= 20:
		r.Score += 10
		r.Negative = append(r.Negative, fmt.Sprintf("Risk score %.0f below threshold %.0f", riskScore, riskMin))
	default:
		r.Negative = append(r.Negative, fmt.Sprintf("Risk score %.0f significantly below %.0f", riskScore, riskMin))
	}

	// 2. Sector match (25 points max; 20 when the lender is sector-agnostic)
	switch {
	case l.PreferredSectors == nil:
		r.Score += 20
		r.Positive = append(r.Positive, "Lender is sector-agnostic")
	case l.PreferredSectors.Contains(c.Sector):
		r.Score += 25
		r.Positive = append(r.Positive, fmt.Sprintf("Sector %q matches lender preference", c.Sector))
	default:
		r.Negative = append(r.Negative, fmt.Sprintf("Sector %q not in lender's focus", c.Sector))
	}

	// 3. Region match (20 points max; 15 for national coverage)
	switch {
	case l.PreferredRegions == nil:
		r.Score += 15
		r.Positive = append(r.Positive, "Lender has national coverage")
	case l.PreferredRegions.Contains(c.Region):
		r.Score += 20
		r.Positive = append(r.Positive, fmt.Sprintf("Region %q matches lender focus", c.Region))
	default:
		r.Negative = append(r.Negative, fmt.Sprintf("Region %q outside lender's focus", c.Region))
	}

	// 4. Size match (15 points max)
	sizeOK := c.Turnover >= l.MinTurnover
	if l.MaxTurnover != nil {
		sizeOK = sizeOK && c.Turnover <= *l.MaxTurnover
	}
	switch {
	case sizeOK:
		r.Score += 15
		r.Positive = append(r.Positive, fmt.Sprintf("Company size £%.1fm in lender's range", c.Turnover/1e6))
	case c.Turnover < l.MinTurnover:
		r.Negative = append(r.Negative, fmt.Sprintf("Company too small (£%.1fm < £%.1fm min)", c.Turnover/1e6, l.MinTurnover/1e6))
	default:
		r.Negative = append(r.Negative, fmt.Sprintf("Company too large (£%.1fm > £%.1fm max)", c.Turnover/1e6, *l.MaxTurnover/1e6))
	}

	// 5. Inclusion alignment (10 points max)
	inclusion := orNeutral(c.InclusionScore)
	if l.InclusionMandate {
		switch {
		case inclusion >= 60:
			r.Score += 10
			r.Positive = append(r.Positive, "Strong inclusion alignment with lender's mandate")
		case inclusion >= 45:
			r.Score += 5
			r.Positive = append(r.Positive, "Moderate inclusion alignment")
		}
	} else if inclusion < 45 {
		// Non-mandate lenders still get partial credit for well-served companies.
		r.Score += 5
	}

	return r
}

// BestMatch scores the company against every lender except its current owner
// and returns the best, alongside all per-lender fits.
func BestMatch(c *company.Company, lenders []lender.Lender, currentLenderID uint64) (best *lender.Lender, bestFit FitResult, allFits map[uint64]float64) {
	allFits = make(map[uint64]float64, len(lenders))
	for i := range lenders {
		l := &lenders[i]
		fit := Fit(c, l)
		allFits[l.ID] = fit.Score
		if l.ID == currentLenderID {
			continue
		}
		if best == nil || fit.Score > bestFit.Score {
			best = l
			bestFit = fit
		}
	}
	return best, bestFit, allFits
}

// Tier buckets a fit gap into a reallocation status. Total: every gap maps to
// exactly one tier.
func (p Policy) Tier(fitGap float64) string {
	switch {
	case fitGap >= p.StrongGap:
		return "STRONG"
	case fitGap >= p.ModerateGap:
		return "MODERATE"
	case fitGap > 0:
		return "MINOR"
	default:
		return "NONE"
	}
}

// Mismatch reports whether the gap is wide enough to act on.
func (p Policy) Mismatch(fitGap float64) bool { return fitGap > p.ModerateGap }

// orNeutral treats an unscored (zero) attribute as the neutral midpoint.
func orNeutral(v float64) float64 {
	if v == 0 {
		return 50
	}
	return v
}
