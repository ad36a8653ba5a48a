package scoring

import (
	"sort"

	"sme-exchange-backend/internal/domain/company"
)

// Inclusion component weights.
const (
	weightRegional   = 0.35
	weightSector     = 0.25
	weightSize       = 0.20
	weightOverlooked = 0.20
)

// Regions outside the major financial centres, graded by how thin lending
// coverage runs there.
var mostUnderservedRegions = map[string]bool{
	"North East": true, "Northern Ireland": true, "Wales": true,
}

var underservedRegions = map[string]bool{
	"North East": true, "North West": true, "Scotland": true, "Wales": true,
	"Northern Ireland": true, "Yorkshire And The Humber": true,
	"East Midlands": true, "West Midlands": true,
}

var wellServedRegions = map[string]bool{
	"London": true, "South East": true,
}

// Sectors that face systemic lending bias.
var underservedSectors = map[string]bool{
	"Creative_Industries": true, "Clean_Energy": true, "Life_Science": true,
}

var wellUnderstoodSectors = map[string]bool{
	"Financial": true, "Professional_Business": true,
}

const FlagStrongButOverlooked = "Strong but Overlooked"

type InclusionResult struct {
	Score      float64
	Category   string
	Regional   float64
	Sector     float64
	Size       float64
	Overlooked float64
	Flags      company.Flags
}

// TurnoverQuartiles are the portfolio-wide calibration points for the size
// component. Compute them once per scoring run with ComputeTurnoverQuartiles.
type TurnoverQuartiles struct {
	P25, P50, P75 float64
}

func ComputeTurnoverQuartiles(companies []company.Company) TurnoverQuartiles {
	if len(companies) == 0 {
		return TurnoverQuartiles{}
	}
	vals := make([]float64, 0, len(companies))
	for _, c := range companies {
		vals = append(vals, c.Turnover)
	}
	sort.Float64s(vals)
	q := func(p float64) float64 {
		idx := int(p * float64(len(vals)-1))
		return vals[idx]
	}
	return TurnoverQuartiles{P25: q(0.25), P50: q(0.50), P75: q(0.75)}
}

// ScoreInclusion rates how likely a company is to be underserved by the
// lending market. riskScore feeds the "strong but overlooked" component, so
// run ScoreRisk first.
func ScoreInclusion(c *company.Company, riskScore float64, q TurnoverQuartiles) InclusionResult {
	r := InclusionResult{
		Regional: scoreRegion(c.Region),
		Sector:   scoreSector(c.Sector),
		Size:     scoreSize(c.Turnover, q),
	}
	r.Overlooked = scoreOverlooked(riskScore, r.Regional, r.Sector)

	r.Score = round1(r.Regional*weightRegional +
		r.Sector*weightSector +
		r.Size*weightSize +
		r.Overlooked*weightOverlooked)
	r.Category = InclusionCategory(r.Score)
	r.Flags = inclusionFlags(r, riskScore)
	return r
}

func scoreRegion(region string) float64 {
	switch {
	case region == "" || region == "Unknown":
		return 50
	case mostUnderservedRegions[region]:
		return 85
	case region == "Scotland" || region == "North West":
		return 75
	case underservedRegions[region]:
		return 65
	case wellServedRegions[region]:
		return 25
	default:
		return 45
	}
}

func scoreSector(sector string) float64 {
	switch {
	case sector == "":
		return 50
	case underservedSectors[sector]:
		return 75
	case wellUnderstoodSectors[sector]:
		return 30
	default:
		return 50
	}
}

func scoreSize(turnover float64, q TurnoverQuartiles) float64 {
	if turnover <= 0 || q.P75 == 0 {
		return 50
	}
	switch {
	case turnover <= q.P25:
		return 80
	case turnover <= q.P50:
		return 65
	case turnover <= q.P75:
		return 45
	default:
		return 30
	}
}

// scoreOverlooked flags healthy companies sitting in underserved positions.
func scoreOverlooked(riskScore, regional, sector float64) float64 {
	switch {
	case riskScore >= 65:
		avg := (regional + sector) / 2
		switch {
		case avg >= 60:
			return 90
		case avg >= 50:
			return 70
		default:
			return 40
		}
	case riskScore >= 50:
		return 55
	default:
		return 35
	}
}

func inclusionFlags(r InclusionResult, riskScore float64) company.Flags {
	var flags company.Flags
	if r.Regional >= 70 {
		flags = append(flags, "Underserved Region")
	}
	if r.Sector >= 70 {
		flags = append(flags, "Underserved Sector")
	}
	if r.Size >= 70 {
		flags = append(flags, "Smaller Company")
	}
	if r.Overlooked >= 80 {
		flags = append(flags, FlagStrongButOverlooked)
	}
	if riskScore >= 70 && r.Score >= 60 {
		flags = append(flags, "High Potential - Inclusion Candidate")
	}
	return flags
}

func InclusionCategory(score float64) string {
	switch {
	case score >= 75:
		return "High Inclusion Priority"
	case score >= 60:
		return "Moderate Inclusion Priority"
	case score >= 45:
		return "Standard"
	default:
		return "Well-Served"
	}
}
