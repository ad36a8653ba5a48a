package scoring

// Policy holds the tunable thresholds of the matching engine. The zero value is
// not usable; call DefaultPolicy and override from config as needed.
type Policy struct {
	// Fit-gap thresholds for reallocation tiers.
	StrongGap   float64
	ModerateGap float64

	// Minimum per-leg fit improvement for a loan to qualify for auto-matching.
	MinSwapImprovement float64
	// Maximum relative value difference between two loans for a swap to work
	// without an uncomfortable cash leg (0.20 = 20%).
	ValueTolerance float64
	// Relative band around zero within which a swap settles with no cash leg.
	ZeroCashTolerance float64

	// Inclusion scoring of swaps.
	InclusionBonusScore  float64 // bonus per leg with inclusion score at/above the cut
	InclusionScoreCut    float64
	OverlookedBonusScore float64 // extra bonus per leg flagged "Strong but Overlooked"
}

func DefaultPolicy() Policy {
	return Policy{
		StrongGap:            30,
		ModerateGap:          15,
		MinSwapImprovement:   15,
		ValueTolerance:       0.20,
		ZeroCashTolerance:    0.05,
		InclusionBonusScore:  10,
		InclusionScoreCut:    60,
		OverlookedBonusScore: 5,
	}
}
