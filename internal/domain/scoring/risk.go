package scoring

import (
	"math"

	"sme-exchange-backend/internal/domain/company"
)

// Component weights of the overall risk score.
const (
	weightLiquidity     = 0.20
	weightProfitability = 0.25
	weightLeverage      = 0.20
	weightCash          = 0.15
	weightEfficiency    = 0.10
	weightStability     = 0.10
)

// RiskResult carries the overall risk score, its category and the component
// scores, all on a 0-100 scale.
type RiskResult struct {
	Score         float64
	Category      string
	Liquidity     float64
	Profitability float64
	Leverage      float64
	Cash          float64
	Efficiency    float64
	Stability     float64
}

// ScoreRisk rates a company's financial health. Ratios that cannot be computed
// (zero denominators) contribute their worst-case or neutral value; the
// function never panics on incomplete data.
func ScoreRisk(c *company.Company) RiskResult {
	currentRatio := safeDiv(c.CurrentAssets, c.CurrentLiabilities, 0)
	operatingMargin := safeDiv(c.OperatingProfit, c.Turnover, 0)
	debtRatio := safeDiv(c.TotalLiabilities, c.TotalAssets, 1) // no assets reads as fully levered
	cashRatio := safeDiv(c.Cash, c.CurrentLiabilities, 0)
	assetTurnover := safeDiv(c.Turnover, c.TotalAssets, 0)
	workingCapitalRatio := safeDiv(c.WorkingCapital, c.CurrentLiabilities, 0)

	r := RiskResult{
		Liquidity:     normalize(currentRatio, 0.5, 3.0, false),
		Profitability: normalize(operatingMargin, -0.10, 0.25, false),
		Leverage:      normalize(debtRatio, 0.2, 0.8, true),
		Cash:          normalize(cashRatio, 0, 1.0, false),
		Efficiency:    normalize(assetTurnover, 0.3, 2.5, false),
		Stability:     normalize(workingCapitalRatio, -0.5, 2.0, false),
	}

	r.Score = round1(r.Liquidity*weightLiquidity +
		r.Profitability*weightProfitability +
		r.Leverage*weightLeverage +
		r.Cash*weightCash +
		r.Efficiency*weightEfficiency +
		r.Stability*weightStability)
	r.Category = RiskCategory(r.Score)
	return r
}

func RiskCategory(score float64) string {
	switch {
	case score >= 75:
		return "Low Risk"
	case score >= 60:
		return "Moderate-Low Risk"
	case score >= 45:
		return "Moderate Risk"
	case score >= 30:
		return "Moderate-High Risk"
	default:
		return "High Risk"
	}
}

// normalize clips value to [min,max] and scales to 0-100. NaN reads as the
// neutral midpoint. inverse flips the scale for lower-is-better metrics.
func normalize(value, min, max float64, inverse bool) float64 {
	if math.IsNaN(value) {
		return 50
	}
	clipped := math.Max(min, math.Min(max, value))
	var n float64
	if max == min {
		n = 0.5
	} else {
		n = (clipped - min) / (max - min)
	}
	if inverse {
		n = 1 - n
	}
	return n * 100
}

func safeDiv(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
