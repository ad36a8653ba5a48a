package pricing

import (
	"github.com/shopspring/decimal"

	"sme-exchange-backend/internal/domain/loan"
)

// Industry-standard assumptions for SME loan book pricing.
const (
	// RecoveryRate is the average recovery on defaulted SME loans.
	RecoveryRate = 0.40
)

// Valuation is the full pricing breakdown for one loan.
type Valuation struct {
	DefaultProbability float64
	RemainingPayments  float64
	ExpectedLoss       float64
	RiskAdjustedValue  float64
	MisfitDiscount     float64
	SuggestedPrice     float64
	DiscountPercent    float64
	GrossROI           float64
	RiskAdjustedROI    float64
	AnnualizedROI      float64
}

// Price values a loan for sale. riskScore drives the default probability,
// currentFit drives the misfit discount (a poorly-fitting holder accepts a
// deeper discount to exit). Deterministic and side-effect-free.
func Price(l *loan.Loan, riskScore, currentFit float64) Valuation {
	v := Valuation{
		DefaultProbability: DefaultProbability(riskScore),
		MisfitDiscount:     MisfitDiscount(currentFit),
	}

	monthly := decimal.NewFromFloat(l.MonthlyPayment)
	months := decimal.NewFromFloat(l.YearsRemaining).Mul(decimal.NewFromInt(12))
	remaining := monthly.Mul(months)
	v.RemainingPayments = remaining.Round(2).InexactFloat64()

	// expected loss = PD * LGD * outstanding balance
	loss := decimal.NewFromFloat(v.DefaultProbability).
		Mul(decimal.NewFromFloat(1 - RecoveryRate)).
		Mul(decimal.NewFromFloat(l.OutstandingBalance))
	v.ExpectedLoss = loss.Round(2).InexactFloat64()

	rav := remaining.Sub(loss)
	v.RiskAdjustedValue = rav.Round(2).InexactFloat64()

	price := rav.Mul(decimal.NewFromFloat(1 - v.MisfitDiscount))
	v.SuggestedPrice = price.Round(2).InexactFloat64()

	if l.OutstandingBalance > 0 {
		discount := decimal.NewFromInt(1).
			Sub(price.Div(decimal.NewFromFloat(l.OutstandingBalance))).
			Mul(decimal.NewFromInt(100))
		v.DiscountPercent = discount.Round(2).InexactFloat64()
	}

	v.GrossROI, v.RiskAdjustedROI, v.AnnualizedROI = buyerROI(price, remaining, loss, l.YearsRemaining)
	return v
}

// DefaultProbability maps a 0-100 risk score to an annual-book default
// probability band.
func DefaultProbability(riskScore float64) float64 {
	switch {
	case riskScore <= 0:
		return 0.05 // unscored
	case riskScore >= 80:
		return 0.01
	case riskScore >= 70:
		return 0.02
	case riskScore >= 60:
		return 0.03
	case riskScore >= 50:
		return 0.05
	case riskScore >= 40:
		return 0.08
	case riskScore >= 30:
		return 0.12
	default:
		return 0.18
	}
}

// MisfitDiscount grows as the current holder's fit shrinks: a motivated seller
// accepts a deeper discount.
func MisfitDiscount(currentFit float64) float64 {
	switch {
	case currentFit <= 0:
		return 0.10 // unscored
	case currentFit >= 70:
		return 0
	case currentFit >= 60:
		return 0.03
	case currentFit >= 50:
		return 0.07
	case currentFit >= 40:
		return 0.12
	case currentFit >= 30:
		return 0.18
	default:
		return 0.25
	}
}

func buyerROI(price, remaining, loss decimal.Decimal, yearsRemaining float64) (gross, riskAdjusted, annualized float64) {
	if price.Sign() <= 0 {
		return 0, 0, 0
	}
	hundred := decimal.NewFromInt(100)

	grossProfit := remaining.Sub(price)
	gross = grossProfit.Div(price).Mul(hundred).Round(2).InexactFloat64()

	raProfit := grossProfit.Sub(loss)
	raROI := raProfit.Div(price)
	riskAdjusted = raROI.Mul(hundred).Round(2).InexactFloat64()

	if yearsRemaining > 0 {
		annualized = raROI.Div(decimal.NewFromFloat(yearsRemaining)).Mul(hundred).Round(2).InexactFloat64()
	} else {
		annualized = riskAdjusted
	}
	return gross, riskAdjusted, annualized
}
