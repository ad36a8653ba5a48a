// Package banding coarsens exact figures into disclosed ranges so that
// externally-surfaced values never leak a counterparty's book.
package banding

import (
	"fmt"
	"math"
	"sync"
)

// Amount bands a monetary value into a disclosure range.
func Amount(amount float64) string {
	switch {
	case amount < 100_000:
		return "<£100k"
	case amount < 500_000:
		return "£100k-£500k"
	case amount < 1_000_000:
		return "£500k-£1M"
	case amount < 2_000_000:
		return "£1M-£2M"
	case amount < 5_000_000:
		return "£2M-£5M"
	case amount < 10_000_000:
		return "£5M-£10M"
	case amount < 25_000_000:
		return "£10M-£25M"
	case amount < 50_000_000:
		return "£25M-£50M"
	case amount < 100_000_000:
		return "£50M-£100M"
	default:
		return ">£100M"
	}
}

// Turnover bands annual company turnover.
func Turnover(turnover float64) string {
	switch {
	case turnover < 1_000_000:
		return "<£1M"
	case turnover < 5_000_000:
		return "£1M-£5M"
	case turnover < 10_000_000:
		return "£5M-£10M"
	case turnover < 25_000_000:
		return "£10M-£25M"
	case turnover < 50_000_000:
		return "£25M-£50M"
	case turnover < 100_000_000:
		return "£50M-£100M"
	default:
		return ">£100M"
	}
}

// RoundScore rounds a 0-100 score to the nearest 5 for disclosure.
func RoundScore(score float64) float64 {
	return math.Round(score/5) * 5
}

// Percentage rounds a percentage to the nearest 5 points.
func Percentage(pct float64) float64 {
	return math.Round(pct/5) * 5
}

var regionGroups = map[string]string{
	"North East":               "Northern England",
	"North West":               "Northern England",
	"Yorkshire and The Humber": "Northern England",
	"Yorkshire And The Humber": "Northern England",
	"Yorkshire":                "Northern England",
	"East Midlands":            "Midlands",
	"West Midlands":            "Midlands",
	"South East":               "Southern England",
	"South West":               "Southern England",
	"East of England":          "Southern England",
	"East Of England":          "Southern England",
	"East":                     "Southern England",
	"London":                   "Greater London",
	"Greater London":           "Greater London",
	"Scotland":                 "Scotland",
	"Wales":                    "Wales",
	"Northern Ireland":         "Northern Ireland",
}

// Region groups a UK region into its macro region. Unknown regions pass
// through unchanged.
func Region(region string) string {
	if region == "" {
		return "Unknown"
	}
	if g, ok := regionGroups[region]; ok {
		return g
	}
	return region
}

// Aliaser hands out stable anonymous lender labels ("Lender A", "Lender B", …)
// for one session. Safe for concurrent use.
type Aliaser struct {
	mu      sync.Mutex
	mapping map[string]string
	next    int
}

func NewAliaser() *Aliaser {
	return &Aliaser{mapping: make(map[string]string)}
}

// Alias returns the stable label for a lender name.
func (a *Aliaser) Alias(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if alias, ok := a.mapping[name]; ok {
		return alias
	}
	alias := fmt.Sprintf("Lender %c", 'A'+a.next%26)
	a.mapping[name] = alias
	a.next++
	return alias
}

// Reset clears the mapping (tests).
func (a *Aliaser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mapping = make(map[string]string)
	a.next = 0
}
