// Package pricing provides the price calculators offered by the financial
// planning step: cost-plus, value-based, and competitive pricing.
package pricing

import (
	"fmt"

	"github.com/launchessentials/finplan/pkg/constants"
	"github.com/launchessentials/finplan/pkg/mathutil"
)

// Strategy selects how a competitive price positions against the market.
type Strategy string

const (
	StrategyMatch    Strategy = "match"
	StrategyPremium  Strategy = "premium"
	StrategyUndercut Strategy = "undercut"
)

// ParseStrategy validates a strategy string from configuration or API input.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case StrategyMatch, StrategyPremium, StrategyUndercut:
		return Strategy(value), nil
	default:
		return "", fmt.Errorf("expected pricing strategy of %s, %s, or %s, got %q",
			StrategyMatch, StrategyPremium, StrategyUndercut, value)
	}
}

// CostPlus returns cost marked up by marginFraction. A margin of 0 prices at
// cost; margins above 1 are allowed and represent markups beyond 100%.
func CostPlus(cost, marginFraction float64) float64 {
	return cost * (1 + marginFraction)
}

// ValueBased returns the fraction of perceived customer value charged as the
// price.
func ValueBased(perceivedValue, captureRate float64) float64 {
	return perceivedValue * captureRate
}

// ValueBasedDefault applies the standard capture rate.
func ValueBasedDefault(perceivedValue float64) float64 {
	return ValueBased(perceivedValue, constants.DefaultCaptureRate)
}

// Competitive positions a price against the average of competitor prices.
// An empty competitor list yields a price of 0 rather than an error; the
// average of an empty set is treated as 0.
func Competitive(competitorPrices []float64, strategy Strategy) (float64, error) {
	average := mathutil.Average(competitorPrices)
	switch strategy {
	case StrategyMatch:
		return average, nil
	case StrategyPremium:
		return average * constants.PremiumPricingMultiplier, nil
	case StrategyUndercut:
		return average * constants.UndercutPricingMultiplier, nil
	default:
		return 0, fmt.Errorf("unknown pricing strategy %q", strategy)
	}
}
