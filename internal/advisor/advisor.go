// Package advisor inspects a projection together with its business model and
// emits prioritized improvement suggestions for the planning wizard.
package advisor

import (
	"fmt"

	"github.com/launchessentials/finplan/pkg/businessmodel"
	"github.com/launchessentials/finplan/pkg/constants"
	"github.com/launchessentials/finplan/pkg/mathutil"
	"github.com/launchessentials/finplan/pkg/projection"
)

// SuggestionType identifies which lever a suggestion targets.
type SuggestionType string

const (
	SuggestionCost    SuggestionType = "cost"
	SuggestionRevenue SuggestionType = "revenue"
	SuggestionPricing SuggestionType = "pricing"
	SuggestionTiming  SuggestionType = "timing"
)

// Level grades impact and effort.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Suggestion is one improvement recommendation. ExpectedImprovement is a
// qualitative description, not a guaranteed numeric delta.
type Suggestion struct {
	Type                SuggestionType `json:"type"`
	Suggestion          string         `json:"suggestion"`
	Impact              Level          `json:"impact"`
	Effort              Level          `json:"effort"`
	ExpectedImprovement string         `json:"expectedImprovement"`
}

// Analyze applies the advisor rules to a projection. The rules are
// independent and evaluated in a fixed order (cost, revenue, pricing,
// timing) which also fixes the order of the returned slice. A rule that does
// not fire contributes nothing; there is no cap on how many fire together.
func Analyze(model businessmodel.BusinessModel, p projection.Projection) []Suggestion {
	var suggestions []Suggestion

	if s, ok := costRule(p); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := revenueRule(p); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := pricingRule(model, p); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := timingRule(p); ok {
		suggestions = append(suggestions, s)
	}

	return suggestions
}

// costRule fires when the cumulative cash position is negative for a strict
// majority of periods.
func costRule(p projection.Projection) (Suggestion, bool) {
	n := len(p.CumulativeCashFlow)
	if n == 0 {
		return Suggestion{}, false
	}

	negative := 0
	for _, cumulative := range p.CumulativeCashFlow {
		if cumulative < 0 {
			negative++
		}
	}
	if negative*2 <= n {
		return Suggestion{}, false
	}

	return Suggestion{
		Type:                SuggestionCost,
		Suggestion:          "Reduce fixed costs or defer non-essential spending; the plan runs cash-negative for most of the projection.",
		Impact:              LevelHigh,
		Effort:              LevelMedium,
		ExpectedImprovement: "Shorter cash-negative stretch and a smaller funding requirement",
	}, true
}

// revenueRule fires when average period-over-period revenue growth is below
// the low-growth threshold.
func revenueRule(p projection.Projection) (Suggestion, bool) {
	if len(p.Revenue) < 2 {
		return Suggestion{}, false
	}
	if mathutil.AverageGrowthRate(p.Revenue) >= constants.LowGrowthThreshold {
		return Suggestion{}, false
	}

	return Suggestion{
		Type:                SuggestionRevenue,
		Suggestion:          "Revenue growth is flat; invest in acquisition channels or expand existing revenue streams.",
		Impact:              LevelHigh,
		Effort:              LevelHigh,
		ExpectedImprovement: "Compounding monthly revenue instead of a flat top line",
	}, true
}

// pricingRule fires when the margin implied by the business model's
// recurring costs against average projected revenue falls below the
// low-margin threshold.
func pricingRule(model businessmodel.BusinessModel, p projection.Projection) (Suggestion, bool) {
	averageRevenue := mathutil.Average(p.Revenue)
	if averageRevenue <= 0 {
		return Suggestion{}, false
	}

	margin := (averageRevenue - model.CostStructure.MonthlyTotal()) / averageRevenue
	if margin >= constants.LowMarginThreshold {
		return Suggestion{}, false
	}

	return Suggestion{
		Type:                SuggestionPricing,
		Suggestion:          fmt.Sprintf("Margins are thin (%.0f%%); revisit pricing or renegotiate recurring costs.", margin*100),
		Impact:              LevelMedium,
		Effort:              LevelLow,
		ExpectedImprovement: "Healthier margin on every sale without new customers",
	}, true
}

// timingRule fires when break-even never happens or lands late in the
// projection window.
func timingRule(p projection.Projection) (Suggestion, bool) {
	n := len(p.CumulativeCashFlow)
	if n == 0 {
		return Suggestion{}, false
	}

	late := float64(n) * constants.LateBreakEvenFraction
	if p.BreakEvenMonth != nil && float64(*p.BreakEvenMonth) <= late {
		return Suggestion{}, false
	}

	return Suggestion{
		Type:                SuggestionTiming,
		Suggestion:          "Break-even arrives late or not at all; pull revenue forward or stage spending to reach it sooner.",
		Impact:              LevelMedium,
		Effort:              LevelMedium,
		ExpectedImprovement: "Earlier break-even and less dependence on outside funding",
	}, true
}
