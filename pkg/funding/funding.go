// Package funding estimates capital requirements from a cash-flow
// projection: total raise with safety buffer, runway, quarterly milestones,
// and the gap to a target runway.
package funding

import (
	"fmt"

	"github.com/launchessentials/finplan/pkg/constants"
	"github.com/launchessentials/finplan/pkg/mathutil"
	"github.com/launchessentials/finplan/pkg/projection"
)

// Milestone is a quarterly funding checkpoint.
type Milestone struct {
	Month   int     `json:"month"`
	Amount  float64 `json:"amount"`
	Purpose string  `json:"purpose"`
}

// Requirements summarizes the capital picture derived from a projection.
// FundingGap is only present when the runway falls short of the target.
type Requirements struct {
	TotalRequired float64     `json:"totalRequired"`
	Runway        float64     `json:"runway"`
	Milestones    []Milestone `json:"milestones"`
	FundingGap    *float64    `json:"fundingGap,omitempty"`
}

// EstimateDefault applies the standard 18-month runway target.
func EstimateDefault(p projection.Projection) Requirements {
	return Estimate(p, constants.DefaultTargetRunwayMonths)
}

// Estimate derives funding requirements from a projection. Periods are
// treated as months, matching the wizard's monthly input.
func Estimate(p projection.Projection, targetRunwayMonths float64) Requirements {
	n := len(p.CumulativeCashFlow)
	if n == 0 {
		return Requirements{}
	}
	if targetRunwayMonths <= 0 {
		targetRunwayMonths = constants.DefaultTargetRunwayMonths
	}

	minCumulative := p.CumulativeCashFlow[0]
	for _, cumulative := range p.CumulativeCashFlow[1:] {
		if cumulative < minCumulative {
			minCumulative = cumulative
		}
	}

	req := Requirements{
		TotalRequired: totalRequired(minCumulative, p.Expenses),
		Runway:        runwayMonths(p),
		Milestones:    milestones(p),
	}

	if req.Runway < targetRunwayMonths {
		gap := mathutil.Round((targetRunwayMonths - req.Runway) * burnRate(p.CashFlow))
		if gap > 0 {
			req.FundingGap = &gap
		}
	}

	return req
}

// totalRequired pads the worst-case shortfall with the safety buffer. A
// projection that never dips below zero still gets a nominal minimum of a
// few months of average expenses.
func totalRequired(minCumulative float64, expenses []float64) float64 {
	if minCumulative < 0 {
		return mathutil.Round(-minCumulative * constants.FundingSafetyBuffer)
	}
	return mathutil.Round(constants.NominalFundingMonths * mathutil.Average(expenses))
}

// burnRate is the average negative cash flow per period. Cash-positive
// periods do not contribute; a model that never burns returns 0.
func burnRate(cashFlow []float64) float64 {
	total := 0.0
	count := 0
	for _, flow := range cashFlow {
		if flow < 0 {
			total -= flow
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// runwayMonths returns how many months of operation remain before the cash
// position depletes. Depletion inside the projection window yields the
// fractional month where cumulative cash crosses zero; otherwise the ending
// cash is extrapolated at the average burn rate. Models that never burn are
// capped rather than reported as infinite.
func runwayMonths(p projection.Projection) float64 {
	n := len(p.CumulativeCashFlow)

	for i := 0; i < n; i++ {
		if p.CumulativeCashFlow[i] >= 0 {
			continue
		}
		cashBefore := p.CumulativeCashFlow[i] - p.CashFlow[i]
		if p.CashFlow[i] < 0 && cashBefore > 0 {
			return float64(i) + cashBefore/(-p.CashFlow[i])
		}
		return float64(i)
	}

	burn := burnRate(p.CashFlow)
	if burn == 0 {
		return constants.MaxRunwayMonths
	}

	ending := p.CumulativeCashFlow[n-1]
	if ending < 0 {
		return float64(n)
	}

	runway := float64(n) + ending/burn
	if runway > constants.MaxRunwayMonths {
		return constants.MaxRunwayMonths
	}
	return runway
}

// milestones places one checkpoint every quarter of the projection. Each
// amount is the capital needed to stay solvent through that checkpoint.
func milestones(p projection.Projection) []Milestone {
	n := len(p.CumulativeCashFlow)
	step := n / constants.MilestoneQuarters
	if step < 1 {
		step = 1
	}

	var result []Milestone
	previousMonth := 0
	for q := 1; q <= constants.MilestoneQuarters; q++ {
		month := q * step
		if month > n {
			month = n
		}
		if month == previousMonth {
			break
		}
		previousMonth = month

		need := 0.0
		for i := 0; i < month; i++ {
			if shortfall := -p.CumulativeCashFlow[i]; shortfall > need {
				need = shortfall
			}
		}

		result = append(result, Milestone{
			Month:   month,
			Amount:  mathutil.Round(need),
			Purpose: fmt.Sprintf("Quarter %d operations", q),
		})
	}

	return result
}
