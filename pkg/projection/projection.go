// Package projection implements the cash-flow projector: it turns monthly
// revenue and expense series into profit, cumulative cash position,
// break-even, and a return-on-investment summary.
package projection

import (
	"github.com/launchessentials/finplan/pkg/businessmodel"
	"github.com/launchessentials/finplan/pkg/mathutil"
)

// Timeframe labels the granularity of the input series.
type Timeframe string

const (
	TimeframeMonthly   Timeframe = "monthly"
	TimeframeQuarterly Timeframe = "quarterly"
	TimeframeYearly    Timeframe = "yearly"
)

// Input holds the caller-supplied series for one projection run. Revenue and
// expenses are aligned by index to the same period; when the lengths differ
// the projection covers only the shorter series. That truncation is the
// documented contract, not an error.
type Input struct {
	Timeframe    Timeframe `json:"timeframe" yaml:"timeframe" mapstructure:"timeframe"`
	Periods      int       `json:"periods" yaml:"periods" mapstructure:"periods"`
	StartingCash float64   `json:"startingCash" yaml:"startingCash" mapstructure:"startingCash"`
	Revenue      []float64 `json:"revenue" yaml:"revenue" mapstructure:"revenue"`
	Expenses     []float64 `json:"expenses" yaml:"expenses" mapstructure:"expenses"`
}

// Projection is the derived output. It is recomputed whenever the input
// changes and never mutated in place; every call returns freshly allocated
// slices so repeated UI renders see distinct objects.
type Projection struct {
	Revenue            []float64 `json:"revenue"`
	Expenses           []float64 `json:"expenses"`
	Profit             []float64 `json:"profit"`
	CashFlow           []float64 `json:"cashFlow"`
	CumulativeCashFlow []float64 `json:"cumulativeCashFlow"`
	BreakEvenMonth     *int      `json:"breakEvenMonth,omitempty"`
	ROI                float64   `json:"roi"`
}

// Calculate produces a projection from the business model and input series.
// The business model is accepted for future per-archetype adjustments but
// does not yet influence the arithmetic. Inputs are treated as read-only.
func Calculate(model businessmodel.BusinessModel, in Input) Projection {
	_ = model

	n := len(in.Revenue)
	if len(in.Expenses) < n {
		n = len(in.Expenses)
	}

	p := Projection{
		Revenue:            make([]float64, n),
		Expenses:           make([]float64, n),
		Profit:             make([]float64, n),
		CashFlow:           make([]float64, n),
		CumulativeCashFlow: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		p.Revenue[i] = in.Revenue[i]
		p.Expenses[i] = in.Expenses[i]
		p.Profit[i] = in.Revenue[i] - in.Expenses[i]
		p.CashFlow[i] = p.Profit[i]
		if i == 0 {
			p.CumulativeCashFlow[i] = in.StartingCash + p.CashFlow[i]
		} else {
			p.CumulativeCashFlow[i] = p.CumulativeCashFlow[i-1] + p.CashFlow[i]
		}
	}

	for i, cumulative := range p.CumulativeCashFlow {
		if cumulative >= 0 {
			month := i + 1
			p.BreakEvenMonth = &month
			break
		}
	}

	p.ROI = returnOnInvestment(in.StartingCash, p.Profit, p.Expenses)

	return p
}

// returnOnInvestment summarizes total profit against the capital at risk.
// Starting cash is the investment base; when none was supplied, total
// expenses stand in. The ratio is clamped at zero so a projection that ends
// cash-positive never reports a negative return, and it grows monotonically
// with total profit.
func returnOnInvestment(startingCash float64, profit, expenses []float64) float64 {
	base := startingCash
	if base <= 0 {
		base = mathutil.Sum(expenses)
	}
	if base <= 0 {
		return 0
	}

	roi := mathutil.Sum(profit) / base
	if roi < 0 {
		return 0
	}
	return roi
}
