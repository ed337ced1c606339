// Package output provides utilities for formatting and displaying plan
// results.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/launchessentials/finplan/internal/planner"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result planner.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Projection for %s business model ---\n", result.Model.Type)
	fmt.Printf("Month | Revenue       | Expenses      | Profit        | Cumulative\n")
	fmt.Printf("_____ | _____________ | _____________ | _____________ | __________\n")
	for i := range result.Projection.Profit {
		_, _ = p.Printf("%5d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			i+1,
			result.Projection.Revenue[i],
			result.Projection.Expenses[i],
			result.Projection.Profit[i],
			result.Projection.CumulativeCashFlow[i],
		)
	}

	if result.Projection.BreakEvenMonth != nil {
		fmt.Printf("\nBreak-even month: %d\n", *result.Projection.BreakEvenMonth)
	} else {
		fmt.Printf("\nBreak-even month: not reached\n")
	}
	_, _ = p.Printf("ROI: %.2f\n", result.Projection.ROI)

	_, _ = p.Printf("\nTotal funding required: $%.2f\n", result.Funding.TotalRequired)
	_, _ = p.Printf("Runway: %.1f months\n", result.Funding.Runway)
	if result.Funding.FundingGap != nil {
		_, _ = p.Printf("Funding gap: $%.2f\n", *result.Funding.FundingGap)
	}
	for _, milestone := range result.Funding.Milestones {
		_, _ = p.Printf("  month %2d: $%.2f (%s)\n", milestone.Month, milestone.Amount, milestone.Purpose)
	}

	if result.Pricing != nil {
		_, _ = p.Printf("\nPricing (%s): cost-plus $%.2f, value-based $%.2f, competitive $%.2f\n",
			result.Pricing.Strategy,
			result.Pricing.CostPlusPrice,
			result.Pricing.ValueBasedPrice,
			result.Pricing.CompetitivePrice,
		)
	}

	if len(result.Suggestions) > 0 {
		fmt.Printf("\nSuggestions:\n")
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  [%s] impact=%s effort=%s: %s\n",
				suggestion.Type, suggestion.Impact, suggestion.Effort, suggestion.Suggestion)
		}
	}
}

// CsvFormat outputs the projection in comma-separated value format.
func CsvFormat(result planner.Result) {
	fmt.Print(CsvString(result))
}

// CsvString renders the projection as CSV for the API and file export.
func CsvString(result planner.Result) string {
	var b strings.Builder
	b.WriteString(`"month","revenue","expenses","profit","cumulativeCashFlow"` + "\n")
	for i := range result.Projection.Profit {
		fmt.Fprintf(&b, `"%d","%.2f","%.2f","%.2f","%.2f"`+"\n",
			i+1,
			result.Projection.Revenue[i],
			result.Projection.Expenses[i],
			result.Projection.Profit[i],
			result.Projection.CumulativeCashFlow[i],
		)
	}
	return b.String()
}

// JSONFormat outputs the full result as indented JSON.
func JSONFormat(result planner.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
