package advisor

import (
	"testing"

	"github.com/launchessentials/finplan/pkg/businessmodel"
	"github.com/launchessentials/finplan/pkg/projection"
)

func modelWithMonthlyCosts(total float64) businessmodel.BusinessModel {
	return businessmodel.BusinessModel{
		Type: businessmodel.TypeSaaS,
		RevenueStreams: []businessmodel.RevenueStream{
			{Name: "subscriptions", Model: businessmodel.RevenueRecurring, MonthlyAmount: 1000},
		},
		CostStructure: businessmodel.CostStructure{
			Fixed: []businessmodel.CostItem{{Name: "operations", Amount: total}},
		},
	}
}

func project(startingCash float64, revenue, expenses []float64) projection.Projection {
	return projection.Calculate(businessmodel.BusinessModel{}, projection.Input{
		StartingCash: startingCash,
		Revenue:      revenue,
		Expenses:     expenses,
	})
}

func TestAnalyzeStrugglingPlanFiresAllRules(t *testing.T) {
	// Flat revenue, deep and persistent cash deficit, thin margins, no
	// break-even: all four rules should fire in their fixed order.
	p := project(0,
		[]float64{1000, 1000, 1000, 1000},
		[]float64{2000, 2000, 2000, 2000},
	)
	model := modelWithMonthlyCosts(950)

	suggestions := Analyze(model, p)

	wantOrder := []SuggestionType{SuggestionCost, SuggestionRevenue, SuggestionPricing, SuggestionTiming}
	if len(suggestions) != len(wantOrder) {
		t.Fatalf("len(suggestions) = %d, want %d: %+v", len(suggestions), len(wantOrder), suggestions)
	}
	for i, want := range wantOrder {
		if suggestions[i].Type != want {
			t.Errorf("suggestions[%d].Type = %s, want %s", i, suggestions[i].Type, want)
		}
	}

	if suggestions[0].Impact != LevelHigh {
		t.Errorf("cost suggestion impact = %s, want high", suggestions[0].Impact)
	}
	for i, s := range suggestions {
		if s.Suggestion == "" || s.ExpectedImprovement == "" || s.Impact == "" || s.Effort == "" {
			t.Errorf("suggestions[%d] has unpopulated fields: %+v", i, s)
		}
	}
}

func TestAnalyzeHealthyPlanIsQuiet(t *testing.T) {
	// Compounding revenue, cash-positive throughout, wide margins, early
	// break-even.
	p := project(1000,
		[]float64{1000, 1100, 1210, 1331},
		[]float64{100, 100, 100, 100},
	)
	model := modelWithMonthlyCosts(100)

	if suggestions := Analyze(model, p); len(suggestions) != 0 {
		t.Errorf("expected no suggestions for a healthy plan, got %+v", suggestions)
	}
}

func TestAnalyzeRevenueRuleAlone(t *testing.T) {
	// Flat revenue but comfortable cash and margins.
	p := project(0,
		[]float64{1000, 1000, 1000, 1000},
		[]float64{500, 500, 500, 500},
	)
	model := modelWithMonthlyCosts(100)

	suggestions := Analyze(model, p)

	if len(suggestions) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1: %+v", len(suggestions), suggestions)
	}
	if suggestions[0].Type != SuggestionRevenue {
		t.Errorf("suggestions[0].Type = %s, want revenue", suggestions[0].Type)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	p := project(0,
		[]float64{1000, 1000, 1000, 1000},
		[]float64{2000, 2000, 2000, 2000},
	)
	model := modelWithMonthlyCosts(950)

	first := Analyze(model, p)
	second := Analyze(model, p)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic suggestion count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("suggestion %d differs between runs", i)
		}
	}

	foundHighCost := false
	for _, s := range first {
		if s.Type == SuggestionCost && s.Impact == LevelHigh {
			foundHighCost = true
		}
	}
	if !foundHighCost {
		t.Error("expected at least one cost suggestion with high impact for a cash-negative, low-growth plan")
	}
}

func TestAnalyzeEmptyProjection(t *testing.T) {
	if suggestions := Analyze(modelWithMonthlyCosts(100), projection.Projection{}); len(suggestions) != 0 {
		t.Errorf("expected no suggestions for an empty projection, got %+v", suggestions)
	}
}

func TestAnalyzeLateBreakEven(t *testing.T) {
	// Break-even exists but lands in the final quarter of the window.
	p := project(0,
		[]float64{0, 0, 0, 0, 0, 0, 0, 10000},
		[]float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000},
	)
	model := modelWithMonthlyCosts(100)

	suggestions := Analyze(model, p)

	foundTiming := false
	for _, s := range suggestions {
		if s.Type == SuggestionTiming {
			foundTiming = true
		}
	}
	if !foundTiming {
		t.Errorf("expected a timing suggestion for break-even at month 8 of 8, got %+v", suggestions)
	}
}
