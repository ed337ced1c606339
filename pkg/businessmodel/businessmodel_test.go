package businessmodel

import (
	"testing"
)

func TestCatalogTemplatesAreValid(t *testing.T) {
	templates := Templates()
	if len(templates) != 3 {
		t.Fatalf("len(Templates()) = %d, want 3", len(templates))
	}

	for _, template := range templates {
		if err := template.Validate(); err != nil {
			t.Errorf("catalog template %s fails validation: %v", template.Type, err)
		}
		if len(template.RevenueStreams) == 0 {
			t.Errorf("catalog template %s has no revenue streams", template.Type)
		}
		if template.CostStructure.MonthlyTotal() <= 0 {
			t.Errorf("catalog template %s has no recurring costs", template.Type)
		}
	}
}

func TestTemplatesOrdering(t *testing.T) {
	templates := Templates()
	want := []Type{TypeEcommerce, TypeMarketplace, TypeSaaS}
	for i, template := range templates {
		if template.Type != want[i] {
			t.Errorf("Templates()[%d].Type = %s, want %s", i, template.Type, want[i])
		}
	}
}

func TestTemplateUnknownType(t *testing.T) {
	if _, err := Template(Type("consulting")); err == nil {
		t.Error("Template() with unknown type expected error, got nil")
	}
}

func TestCloneIsolation(t *testing.T) {
	original, err := Template(TypeSaaS)
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	clone := original.Clone()
	clone.CostStructure.Fixed[0].Amount = 999999
	clone.KeyMetrics["churnRate"] = 1.0
	clone.RevenueStreams[0].MonthlyAmount = -1

	fresh, _ := Template(TypeSaaS)
	if fresh.CostStructure.Fixed[0].Amount == 999999 {
		t.Error("editing a clone's cost structure leaked into the catalog")
	}
	if fresh.KeyMetrics["churnRate"] == 1.0 {
		t.Error("editing a clone's key metrics leaked into the catalog")
	}
	if fresh.RevenueStreams[0].MonthlyAmount == -1 {
		t.Error("editing a clone's revenue streams leaked into the catalog")
	}
}

func TestValidate(t *testing.T) {
	valid, _ := Template(TypeMarketplace)

	tests := []struct {
		name    string
		mutate  func(*BusinessModel)
		wantErr bool
	}{
		{
			name:    "Catalog template is valid",
			mutate:  func(bm *BusinessModel) {},
			wantErr: false,
		},
		{
			name:    "Unknown type",
			mutate:  func(bm *BusinessModel) { bm.Type = "franchise" },
			wantErr: true,
		},
		{
			name:    "Unnamed revenue stream",
			mutate:  func(bm *BusinessModel) { bm.RevenueStreams[0].Name = "" },
			wantErr: true,
		},
		{
			name:    "Unknown revenue model",
			mutate:  func(bm *BusinessModel) { bm.RevenueStreams[0].Model = "donations" },
			wantErr: true,
		},
		{
			name:    "Negative revenue amount",
			mutate:  func(bm *BusinessModel) { bm.RevenueStreams[0].MonthlyAmount = -10 },
			wantErr: true,
		},
		{
			name:    "Unnamed cost item",
			mutate:  func(bm *BusinessModel) { bm.CostStructure.Variable[0].Name = "" },
			wantErr: true,
		},
		{
			name:    "Negative cost amount",
			mutate:  func(bm *BusinessModel) { bm.CostStructure.OneTime[0].Amount = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := valid.Clone()
			tt.mutate(&model)
			err := model.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
