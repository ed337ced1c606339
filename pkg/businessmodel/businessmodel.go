// Package businessmodel defines the pricing and cost archetypes the planning
// wizard offers as starting points, plus the line-item cost structure shared
// by all of them.
package businessmodel

import (
	"fmt"
	"sort"
)

// Type identifies a business model archetype.
type Type string

const (
	TypeSaaS        Type = "saas"
	TypeEcommerce   Type = "ecommerce"
	TypeMarketplace Type = "marketplace"
)

// RevenueModel describes how a revenue stream earns.
type RevenueModel string

const (
	RevenueRecurring     RevenueModel = "recurring"
	RevenueTransactional RevenueModel = "transactional"
	RevenueCommission    RevenueModel = "commission"
)

// RevenueStream is one named source of revenue within a business model.
type RevenueStream struct {
	Name          string       `json:"name" yaml:"name" mapstructure:"name"`
	Model         RevenueModel `json:"model" yaml:"model" mapstructure:"model"`
	MonthlyAmount float64      `json:"monthlyAmount" yaml:"monthlyAmount" mapstructure:"monthlyAmount"`
}

// CostItem is a single named cost line.
type CostItem struct {
	Name   string  `json:"name" yaml:"name" mapstructure:"name"`
	Amount float64 `json:"amount" yaml:"amount" mapstructure:"amount"`
}

// CostStructure groups cost line items by how they recur.
type CostStructure struct {
	Fixed    []CostItem `json:"fixedCosts" yaml:"fixedCosts" mapstructure:"fixedCosts"`
	Variable []CostItem `json:"variableCosts" yaml:"variableCosts" mapstructure:"variableCosts"`
	OneTime  []CostItem `json:"oneTimeCosts" yaml:"oneTimeCosts" mapstructure:"oneTimeCosts"`
}

// MonthlyTotal returns the combined fixed and variable cost per month.
// One-time costs are excluded since they do not recur.
func (cs CostStructure) MonthlyTotal() float64 {
	total := 0.0
	for _, item := range cs.Fixed {
		total += item.Amount
	}
	for _, item := range cs.Variable {
		total += item.Amount
	}
	return total
}

// BusinessModel is a complete archetype: revenue streams, cost structure, and
// reference metrics. Templates from the catalog are immutable; user edits
// operate on a Clone.
type BusinessModel struct {
	Type           Type               `json:"type" yaml:"type" mapstructure:"type"`
	RevenueStreams []RevenueStream    `json:"revenueStreams" yaml:"revenueStreams" mapstructure:"revenueStreams"`
	CostStructure  CostStructure      `json:"costStructure" yaml:"costStructure" mapstructure:"costStructure"`
	KeyMetrics     map[string]float64 `json:"keyMetrics" yaml:"keyMetrics" mapstructure:"keyMetrics"`
}

// Validate checks structural soundness: a known type, named streams and cost
// lines, and non-negative amounts.
func (bm BusinessModel) Validate() error {
	switch bm.Type {
	case TypeSaaS, TypeEcommerce, TypeMarketplace:
	default:
		return fmt.Errorf("unknown business model type %q", bm.Type)
	}

	for _, stream := range bm.RevenueStreams {
		if stream.Name == "" {
			return fmt.Errorf("business model %s has an unnamed revenue stream", bm.Type)
		}
		switch stream.Model {
		case RevenueRecurring, RevenueTransactional, RevenueCommission:
		default:
			return fmt.Errorf("revenue stream %s has unknown model %q", stream.Name, stream.Model)
		}
		if stream.MonthlyAmount < 0 {
			return fmt.Errorf("revenue stream %s has negative amount", stream.Name)
		}
	}

	groups := map[string][]CostItem{
		"fixed":    bm.CostStructure.Fixed,
		"variable": bm.CostStructure.Variable,
		"oneTime":  bm.CostStructure.OneTime,
	}
	for group, items := range groups {
		for _, item := range items {
			if item.Name == "" {
				return fmt.Errorf("business model %s has an unnamed %s cost item", bm.Type, group)
			}
			if item.Amount < 0 {
				return fmt.Errorf("%s cost %s has negative amount", group, item.Name)
			}
		}
	}

	return nil
}

// Clone returns a deep copy safe for user edits.
func (bm BusinessModel) Clone() BusinessModel {
	out := BusinessModel{Type: bm.Type}
	out.RevenueStreams = append([]RevenueStream(nil), bm.RevenueStreams...)
	out.CostStructure = CostStructure{
		Fixed:    append([]CostItem(nil), bm.CostStructure.Fixed...),
		Variable: append([]CostItem(nil), bm.CostStructure.Variable...),
		OneTime:  append([]CostItem(nil), bm.CostStructure.OneTime...),
	}
	if bm.KeyMetrics != nil {
		out.KeyMetrics = make(map[string]float64, len(bm.KeyMetrics))
		for k, v := range bm.KeyMetrics {
			out.KeyMetrics[k] = v
		}
	}
	return out
}

var catalog = map[Type]BusinessModel{
	TypeSaaS: {
		Type: TypeSaaS,
		RevenueStreams: []RevenueStream{
			{Name: "subscriptions", Model: RevenueRecurring, MonthlyAmount: 5000},
		},
		CostStructure: CostStructure{
			Fixed: []CostItem{
				{Name: "hosting", Amount: 500},
				{Name: "salaries", Amount: 8000},
			},
			Variable: []CostItem{
				{Name: "support", Amount: 400},
				{Name: "payment processing", Amount: 150},
			},
			OneTime: []CostItem{
				{Name: "incorporation", Amount: 1200},
			},
		},
		KeyMetrics: map[string]float64{
			"churnRate":       0.05,
			"acquisitionCost": 120,
			"lifetimeValue":   1800,
		},
	},
	TypeEcommerce: {
		Type: TypeEcommerce,
		RevenueStreams: []RevenueStream{
			{Name: "product sales", Model: RevenueTransactional, MonthlyAmount: 12000},
		},
		CostStructure: CostStructure{
			Fixed: []CostItem{
				{Name: "warehouse", Amount: 1500},
				{Name: "salaries", Amount: 6000},
			},
			Variable: []CostItem{
				{Name: "cost of goods", Amount: 5000},
				{Name: "shipping", Amount: 900},
			},
			OneTime: []CostItem{
				{Name: "storefront build", Amount: 4000},
			},
		},
		KeyMetrics: map[string]float64{
			"averageOrderValue": 45,
			"conversionRate":    0.021,
			"returnRate":        0.06,
		},
	},
	TypeMarketplace: {
		Type: TypeMarketplace,
		RevenueStreams: []RevenueStream{
			{Name: "take rate", Model: RevenueCommission, MonthlyAmount: 7000},
			{Name: "listing fees", Model: RevenueTransactional, MonthlyAmount: 800},
		},
		CostStructure: CostStructure{
			Fixed: []CostItem{
				{Name: "platform operations", Amount: 2500},
				{Name: "salaries", Amount: 9000},
			},
			Variable: []CostItem{
				{Name: "payment processing", Amount: 600},
				{Name: "trust and safety", Amount: 350},
			},
			OneTime: []CostItem{
				{Name: "legal setup", Amount: 2500},
			},
		},
		KeyMetrics: map[string]float64{
			"takeRate":        0.12,
			"supplyLiquidity": 0.4,
			"repeatBuyers":    0.3,
		},
	},
}

// Template returns a deep copy of the catalog entry for the given type.
func Template(t Type) (BusinessModel, error) {
	template, ok := catalog[t]
	if !ok {
		return BusinessModel{}, fmt.Errorf("no business model template for type %q", t)
	}
	return template.Clone(), nil
}

// Templates returns all catalog entries ordered by type name.
func Templates() []BusinessModel {
	types := make([]string, 0, len(catalog))
	for t := range catalog {
		types = append(types, string(t))
	}
	sort.Strings(types)

	templates := make([]BusinessModel, 0, len(types))
	for _, t := range types {
		templates = append(templates, catalog[Type(t)].Clone())
	}
	return templates
}
