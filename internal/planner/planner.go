// Package planner ties the financial planning step together: it resolves the
// business model, runs the pricing calculators, the cash-flow projector, the
// funding estimator, and the advisor, and assembles the save payload the
// wizard persists.
package planner

import (
	"encoding/json"
	"time"

	"github.com/launchessentials/finplan/internal/advisor"
	"github.com/launchessentials/finplan/internal/config"
	"github.com/launchessentials/finplan/pkg/businessmodel"
	"github.com/launchessentials/finplan/pkg/funding"
	"github.com/launchessentials/finplan/pkg/pricing"
	"github.com/launchessentials/finplan/pkg/projection"
	"go.uber.org/zap"
)

// PricingResult holds the prices computed from the plan's pricing inputs.
type PricingResult struct {
	Strategy         pricing.Strategy `json:"strategy,omitempty"`
	CostPlusPrice    float64          `json:"costPlusPrice"`
	ValueBasedPrice  float64          `json:"valueBasedPrice"`
	CompetitivePrice float64          `json:"competitivePrice"`
}

// Result is the combined output of one planning run.
type Result struct {
	Model       businessmodel.BusinessModel `json:"businessModel"`
	Pricing     *PricingResult              `json:"pricing,omitempty"`
	Projection  projection.Projection       `json:"projection"`
	Funding     funding.Requirements        `json:"fundingRequirements"`
	Suggestions []advisor.Suggestion        `json:"optimizations"`
}

// Plan executes the full analysis for one plan configuration.
func Plan(logger *zap.Logger, conf config.Configuration) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	model, err := conf.ResolveModel()
	if err != nil {
		return Result{}, err
	}

	var priced *PricingResult
	if conf.Pricing.Strategy != "" {
		strategy, err := pricing.ParseStrategy(conf.Pricing.Strategy)
		if err != nil {
			return Result{}, err
		}
		competitive, err := pricing.Competitive(conf.Pricing.CompetitorPrices, strategy)
		if err != nil {
			return Result{}, err
		}

		captureRate := conf.Pricing.CaptureRate
		valueBased := pricing.ValueBasedDefault(conf.Pricing.PerceivedValue)
		if captureRate > 0 {
			valueBased = pricing.ValueBased(conf.Pricing.PerceivedValue, captureRate)
		}

		priced = &PricingResult{
			Strategy:         strategy,
			CostPlusPrice:    pricing.CostPlus(conf.Pricing.UnitCost, conf.Pricing.MarginFraction),
			ValueBasedPrice:  valueBased,
			CompetitivePrice: competitive,
		}
	}

	proj := projection.Calculate(model, conf.CashFlow)

	target := conf.Funding.TargetRunwayMonths
	var requirements funding.Requirements
	if target > 0 {
		requirements = funding.Estimate(proj, target)
	} else {
		requirements = funding.EstimateDefault(proj)
	}

	suggestions := advisor.Analyze(model, proj)

	logger.Debug("plan computed",
		zap.String("op", "planner.Plan"),
		zap.String("model", string(model.Type)),
		zap.Int("periods", len(proj.Profit)),
		zap.Float64("roi", proj.ROI),
		zap.Int("suggestions", len(suggestions)),
	)

	return Result{
		Model:       model,
		Pricing:     priced,
		Projection:  proj,
		Funding:     requirements,
		Suggestions: suggestions,
	}, nil
}

// SaveRecord is the opaque payload the wizard hands to the persistence
// collaborator, keyed externally by user/project/phase.
type SaveRecord struct {
	BusinessModel       businessmodel.BusinessModel `json:"businessModel"`
	CashFlowData        projection.Input            `json:"cashFlowData"`
	PricingStrategy     string                      `json:"pricingStrategy,omitempty"`
	Projection          projection.Projection       `json:"projection"`
	FundingRequirements funding.Requirements        `json:"fundingRequirements"`
	Optimizations       []advisor.Suggestion        `json:"optimizations"`
	CompletedAt         time.Time                   `json:"completedAt"`
}

// SaveRecord assembles the persistence payload for this result.
func (r Result) SaveRecord(in projection.Input, completedAt time.Time) SaveRecord {
	record := SaveRecord{
		BusinessModel:       r.Model,
		CashFlowData:        in,
		Projection:          r.Projection,
		FundingRequirements: r.Funding,
		Optimizations:       r.Suggestions,
		CompletedAt:         completedAt.UTC(),
	}
	if r.Pricing != nil {
		record.PricingStrategy = string(r.Pricing.Strategy)
	}
	return record
}

// MarshalSaveRecord serializes the record as the JSON blob the persistence
// collaborator stores.
func MarshalSaveRecord(record SaveRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}
