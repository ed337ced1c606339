// Package config defines the data structures related to a plan file and
// includes functions for loading and validating the configuration.
package config

import (
	"fmt"
	"io"

	"github.com/launchessentials/finplan/pkg/businessmodel"
	"github.com/launchessentials/finplan/pkg/pricing"
	"github.com/launchessentials/finplan/pkg/projection"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for one planning run.
type Configuration struct {
	Business BusinessConfig   `mapstructure:"business" yaml:"business"`
	CashFlow projection.Input `mapstructure:"cashFlow" yaml:"cashFlow"`
	Pricing  PricingConfig    `mapstructure:"pricing" yaml:"pricing,omitempty"`
	Funding  FundingConfig    `mapstructure:"funding" yaml:"funding,omitempty"`
	Logging  LoggingConfig    `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig     `mapstructure:"output" yaml:"output,omitempty"`
}

// BusinessConfig selects a catalog template by name or supplies a full
// inline business model. An inline model takes precedence.
type BusinessConfig struct {
	Template string                       `mapstructure:"template" yaml:"template,omitempty"`
	Model    *businessmodel.BusinessModel `mapstructure:"model" yaml:"model,omitempty"`
}

// PricingConfig carries the inputs for the pricing calculators.
type PricingConfig struct {
	Strategy         string    `mapstructure:"strategy" yaml:"strategy,omitempty"`
	UnitCost         float64   `mapstructure:"unitCost" yaml:"unitCost,omitempty"`
	MarginFraction   float64   `mapstructure:"marginFraction" yaml:"marginFraction,omitempty"`
	PerceivedValue   float64   `mapstructure:"perceivedValue" yaml:"perceivedValue,omitempty"`
	CaptureRate      float64   `mapstructure:"captureRate" yaml:"captureRate,omitempty"`
	CompetitorPrices []float64 `mapstructure:"competitorPrices" yaml:"competitorPrices,omitempty"`
}

// FundingConfig carries funding estimator parameters.
type FundingConfig struct {
	TargetRunwayMonths float64 `mapstructure:"targetRunwayMonths" yaml:"targetRunwayMonths,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// plan there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted plan from an in-memory
// source, used by the HTTP API.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ResolveModel returns the business model the plan operates on: the inline
// model when present, otherwise the named catalog template. The result is
// validated and safe to edit.
func (conf *Configuration) ResolveModel() (businessmodel.BusinessModel, error) {
	if conf.Business.Model != nil {
		model := conf.Business.Model.Clone()
		if err := model.Validate(); err != nil {
			return businessmodel.BusinessModel{}, err
		}
		return model, nil
	}

	if conf.Business.Template == "" {
		return businessmodel.BusinessModel{}, fmt.Errorf("plan must name a business template or provide an inline model")
	}
	return businessmodel.Template(businessmodel.Type(conf.Business.Template))
}

// ValidateConfiguration checks the plan for conditions worth surfacing to
// the user without blocking the run. It returns human-readable warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.CashFlow.Revenue) != len(conf.CashFlow.Expenses) {
		warnings = append(warnings, fmt.Sprintf(
			"revenue has %d periods but expenses has %d; the projection covers only the first %d",
			len(conf.CashFlow.Revenue), len(conf.CashFlow.Expenses),
			min(len(conf.CashFlow.Revenue), len(conf.CashFlow.Expenses))))
	}

	if conf.CashFlow.Periods > 0 && conf.CashFlow.Periods != len(conf.CashFlow.Revenue) {
		warnings = append(warnings, fmt.Sprintf(
			"declared periods (%d) does not match the revenue series length (%d)",
			conf.CashFlow.Periods, len(conf.CashFlow.Revenue)))
	}

	switch conf.CashFlow.Timeframe {
	case "", projection.TimeframeMonthly, projection.TimeframeQuarterly, projection.TimeframeYearly:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown timeframe %q; treating periods as monthly", conf.CashFlow.Timeframe))
	}

	if conf.CashFlow.StartingCash < 0 {
		warnings = append(warnings, "starting cash is negative; the projection begins under water")
	}

	if conf.Pricing.Strategy != "" {
		if _, err := pricing.ParseStrategy(conf.Pricing.Strategy); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if conf.Funding.TargetRunwayMonths < 0 {
		warnings = append(warnings, "target runway must be positive; using the default")
	}

	return warnings
}
