// Package constants provides shared constants for the finplan application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DefaultCaptureRate is the fraction of perceived value charged as price
	// when no capture rate is supplied to value-based pricing.
	DefaultCaptureRate = 0.10

	// PremiumPricingMultiplier is applied to the competitor average for the
	// premium strategy.
	PremiumPricingMultiplier = 1.2

	// UndercutPricingMultiplier is applied to the competitor average for the
	// undercut strategy.
	UndercutPricingMultiplier = 0.9

	// FundingSafetyBuffer pads the worst-case cash shortfall when estimating
	// total capital required.
	FundingSafetyBuffer = 1.2

	// DefaultTargetRunwayMonths is the runway target used when the caller
	// does not supply one.
	DefaultTargetRunwayMonths = 18.0

	// MaxRunwayMonths caps the reported runway for models that never burn
	// cash so the value stays representable in JSON.
	MaxRunwayMonths = 120.0

	// NominalFundingMonths is the number of months of average expenses used
	// as the nominal funding minimum for cash-positive projections.
	NominalFundingMonths = 3.0

	// MilestoneQuarters is the number of funding checkpoints derived from a
	// projection.
	MilestoneQuarters = 4
)

// Advisor thresholds
const (
	// LowGrowthThreshold is the average period-over-period revenue growth
	// rate below which the revenue rule fires.
	LowGrowthThreshold = 0.05

	// LowMarginThreshold is the margin below which the pricing rule fires.
	LowMarginThreshold = 0.20

	// LateBreakEvenFraction marks a break-even as late when it lands beyond
	// this fraction of the projection length.
	LateBreakEvenFraction = 0.75
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default plan file name
	DefaultConfigFile = "plan.yaml"

	// ExampleConfigFile is the example plan file name
	ExampleConfigFile = "plan.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML
	// plan files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
