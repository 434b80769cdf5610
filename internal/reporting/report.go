package reporting

import "time"

// Report represents the sensitivity sweep report structure.
type Report struct {
	// Metadata
	GeneratedAt     time.Time
	SimulationCount int
	YearCount       int

	// Run Configuration
	RunConfig RunConfigSection

	// Data Summary
	DataSummary DataSummary

	// Yearly Profit (sorted by year)
	YearlyProfit []YearlyProfitRow

	// Strata (period label -> yearly stats), empty when no stratification requested
	Strata []StratumRow

	// Parameter Sensitivity (sorted by simulation_id)
	ParameterSensitivity []ParameterSensitivityRow
}

// RunConfigSection echoes the sweep configuration that produced the report.
type RunConfigSection struct {
	TminMonth   int
	PrecipMonth int
	Samples     int
	Seed        int64
	YieldLo     float64
	YieldHi     float64
	PriceLo     float64
	PriceHi     float64
}

// DataSummary contains data description.
type DataSummary struct {
	TotalRows int
	YearStart int
	YearEnd   int
}

// YearlyProfitRow represents one row in the yearly profit table.
type YearlyProfitRow struct {
	Year         int
	MeanProfit   float64
	MedianProfit float64
	MinProfit    float64
	MaxProfit    float64
}

// StratumRow represents yearly stats filed under a period label.
type StratumRow struct {
	Label        string
	Year         int
	MeanProfit   float64
	MedianProfit float64
	MinProfit    float64
	MaxProfit    float64
}

// ParameterSensitivityRow links one parameter draw to its mean profit.
type ParameterSensitivityRow struct {
	SimulationID    int
	BaselineYieldLb float64
	BaselinePrice   float64
	MeanProfit      float64
}
