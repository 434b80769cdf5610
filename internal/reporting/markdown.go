package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Almond Profit Sensitivity Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Simulations: %d | Years: %d\n\n", r.SimulationCount, r.YearCount))

	// Run Configuration
	sb.WriteString("## Run Configuration\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Tmin Month | %d |\n", r.RunConfig.TminMonth))
	sb.WriteString(fmt.Sprintf("| Precip Month | %d |\n", r.RunConfig.PrecipMonth))
	sb.WriteString(fmt.Sprintf("| Samples | %d |\n", r.RunConfig.Samples))
	sb.WriteString(fmt.Sprintf("| Seed | %d |\n", r.RunConfig.Seed))
	sb.WriteString(fmt.Sprintf("| Baseline Yield Range (lb/acre) | %.2f - %.2f |\n", r.RunConfig.YieldLo, r.RunConfig.YieldHi))
	sb.WriteString(fmt.Sprintf("| Baseline Price Range (USD/lb) | %.2f - %.2f |\n", r.RunConfig.PriceLo, r.RunConfig.PriceHi))
	sb.WriteString("\n")

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Rows | %d |\n", r.DataSummary.TotalRows))
	sb.WriteString(fmt.Sprintf("| Year Range Start | %d |\n", r.DataSummary.YearStart))
	sb.WriteString(fmt.Sprintf("| Year Range End | %d |\n", r.DataSummary.YearEnd))
	sb.WriteString("\n")

	// Yearly Profit
	sb.WriteString("## Yearly Profit\n\n")
	if len(r.YearlyProfit) > 0 {
		sb.WriteString("| Year | Mean | Median | Min | Max |\n")
		sb.WriteString("|------|------|--------|-----|-----|\n")
		for _, row := range r.YearlyProfit {
			sb.WriteString(fmt.Sprintf("| %d | %.4f | %.4f | %.4f | %.4f |\n",
				row.Year, row.MeanProfit, row.MedianProfit, row.MinProfit, row.MaxProfit))
		}
	} else {
		sb.WriteString("No yearly profit data available.\n")
	}
	sb.WriteString("\n")

	// Strata
	sb.WriteString("## Period Strata\n\n")
	if len(r.Strata) > 0 {
		sb.WriteString("| Period | Year | Mean | Median | Min | Max |\n")
		sb.WriteString("|--------|------|------|--------|-----|-----|\n")
		for _, row := range r.Strata {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %.4f |\n",
				row.Label, row.Year, row.MeanProfit, row.MedianProfit, row.MinProfit, row.MaxProfit))
		}
	} else {
		sb.WriteString("No stratification requested.\n")
	}
	sb.WriteString("\n")

	// Parameter Sensitivity
	sb.WriteString("## Parameter Sensitivity\n\n")
	if len(r.ParameterSensitivity) > 0 {
		sb.WriteString("| Simulation | Baseline Yield (lb/acre) | Baseline Price (USD/lb) | Mean Profit |\n")
		sb.WriteString("|------------|--------------------------|-------------------------|-------------|\n")
		for _, row := range r.ParameterSensitivity {
			sb.WriteString(fmt.Sprintf("| %d | %.2f | %.4f | %.4f |\n",
				row.SimulationID, row.BaselineYieldLb, row.BaselinePrice, row.MeanProfit))
		}
	} else {
		sb.WriteString("No parameter sensitivity data available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
