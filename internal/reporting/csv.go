package reporting

import (
	"fmt"
	"strings"

	"almond-yield-lab/internal/domain"
)

// RenderSimulationCSV renders the full simulation table as CSV string.
func RenderSimulationCSV(table []*domain.SimulationRecord) string {
	var sb strings.Builder

	// Header
	sb.WriteString("simulation_id,year,baseline_yield_lb,baseline_price,tmin_mean,precip_sum,")
	sb.WriteString("yield_anomaly,actual_yield,profit\n")

	// Rows
	for _, rec := range table {
		sb.WriteString(fmt.Sprintf("%d,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			rec.SimulationID,
			rec.Year,
			rec.BaselineYieldLb,
			rec.BaselinePrice,
			rec.TminMean,
			rec.PrecipSum,
			rec.YieldAnomaly,
			rec.ActualYield,
			rec.Profit,
		))
	}

	return sb.String()
}

// RenderParameterCSV renders parameter sensitivity rows as CSV string.
func RenderParameterCSV(rows []ParameterSensitivityRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("simulation_id,baseline_yield_lb,baseline_price,mean_profit\n")

	// Rows
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%d,%.6f,%.6f,%.6f\n",
			row.SimulationID,
			row.BaselineYieldLb,
			row.BaselinePrice,
			row.MeanProfit,
		))
	}

	return sb.String()
}
