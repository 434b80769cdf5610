package reporting

import (
	"errors"
	"sort"
	"time"

	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/observability"
	"almond-yield-lab/internal/simulation"
	"almond-yield-lab/internal/summary"
)

// ErrEmptyTable indicates a report was requested for an empty simulation table.
var ErrEmptyTable = errors.New("simulation table is empty")

// Generator produces reports from sweep output.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report for one sweep. The buckets map assigns
// years to period labels; pass nil to skip stratification.
func (g *Generator) Generate(cfg simulation.Config, table []*domain.SimulationRecord, buckets map[int]string) (*Report, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}

	yearly := summary.YearlySummary(table)
	params := summary.ParameterSummary(table)

	var strata []StratumRow
	if buckets != nil {
		grouped, err := summary.Stratify(table, buckets)
		if err != nil {
			return nil, err
		}
		strata = buildStratumRows(grouped)
	}

	report := &Report{
		GeneratedAt:          g.now(),
		SimulationCount:      len(params),
		YearCount:            len(yearly),
		RunConfig:            buildRunConfig(cfg),
		DataSummary:          buildDataSummary(table, yearly),
		YearlyProfit:         buildYearlyRows(yearly),
		Strata:               strata,
		ParameterSensitivity: buildParameterRows(params),
	}

	observability.RecordReportGenerated()
	return report, nil
}

func buildRunConfig(cfg simulation.Config) RunConfigSection {
	return RunConfigSection{
		TminMonth:   cfg.TminMonth,
		PrecipMonth: cfg.PrecipMonth,
		Samples:     cfg.Samples,
		Seed:        cfg.Seed,
		YieldLo:     cfg.YieldRange.Lo,
		YieldHi:     cfg.YieldRange.Hi,
		PriceLo:     cfg.PriceRange.Lo,
		PriceHi:     cfg.PriceRange.Hi,
	}
}

func buildDataSummary(table []*domain.SimulationRecord, yearly map[int]summary.YearStats) DataSummary {
	yearStart, yearEnd := 0, 0
	first := true
	for year := range yearly {
		if first {
			yearStart, yearEnd = year, year
			first = false
			continue
		}
		if year < yearStart {
			yearStart = year
		}
		if year > yearEnd {
			yearEnd = year
		}
	}

	return DataSummary{
		TotalRows: len(table),
		YearStart: yearStart,
		YearEnd:   yearEnd,
	}
}

func buildYearlyRows(yearly map[int]summary.YearStats) []YearlyProfitRow {
	rows := make([]YearlyProfitRow, 0, len(yearly))
	for year, stats := range yearly {
		rows = append(rows, YearlyProfitRow{
			Year:         year,
			MeanProfit:   stats.MeanProfit,
			MedianProfit: stats.MedianProfit,
			MinProfit:    stats.MinProfit,
			MaxProfit:    stats.MaxProfit,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})
	return rows
}

func buildStratumRows(grouped map[string]map[int]summary.YearStats) []StratumRow {
	var rows []StratumRow
	for label, years := range grouped {
		for year, stats := range years {
			rows = append(rows, StratumRow{
				Label:        label,
				Year:         year,
				MeanProfit:   stats.MeanProfit,
				MedianProfit: stats.MedianProfit,
				MinProfit:    stats.MinProfit,
				MaxProfit:    stats.MaxProfit,
			})
		}
	}

	// Sort by (label, year)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Label != rows[j].Label {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

func buildParameterRows(params []summary.ParameterStats) []ParameterSensitivityRow {
	rows := make([]ParameterSensitivityRow, len(params))
	for i, p := range params {
		rows[i] = ParameterSensitivityRow{
			SimulationID:    p.SimulationID,
			BaselineYieldLb: p.BaselineYieldLb,
			BaselinePrice:   p.BaselinePrice,
			MeanProfit:      p.MeanProfit,
		}
	}
	return rows
}
