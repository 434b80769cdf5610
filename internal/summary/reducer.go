// Package summary reduces the long-form simulation table to grouped
// descriptive statistics: per year, per stratum, and per simulation.
package summary

import (
	"errors"
	"fmt"
	"sort"

	"almond-yield-lab/internal/domain"
)

// ErrUnknownYear is returned when the stratification assignment lacks a year
// present in the simulation table. Silent loss of rows would skew the
// stratified statistics, so the gap is an error, not a default bucket.
var ErrUnknownYear = errors.New("year missing from bucket assignment")

// YearStats holds profit statistics for one year across all simulations.
type YearStats struct {
	MeanProfit   float64
	MedianProfit float64
	MinProfit    float64
	MaxProfit    float64
}

// ParameterStats holds the per-simulation view: the drawn parameters and the
// mean profit across years for that draw.
type ParameterStats struct {
	SimulationID    int
	BaselineYieldLb float64
	BaselinePrice   float64
	MeanProfit      float64
}

// YearlySummary groups the simulation table by year and computes profit
// statistics across all simulations for each year.
func YearlySummary(table []*domain.SimulationRecord) map[int]YearStats {
	profitsByYear := make(map[int][]float64)
	for _, row := range table {
		profitsByYear[row.Year] = append(profitsByYear[row.Year], row.Profit)
	}

	stats := make(map[int]YearStats, len(profitsByYear))
	for year, profits := range profitsByYear {
		min, max := computeMinMax(profits)
		stats[year] = YearStats{
			MeanProfit:   computeMean(profits),
			MedianProfit: computeMedian(profits),
			MinProfit:    min,
			MaxProfit:    max,
		}
	}
	return stats
}

// Stratify partitions the table's years into named buckets via the supplied
// year-to-label assignment and computes a yearly summary within each bucket.
// The assignment is dataset-specific curation owned by the caller.
// Returns ErrUnknownYear (naming every offending year) if the table holds a
// year absent from the assignment.
func Stratify(table []*domain.SimulationRecord, buckets map[int]string) (map[string]map[int]YearStats, error) {
	byLabel := make(map[string][]*domain.SimulationRecord)
	unknown := make(map[int]struct{})
	for _, row := range table {
		label, ok := buckets[row.Year]
		if !ok {
			unknown[row.Year] = struct{}{}
			continue
		}
		byLabel[label] = append(byLabel[label], row)
	}

	if len(unknown) > 0 {
		years := make([]int, 0, len(unknown))
		for y := range unknown {
			years = append(years, y)
		}
		sort.Ints(years)
		return nil, fmt.Errorf("%w: %v", ErrUnknownYear, years)
	}

	result := make(map[string]map[int]YearStats, len(byLabel))
	for label, rows := range byLabel {
		result[label] = YearlySummary(rows)
	}
	return result, nil
}

// ParameterSummary groups the table by simulation id and computes the mean
// profit across years for each draw, attached to the drawn parameters.
// Output is ordered by simulation id ASC.
func ParameterSummary(table []*domain.SimulationRecord) []ParameterStats {
	type acc struct {
		yieldLb float64
		priceLb float64
		profits []float64
	}

	bySim := make(map[int]*acc)
	for _, row := range table {
		a, ok := bySim[row.SimulationID]
		if !ok {
			a = &acc{yieldLb: row.BaselineYieldLb, priceLb: row.BaselinePrice}
			bySim[row.SimulationID] = a
		}
		a.profits = append(a.profits, row.Profit)
	}

	ids := make([]int, 0, len(bySim))
	for id := range bySim {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	stats := make([]ParameterStats, len(ids))
	for i, id := range ids {
		a := bySim[id]
		stats[i] = ParameterStats{
			SimulationID:    id,
			BaselineYieldLb: a.yieldLb,
			BaselinePrice:   a.priceLb,
			MeanProfit:      computeMean(a.profits),
		}
	}
	return stats
}
