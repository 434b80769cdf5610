package model

import (
	"fmt"
	"math"

	"almond-yield-lab/internal/domain"
)

// LbPerAcreToTon converts lb/acre to ton/acre. The same factor converts a
// per-lb price to a per-ton price by division.
const LbPerAcreToTon = 0.0005

// ComputeProfit maps each yield record to its economic outcome under the
// given baselines: actual yield (ton/acre) is the baseline yield plus the
// anomaly, profit (USD/acre) is actual yield times the per-ton price.
// Actual yield is not clamped at zero. Output preserves row
// count and order of the input.
// Returns ErrInvalidParameter if either baseline is non-positive or non-finite.
func ComputeProfit(yields []*domain.YieldRecord, baselineYieldLb, baselinePriceLb float64) ([]*domain.ProfitRecord, error) {
	if err := validateBaseline("baseline yield", baselineYieldLb); err != nil {
		return nil, err
	}
	if err := validateBaseline("baseline price", baselinePriceLb); err != nil {
		return nil, err
	}

	baselineYieldTon := baselineYieldLb * LbPerAcreToTon
	pricePerTon := baselinePriceLb / LbPerAcreToTon

	records := make([]*domain.ProfitRecord, len(yields))
	for i, y := range yields {
		actualYield := baselineYieldTon + y.YieldAnomaly
		records[i] = &domain.ProfitRecord{
			YieldRecord: *y,
			ActualYield: actualYield,
			Profit:      actualYield * pricePerTon,
		}
	}

	return records, nil
}

// validateBaseline rejects non-positive and non-finite parameter values.
func validateBaseline(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s %f", ErrInvalidParameter, name, v)
	}
	return nil
}
