package simulation

import (
	"context"
	"fmt"
	"time"

	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/observability"
	"almond-yield-lab/internal/storage"
)

// Runner executes sweeps against a stored climate record.
type Runner struct {
	climateStore storage.ClimateStore
}

// NewRunner creates a store-backed sweep runner.
func NewRunner(climateStore storage.ClimateStore) *Runner {
	return &Runner{climateStore: climateStore}
}

// Run loads the full daily climate record from storage and executes the
// sweep. The loaded record is read-only from the engine's point of view.
func (r *Runner) Run(ctx context.Context, cfg Config) ([]*domain.SimulationRecord, error) {
	records, err := r.climateStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load climate record: %w", err)
	}

	start := time.Now()
	table, err := Run(cfg, records)
	if err != nil {
		observability.RecordSweepRun("error", time.Since(start).Seconds())
		return nil, err
	}

	observability.RecordSweepRun("success", time.Since(start).Seconds())
	observability.RecordSimulations(cfg.Samples)
	return table, nil
}

// RunYears is like Run but restricts the climate record to [startYear, endYear].
func (r *Runner) RunYears(ctx context.Context, cfg Config, startYear, endYear int) ([]*domain.SimulationRecord, error) {
	records, err := r.climateStore.GetByYearRange(ctx, startYear, endYear)
	if err != nil {
		return nil, fmt.Errorf("load climate record: %w", err)
	}

	start := time.Now()
	table, err := Run(cfg, records)
	if err != nil {
		observability.RecordSweepRun("error", time.Since(start).Seconds())
		return nil, err
	}

	observability.RecordSweepRun("success", time.Since(start).Seconds())
	observability.RecordSimulations(cfg.Samples)
	return table, nil
}
