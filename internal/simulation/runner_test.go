package simulation

import (
	"context"
	"errors"
	"testing"

	"almond-yield-lab/internal/climate"
	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/storage/memory"
)

func seedClimateStore(t *testing.T, years ...int) *memory.ClimateStore {
	t.Helper()
	ctx := context.Background()
	store := memory.NewClimateStore()

	var records []*domain.DailyClimateRecord
	for _, year := range years {
		records = append(records,
			&domain.DailyClimateRecord{Day: 1, Month: 1, Year: year, TminC: 4.0, PrecipMm: 12.0},
			&domain.DailyClimateRecord{Day: 2, Month: 1, Year: year, TminC: 6.0, PrecipMm: 8.0},
			&domain.DailyClimateRecord{Day: 1, Month: 2, Year: year, TminC: 7.0, PrecipMm: 3.0},
		)
	}
	if err := store.InsertBulk(ctx, records); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	return store
}

func runnerConfig(samples int) Config {
	return Config{
		TminMonth:   2,
		PrecipMonth: 1,
		Samples:     samples,
		YieldRange:  Range{Lo: 1800, Hi: 2200},
		PriceRange:  Range{Lo: 1.2, Hi: 1.8},
		Seed:        42,
	}
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	store := seedClimateStore(t, 1999, 2000, 2001)
	runner := NewRunner(store)

	table, err := runner.Run(ctx, runnerConfig(10))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(table) != 10*3 {
		t.Fatalf("Expected 30 rows, got %d", len(table))
	}
}

func TestRunner_MatchesDirectRun(t *testing.T) {
	ctx := context.Background()
	store := seedClimateStore(t, 1999, 2000)
	runner := NewRunner(store)
	cfg := runnerConfig(5)

	fromStore, err := runner.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	records, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	direct, err := Run(cfg, records)
	if err != nil {
		t.Fatalf("direct Run failed: %v", err)
	}

	if len(fromStore) != len(direct) {
		t.Fatalf("Row count mismatch: %d vs %d", len(fromStore), len(direct))
	}
	for i := range fromStore {
		if *fromStore[i] != *direct[i] {
			t.Errorf("Row %d mismatch: %+v vs %+v", i, fromStore[i], direct[i])
		}
	}
}

func TestRunner_RunYears(t *testing.T) {
	ctx := context.Background()
	store := seedClimateStore(t, 1998, 1999, 2000, 2001)
	runner := NewRunner(store)

	table, err := runner.RunYears(ctx, runnerConfig(4), 1999, 2000)
	if err != nil {
		t.Fatalf("RunYears failed: %v", err)
	}

	if len(table) != 4*2 {
		t.Fatalf("Expected 8 rows, got %d", len(table))
	}
	for _, rec := range table {
		if rec.Year < 1999 || rec.Year > 2000 {
			t.Errorf("Row outside requested year range: %d", rec.Year)
		}
	}
}

func TestRunner_EmptyStore(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(memory.NewClimateStore())

	_, err := runner.Run(ctx, runnerConfig(3))
	if !errors.Is(err, climate.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}
