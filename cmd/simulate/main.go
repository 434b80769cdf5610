package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/ingestion"
	"almond-yield-lab/internal/observability"
	"almond-yield-lab/internal/reporting"
	"almond-yield-lab/internal/simulation"
	"almond-yield-lab/internal/storage"
	chstore "almond-yield-lab/internal/storage/clickhouse"
	"almond-yield-lab/internal/storage/memory"
	pgstore "almond-yield-lab/internal/storage/postgres"
)

func main() {
	// Sweep parameters
	tminMonth := flag.Int("tmin-month", 2, "Calendar month for the minimum temperature predictor (1-12)")
	precipMonth := flag.Int("precip-month", 1, "Calendar month for the precipitation predictor (1-12)")
	samples := flag.Int("samples", 500, "Number of sensitivity simulations")
	seed := flag.Int64("seed", 42, "Random seed for parameter draws")
	yieldLo := flag.Float64("yield-lo", 1800, "Baseline yield range lower bound (lb/acre)")
	yieldHi := flag.Float64("yield-hi", 2200, "Baseline yield range upper bound (lb/acre)")
	priceLo := flag.Float64("price-lo", 1.2, "Baseline price range lower bound (USD/lb)")
	priceHi := flag.Float64("price-hi", 1.8, "Baseline price range upper bound (USD/lb)")
	startYear := flag.Int("start-year", 0, "Restrict climate record to years >= this (0 = no limit)")
	endYear := flag.Int("end-year", 0, "Restrict climate record to years <= this (0 = no limit)")
	baselineYield := flag.Float64("baseline-yield", 0, "Fixed baseline yield (lb/acre) for a single deterministic run (0 = sample)")
	baselinePrice := flag.Float64("baseline-price", 0, "Fixed baseline price (USD/lb) for a single deterministic run (0 = sample)")

	// Climate source
	input := flag.String("input", "", "Daily climate CSV file (alternative to a database)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")

	// Output
	outputJSON := flag.Bool("json", false, "Output as JSON instead of CSV")
	output := flag.String("output", "", "Output file (empty for stdout)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	sources := 0
	for _, set := range []bool{*input != "", *postgresDSN != "", *clickhouseDSN != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		logger.Fatal("Exactly one of --input, --postgres-dsn, --clickhouse-dsn is required")
	}

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	cfg := simulation.Config{
		TminMonth:   *tminMonth,
		PrecipMonth: *precipMonth,
		Samples:     *samples,
		YieldRange:  simulation.Range{Lo: *yieldLo, Hi: *yieldHi},
		PriceRange:  simulation.Range{Lo: *priceLo, Hi: *priceHi},
		Seed:        *seed,
	}

	// Fixed baselines collapse the sweep to one deterministic run: a single
	// sample over degenerate ranges always draws the fixed pair.
	if *baselineYield != 0 || *baselinePrice != 0 {
		if *baselineYield <= 0 || *baselinePrice <= 0 {
			logger.Fatal("--baseline-yield and --baseline-price must be set together and positive")
		}
		cfg.Samples = 1
		cfg.YieldRange = simulation.Range{Lo: *baselineYield, Hi: *baselineYield}
		cfg.PriceRange = simulation.Range{Lo: *baselinePrice, Hi: *baselinePrice}
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid sweep configuration: %v", err)
	}

	ctx := context.Background()

	store, cleanup, err := openClimateSource(ctx, logger, *input, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Open climate source: %v", err)
	}
	defer cleanup()

	table, err := runSweep(ctx, simulation.NewRunner(store), cfg, *startYear, *endYear)
	if err != nil {
		logger.Fatalf("Sweep failed: %v", err)
	}
	logger.Printf("Sweep complete: %d simulations, %d rows", cfg.Samples, len(table))

	if err := writeTable(table, *output, *outputJSON); err != nil {
		logger.Fatalf("Write output: %v", err)
	}
}

// openClimateSource builds a ClimateStore from exactly one of the source
// flags. A CSV input is loaded into a memory store up front.
func openClimateSource(ctx context.Context, logger *log.Logger, input, postgresDSN, clickhouseDSN string) (storage.ClimateStore, func(), error) {
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, func() {}, err
		}
		defer f.Close()

		store := memory.NewClimateStore()
		count, err := ingestion.NewLoader(store).Load(ctx, f)
		if err != nil {
			return nil, func() {}, fmt.Errorf("load %s: %w", input, err)
		}
		logger.Printf("Loaded %d daily climate records from %s", count, input)
		return store, func() {}, nil
	}

	if postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect to postgres: %w", err)
		}
		return pgstore.NewClimateStore(pool), func() { pool.Close() }, nil
	}

	conn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		return nil, func() {}, fmt.Errorf("connect to clickhouse: %w", err)
	}
	return chstore.NewClimateStore(conn), func() { conn.Close() }, nil
}

// runSweep dispatches to the year-restricted variant when a range is given.
func runSweep(ctx context.Context, runner *simulation.Runner, cfg simulation.Config, startYear, endYear int) ([]*domain.SimulationRecord, error) {
	if startYear == 0 && endYear == 0 {
		return runner.Run(ctx, cfg)
	}
	if endYear == 0 {
		endYear = 9999
	}
	return runner.RunYears(ctx, cfg, startYear, endYear)
}

// writeTable renders the simulation table to the chosen destination.
func writeTable(table []*domain.SimulationRecord, output string, asJSON bool) error {
	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	_, err := fmt.Fprint(out, reporting.RenderSimulationCSV(table))
	return err
}
