package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"almond-yield-lab/internal/ingestion"
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

	// Climate source
	input := flag.String("input", "", "Daily climate CSV file (alternative to a database)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")

	// Output
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	strata := flag.String("strata", "", "Period strata, e.g. \"early=1980-1996,late=1997-2003\" (empty to skip)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	sources := 0
	for _, set := range []bool{*input != "", *postgresDSN != "", *clickhouseDSN != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		logger.Fatal("Exactly one of --input, --postgres-dsn, --clickhouse-dsn is required")
	}

	cfg := simulation.Config{
		TminMonth:   *tminMonth,
		PrecipMonth: *precipMonth,
		Samples:     *samples,
		YieldRange:  simulation.Range{Lo: *yieldLo, Hi: *yieldHi},
		PriceRange:  simulation.Range{Lo: *priceLo, Hi: *priceHi},
		Seed:        *seed,
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid sweep configuration: %v", err)
	}

	buckets, err := parseStrata(*strata)
	if err != nil {
		logger.Fatalf("Parse --strata: %v", err)
	}

	ctx := context.Background()

	store, cleanup, err := openClimateSource(ctx, logger, *input, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Open climate source: %v", err)
	}
	defer cleanup()

	table, err := simulation.NewRunner(store).Run(ctx, cfg)
	if err != nil {
		logger.Fatalf("Sweep failed: %v", err)
	}

	report, err := reporting.NewGenerator().Generate(cfg, table, buckets)
	if err != nil {
		logger.Fatalf("Generate report: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Fatalf("Create output directory: %v", err)
	}

	files := map[string]string{
		"REPORT.md":                 reporting.RenderMarkdown(report),
		"SIMULATIONS.csv":           reporting.RenderSimulationCSV(table),
		"PARAMETER_SENSITIVITY.csv": reporting.RenderParameterCSV(report.ParameterSensitivity),
	}
	for name, content := range files {
		path := filepath.Join(*outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			logger.Fatalf("Write %s: %v", path, err)
		}
	}

	fmt.Println("Sensitivity report generated successfully:")
	fmt.Printf("  - %s/REPORT.md\n", *outputDir)
	fmt.Printf("  - %s/SIMULATIONS.csv\n", *outputDir)
	fmt.Printf("  - %s/PARAMETER_SENSITIVITY.csv\n", *outputDir)
}

// parseStrata parses "label=start-end,label=start-end" into a year->label map.
// Ranges are inclusive and must not overlap.
func parseStrata(spec string) (map[int]string, error) {
	if spec == "" {
		return nil, nil
	}

	buckets := make(map[int]string)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		labelRange := strings.SplitN(part, "=", 2)
		if len(labelRange) != 2 || labelRange[0] == "" {
			return nil, fmt.Errorf("invalid stratum %q, want label=start-end", part)
		}
		bounds := strings.SplitN(labelRange[1], "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid stratum range %q, want start-end", labelRange[1])
		}

		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start year %q: %w", bounds[0], err)
		}
		end, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end year %q: %w", bounds[1], err)
		}
		if end < start {
			return nil, fmt.Errorf("stratum %q: end year before start year", part)
		}

		for year := start; year <= end; year++ {
			if existing, ok := buckets[year]; ok {
				return nil, fmt.Errorf("year %d assigned to both %q and %q", year, existing, labelRange[0])
			}
			buckets[year] = labelRange[0]
		}
	}
	return buckets, nil
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
