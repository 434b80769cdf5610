package clickhouse

import (
	"context"
	"fmt"

	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/storage"
)

// ClimateStore implements storage.ClimateStore using ClickHouse.
type ClimateStore struct {
	conn *Conn
}

// NewClimateStore creates a new ClimateStore.
func NewClimateStore(conn *Conn) *ClimateStore {
	return &ClimateStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ClimateStore = (*ClimateStore)(nil)

// InsertBulk adds multiple daily records. MergeTree does not enforce
// uniqueness at insert time, so duplicates are detected with explicit checks
// before the batch is sent; the entire batch fails on any duplicate.
func (s *ClimateStore) InsertBulk(ctx context.Context, records []*domain.DailyClimateRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Validate and check for intra-batch duplicates.
	type key struct {
		year  int
		month int
		day   int
	}
	seen := make(map[key]struct{}, len(records))
	for _, r := range records {
		if r == nil || r.Validate() != nil {
			return storage.ErrInvalidInput
		}
		k := key{r.Year, r.Month, r.Day}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing rows.
	for _, r := range records {
		exists, err := s.exists(ctx, r.Year, r.Month, r.Day)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO daily_climate (year, month, day, tmin_c, precip_mm)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range records {
		err = batch.Append(
			int32(r.Year), int32(r.Month), int32(r.Day),
			r.TminC, r.PrecipMm,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetAll retrieves the full daily record, ordered by (year, month, day) ASC.
func (s *ClimateStore) GetAll(ctx context.Context) ([]*domain.DailyClimateRecord, error) {
	query := `
		SELECT year, month, day, tmin_c, precip_mm
		FROM daily_climate
		ORDER BY year ASC, month ASC, day ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all daily records: %w", err)
	}
	defer rows.Close()

	return scanDailyRecords(rows)
}

// GetByYearRange retrieves records with year within [start, end] (inclusive).
func (s *ClimateStore) GetByYearRange(ctx context.Context, start, end int) ([]*domain.DailyClimateRecord, error) {
	query := `
		SELECT year, month, day, tmin_c, precip_mm
		FROM daily_climate
		WHERE year >= ? AND year <= ?
		ORDER BY year ASC, month ASC, day ASC
	`

	rows, err := s.conn.Query(ctx, query, int32(start), int32(end))
	if err != nil {
		return nil, fmt.Errorf("query daily records by year range: %w", err)
	}
	defer rows.Close()

	return scanDailyRecords(rows)
}

// exists checks whether a (year, month, day) row is already stored.
func (s *ClimateStore) exists(ctx context.Context, year, month, day int) (bool, error) {
	query := `
		SELECT count() FROM daily_climate
		WHERE year = ? AND month = ? AND day = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, int32(year), int32(month), int32(day)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanDailyRecords reads all rows into daily climate records.
func scanDailyRecords(rows chRows) ([]*domain.DailyClimateRecord, error) {
	var records []*domain.DailyClimateRecord
	for rows.Next() {
		var (
			year, month, day int32
			tminC, precipMm  float64
		)
		if err := rows.Scan(&year, &month, &day, &tminC, &precipMm); err != nil {
			return nil, fmt.Errorf("scan daily record: %w", err)
		}
		records = append(records, &domain.DailyClimateRecord{
			Year:     int(year),
			Month:    int(month),
			Day:      int(day),
			TminC:    tminC,
			PrecipMm: precipMm,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily records: %w", err)
	}
	return records, nil
}
