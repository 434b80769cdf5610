package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/storage"
)

// ClimateStore implements storage.ClimateStore using PostgreSQL.
type ClimateStore struct {
	pool *Pool
}

// NewClimateStore creates a new ClimateStore.
func NewClimateStore(pool *Pool) *ClimateStore {
	return &ClimateStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ClimateStore = (*ClimateStore)(nil)

// InsertBulk adds multiple daily records atomically. Fails the entire batch
// with ErrDuplicateKey on any duplicate (year, month, day).
func (s *ClimateStore) InsertBulk(ctx context.Context, records []*domain.DailyClimateRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, r := range records {
		if r == nil || r.Validate() != nil {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO daily_climate (year, month, day, tmin_c, precip_mm)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, r := range records {
		_, err := tx.Exec(ctx, query, r.Year, r.Month, r.Day, r.TminC, r.PrecipMm)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert daily record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
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

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all daily records: %w", err)
	}
	defer rows.Close()

	return scanDailyRecords(rows)
}

// GetByYearRange retrieves records with year within [start, end] (inclusive).
func (s *ClimateStore) GetByYearRange(ctx context.Context, start, end int) ([]*domain.DailyClimateRecord, error) {
	query := `
		SELECT year, month, day, tmin_c, precip_mm
		FROM daily_climate
		WHERE year >= $1 AND year <= $2
		ORDER BY year ASC, month ASC, day ASC
	`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get daily records by year range: %w", err)
	}
	defer rows.Close()

	return scanDailyRecords(rows)
}

// scanDailyRecords reads all rows into daily climate records.
func scanDailyRecords(rows pgx.Rows) ([]*domain.DailyClimateRecord, error) {
	var records []*domain.DailyClimateRecord
	for rows.Next() {
		r := &domain.DailyClimateRecord{}
		if err := rows.Scan(&r.Year, &r.Month, &r.Day, &r.TminC, &r.PrecipMm); err != nil {
			return nil, fmt.Errorf("scan daily record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily records: %w", err)
	}
	return records, nil
}
