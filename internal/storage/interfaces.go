package storage

import (
	"context"

	"almond-yield-lab/internal/domain"
)

// ClimateStore provides access to the daily climate record.
type ClimateStore interface {
	// InsertBulk adds multiple daily records atomically. Fails the entire
	// batch with ErrDuplicateKey on any duplicate (year, month, day).
	InsertBulk(ctx context.Context, records []*domain.DailyClimateRecord) error

	// GetAll retrieves the full daily record, ordered by (year, month, day) ASC.
	GetAll(ctx context.Context) ([]*domain.DailyClimateRecord, error)

	// GetByYearRange retrieves records with year within [start, end]
	// (inclusive), ordered by (year, month, day) ASC.
	GetByYearRange(ctx context.Context, start, end int) ([]*domain.DailyClimateRecord, error)
}
