package ingestion

import (
	"context"
	"fmt"
	"io"

	"almond-yield-lab/internal/observability"
	"almond-yield-lab/internal/storage"
)

// Loader reads the climate file and bulk-stores it.
type Loader struct {
	store storage.ClimateStore
}

// NewLoader creates a loader writing to the given store.
func NewLoader(store storage.ClimateStore) *Loader {
	return &Loader{store: store}
}

// Load parses daily records from r and inserts them in one batch. Returns
// the number of records stored. Any parse or storage failure aborts the
// whole load.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	records, err := ReadDailyCSV(r)
	if err != nil {
		observability.RecordIngestError("parse")
		return 0, fmt.Errorf("parse climate csv: %w", err)
	}

	if err := l.store.InsertBulk(ctx, records); err != nil {
		observability.RecordIngestError("store")
		return 0, fmt.Errorf("store climate records: %w", err)
	}

	observability.RecordIngested(len(records))
	return len(records), nil
}
