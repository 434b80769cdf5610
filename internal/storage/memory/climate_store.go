// Package memory provides in-memory store implementations for tests and
// fixture-backed runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"almond-yield-lab/internal/domain"
	"almond-yield-lab/internal/storage"
)

// ClimateStore is an in-memory implementation of storage.ClimateStore.
type ClimateStore struct {
	mu   sync.RWMutex
	data map[string]*domain.DailyClimateRecord // keyed by (year, month, day)
}

// NewClimateStore creates a new in-memory climate store.
func NewClimateStore() *ClimateStore {
	return &ClimateStore{
		data: make(map[string]*domain.DailyClimateRecord),
	}
}

// dayKey generates a unique key for a calendar day.
func dayKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// InsertBulk adds multiple daily records atomically. Fails the entire batch
// on any duplicate or invalid record.
func (s *ClimateStore) InsertBulk(_ context.Context, records []*domain.DailyClimateRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates.
	batchKeys := make(map[string]struct{}, len(records))

	// First pass: validate and check for duplicates (existing + intra-batch).
	for _, r := range records {
		if r == nil || r.Validate() != nil {
			return storage.ErrInvalidInput
		}
		key := dayKey(r.Year, r.Month, r.Day)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all.
	for _, r := range records {
		copy := *r
		s.data[dayKey(r.Year, r.Month, r.Day)] = &copy
	}

	return nil
}

// GetAll retrieves the full daily record, ordered by (year, month, day) ASC.
func (s *ClimateStore) GetAll(_ context.Context) ([]*domain.DailyClimateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.DailyClimateRecord, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		result = append(result, &copy)
	}

	sortDaily(result)
	return result, nil
}

// GetByYearRange retrieves records with year within [start, end] (inclusive).
func (s *ClimateStore) GetByYearRange(_ context.Context, start, end int) ([]*domain.DailyClimateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DailyClimateRecord
	for _, r := range s.data {
		if r.Year >= start && r.Year <= end {
			copy := *r
			result = append(result, &copy)
		}
	}

	sortDaily(result)
	return result, nil
}

// sortDaily orders records by (year, month, day) ASC.
func sortDaily(records []*domain.DailyClimateRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		if records[i].Month != records[j].Month {
			return records[i].Month < records[j].Month
		}
		return records[i].Day < records[j].Day
	})
}

var _ storage.ClimateStore = (*ClimateStore)(nil)
