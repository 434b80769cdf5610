// Package ingestion parses the delimited daily climate record and loads it
// into a climate store.
package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"almond-yield-lab/internal/domain"
)

// ErrNoRows is returned when the input holds no data rows.
var ErrNoRows = errors.New("no climate rows in input")

// Column layout of the daily climate file.
const (
	colDay = iota
	colMonth
	colYear
	colTmin
	colPrecip
	columnCount
)

// ReadDailyCSV parses daily climate records from CSV input with the column
// contract day,month,year,tmin_c,precip. A leading header row is detected by
// its non-numeric first field and skipped.
func ReadDailyCSV(r io.Reader) ([]*domain.DailyClimateRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columnCount
	reader.TrimLeadingSpace = true

	var records []*domain.DailyClimateRecord
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		line++

		// Header detection: first row whose first field is not an integer.
		if line == 1 {
			if _, err := strconv.Atoi(strings.TrimSpace(row[colDay])); err != nil {
				continue
			}
		}

		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}

	return records, nil
}

// parseRow converts one CSV row into a validated daily record.
func parseRow(row []string) (*domain.DailyClimateRecord, error) {
	day, err := strconv.Atoi(strings.TrimSpace(row[colDay]))
	if err != nil {
		return nil, fmt.Errorf("parse day %q: %w", row[colDay], err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(row[colMonth]))
	if err != nil {
		return nil, fmt.Errorf("parse month %q: %w", row[colMonth], err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(row[colYear]))
	if err != nil {
		return nil, fmt.Errorf("parse year %q: %w", row[colYear], err)
	}
	tmin, err := strconv.ParseFloat(strings.TrimSpace(row[colTmin]), 64)
	if err != nil {
		return nil, fmt.Errorf("parse tmin_c %q: %w", row[colTmin], err)
	}
	precip, err := strconv.ParseFloat(strings.TrimSpace(row[colPrecip]), 64)
	if err != nil {
		return nil, fmt.Errorf("parse precip %q: %w", row[colPrecip], err)
	}

	rec := &domain.DailyClimateRecord{
		Day:      day,
		Month:    month,
		Year:     year,
		TminC:    tmin,
		PrecipMm: precip,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
