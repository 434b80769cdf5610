package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"almond-yield-lab/internal/storage/memory"
)

func TestReadDailyCSV_WithHeader(t *testing.T) {
	input := "day,month,year,tmin_c,precip\n" +
		"1,1,1989,3.5,10.2\n" +
		"2,1,1989,4.0,0.0\n"

	records, err := ReadDailyCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDailyCSV failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Day != 1 || records[0].Month != 1 || records[0].Year != 1989 {
		t.Errorf("First record key mismatch: %+v", records[0])
	}
	if records[0].TminC != 3.5 || records[0].PrecipMm != 10.2 {
		t.Errorf("First record values mismatch: %+v", records[0])
	}
}

func TestReadDailyCSV_WithoutHeader(t *testing.T) {
	input := "1,2,1990,5.5,1.1\n"

	records, err := ReadDailyCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDailyCSV failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Month != 2 || records[0].Year != 1990 {
		t.Errorf("Record mismatch: %+v", records[0])
	}
}

func TestReadDailyCSV_HeaderOnly(t *testing.T) {
	input := "day,month,year,tmin_c,precip\n"

	_, err := ReadDailyCSV(strings.NewReader(input))
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("Expected ErrNoRows, got %v", err)
	}
}

func TestReadDailyCSV_BadField(t *testing.T) {
	input := "1,1,1989,not-a-number,10.2\n"

	_, err := ReadDailyCSV(strings.NewReader(input))
	if err == nil {
		t.Error("Expected parse error for bad tmin_c field")
	}
}

func TestReadDailyCSV_OutOfRangeMonth(t *testing.T) {
	input := "1,13,1989,3.5,10.2\n"

	_, err := ReadDailyCSV(strings.NewReader(input))
	if err == nil {
		t.Error("Expected validation error for month 13")
	}
}

func TestReadDailyCSV_WrongColumnCount(t *testing.T) {
	input := "1,1,1989,3.5\n"

	_, err := ReadDailyCSV(strings.NewReader(input))
	if err == nil {
		t.Error("Expected error for missing column")
	}
}

func TestLoader_Load(t *testing.T) {
	input := "day,month,year,tmin_c,precip\n" +
		"1,1,1989,3.5,10.2\n" +
		"1,2,1989,6.0,0.5\n"

	store := memory.NewClimateStore()
	loader := NewLoader(store)

	n, err := loader.Load(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 records loaded, got %d", n)
	}

	stored, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("Expected 2 stored records, got %d", len(stored))
	}
}

func TestLoader_LoadParseFailureStoresNothing(t *testing.T) {
	input := "1,1,1989,3.5,10.2\n" +
		"bad,row,here,x,y\n"

	store := memory.NewClimateStore()
	loader := NewLoader(store)

	_, err := loader.Load(context.Background(), strings.NewReader(input))
	if err == nil {
		t.Fatal("Expected load error")
	}

	stored, _ := store.GetAll(context.Background())
	if len(stored) != 0 {
		t.Errorf("Expected nothing stored after failed load, got %d", len(stored))
	}
}
