package domain

import "fmt"

// DailyClimateRecord is one observed calendar day of climate input.
// Records are immutable once created; stages copy, never mutate.
type DailyClimateRecord struct {
	Day      int     // day of month
	Month    int     // 1..12
	Year     int     // calendar year
	TminC    float64 // daily minimum temperature, degrees C
	PrecipMm float64 // daily precipitation, mm, >= 0
}

// Validate checks field ranges for a daily record.
func (r *DailyClimateRecord) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("month %d out of range [1,12]", r.Month)
	}
	if r.Day < 1 || r.Day > 31 {
		return fmt.Errorf("day %d out of range [1,31]", r.Day)
	}
	if r.PrecipMm < 0 {
		return fmt.Errorf("negative precipitation %f", r.PrecipMm)
	}
	return nil
}

// MonthlyClimateStat is the reduction of one (year, month) group of daily
// records: mean minimum temperature and total precipitation.
type MonthlyClimateStat struct {
	Year      int
	Month     int
	TminMean  float64 // mean of TminC over the month, degrees C
	PrecipSum float64 // sum of PrecipMm over the month, mm
}
