// Package climate reduces daily climate observations to the monthly
// statistics the yield model consumes.
package climate

import (
	"errors"
	"sort"

	"almond-yield-lab/internal/domain"
)

// ErrEmptyInput is returned when no daily records are supplied.
var ErrEmptyInput = errors.New("no daily climate records")

// monthKey identifies one (year, month) group.
type monthKey struct {
	year  int
	month int
}

// Aggregate groups daily records by (year, month) and computes the mean
// minimum temperature and total precipitation per group. Input order does not
// matter; output is sorted by (year, month) ASC.
// Returns ErrEmptyInput if records is empty.
func Aggregate(records []*domain.DailyClimateRecord) ([]*domain.MonthlyClimateStat, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	type group struct {
		tminSum   float64
		precipSum float64
		days      int
	}

	groups := make(map[monthKey]*group)
	for _, r := range records {
		k := monthKey{r.Year, r.Month}
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
		}
		g.tminSum += r.TminC
		g.precipSum += r.PrecipMm
		g.days++
	}

	stats := make([]*domain.MonthlyClimateStat, 0, len(groups))
	for k, g := range groups {
		stats = append(stats, &domain.MonthlyClimateStat{
			Year:      k.year,
			Month:     k.month,
			TminMean:  g.tminSum / float64(g.days),
			PrecipSum: g.precipSum,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Year != stats[j].Year {
			return stats[i].Year < stats[j].Year
		}
		return stats[i].Month < stats[j].Month
	})

	return stats, nil
}
