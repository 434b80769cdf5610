// Package model evaluates the published almond transfer functions: yield
// anomaly from monthly climate statistics, and profit from yield anomaly
// under baseline economic assumptions.
package model

import (
	"errors"
	"fmt"

	"almond-yield-lab/internal/domain"
)

// Model errors.
var (
	// ErrNoOverlap is returned when the tmin month and precip month share no years.
	ErrNoOverlap = errors.New("tmin and precip months share no years")

	// ErrInvalidParameter is returned for a non-positive or non-finite
	// baseline yield or price.
	ErrInvalidParameter = errors.New("invalid economic parameter")
)

// Transfer function coefficients from Lobell et al. (2006). Fixed constants
// of the published model, not tunable.
const (
	coefTmin     = -0.015
	coefTminSq   = -0.0046
	coefPrecip   = -0.07
	coefPrecipSq = 0.0043
	intercept    = 0.28
)

// YieldAnomaly evaluates the transfer function at a February-style mean
// minimum temperature (degrees C) and a January-style total precipitation (mm).
// Result is an anomaly in ton/acre.
func YieldAnomaly(tminMean, precipSum float64) float64 {
	return coefTmin*tminMean +
		coefTminSq*tminMean*tminMean +
		coefPrecip*precipSum +
		coefPrecipSq*precipSum*precipSum +
		intercept
}

// ComputeYield scores every year that has monthly statistics for both the
// tmin month and the precip month. Years present on only one side are
// dropped; a year without both predictors cannot be scored. tminMonth and
// precipMonth may be equal.
// Returns ErrNoOverlap if no year has both months.
func ComputeYield(monthly []*domain.MonthlyClimateStat, tminMonth, precipMonth int) ([]*domain.YieldRecord, error) {
	if tminMonth < 1 || tminMonth > 12 {
		return nil, fmt.Errorf("tmin month %d out of range [1,12]", tminMonth)
	}
	if precipMonth < 1 || precipMonth > 12 {
		return nil, fmt.Errorf("precip month %d out of range [1,12]", precipMonth)
	}

	tminByYear := make(map[int]float64)
	precipByYear := make(map[int]float64)
	var years []int
	for _, s := range monthly {
		if s.Month == tminMonth {
			tminByYear[s.Year] = s.TminMean
		}
		if s.Month == precipMonth {
			precipByYear[s.Year] = s.PrecipSum
			years = append(years, s.Year)
		}
	}

	// Inner join on year, preserving the (already sorted) monthly order.
	var records []*domain.YieldRecord
	for _, year := range years {
		tmin, ok := tminByYear[year]
		if !ok {
			continue
		}
		precip := precipByYear[year]
		records = append(records, &domain.YieldRecord{
			Year:         year,
			TminMean:     tmin,
			PrecipSum:    precip,
			YieldAnomaly: YieldAnomaly(tmin, precip),
		})
	}

	if len(records) == 0 {
		return nil, ErrNoOverlap
	}

	return records, nil
}
