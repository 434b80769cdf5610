package domain

// YieldRecord is one scored year: the two monthly predictors and the yield
// anomaly produced by the transfer function. A year is scored only when both
// the configured tmin month and precip month are present in the climate
// record (inner-join semantics).
type YieldRecord struct {
	Year         int
	TminMean     float64 // mean minimum temperature of the tmin month, degrees C
	PrecipSum    float64 // total precipitation of the precip month, mm
	YieldAnomaly float64 // ton/acre, may be negative
}
