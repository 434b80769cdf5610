package domain

// ProfitRecord extends a YieldRecord with the economic outcome for one year
// under fixed baseline assumptions.
type ProfitRecord struct {
	YieldRecord

	ActualYield float64 // ton/acre: baseline yield (ton) + anomaly, not clamped
	Profit      float64 // USD/acre: actual yield * baseline price per ton
}
