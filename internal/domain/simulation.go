package domain

// SimulationRecord is one year of one sensitivity draw: a ProfitRecord tagged
// with the 1-based simulation index and the baseline parameters drawn for
// that simulation.
type SimulationRecord struct {
	ProfitRecord

	SimulationID    int     // 1..N, in draw order
	BaselineYieldLb float64 // drawn baseline yield, lb/acre
	BaselinePrice   float64 // drawn baseline price, USD/lb
}
