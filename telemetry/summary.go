package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// EnergySummary describes the distribution of live-agent energy at the
// moment a day ends. Attached to the daily CSV record.
type EnergySummary struct {
	Mean   float64
	StdDev float64
	P10    float64
	P50    float64
	P90    float64
}

// SummarizeEnergy computes the energy distribution summary. An empty
// input yields the zero summary.
func SummarizeEnergy(values []float64) EnergySummary {
	if len(values) == 0 {
		return EnergySummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sd float64
	if len(sorted) > 1 {
		sd = stat.StdDev(sorted, nil)
	}

	return EnergySummary{
		Mean:   stat.Mean(sorted, nil),
		StdDev: sd,
		P10:    stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}
