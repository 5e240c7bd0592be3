// pkg/metrics/stats.go
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Distribution summarizes one metric across a batch.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
}

// Describe computes the distribution of values. An empty slice yields
// a zero distribution. The input is not modified.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)

	return Distribution{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.PopStdDev(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     q1,
		Q3:     q3,
		IQR:    q3 - q1,
	}
}
