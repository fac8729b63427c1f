// Package clusterstats summarizes the output of a grid search: per-cluster
// arc lengths and membership sizes, reduced to the percentiles an operator
// scans to judge whether a search found plausible tracks.
package clusterstats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/vgridcluster/internal/cluster"
)

// Summary holds percentile and moment statistics over one dimension of a
// cluster-summary table.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	P50    float64
	P85    float64
	P98    float64
}

// summarize reduces a slice of values to a Summary, with P50/P85/P98
// percentiles taken by the empirical quantile method.
func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, stdDev := stat.MeanStdDev(sorted, nil)

	return Summary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		StdDev: stdDev,
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P85:    stat.Quantile(0.85, stat.Empirical, sorted, nil),
		P98:    stat.Quantile(0.98, stat.Empirical, sorted, nil),
	}
}

// ArcLengthSummary summarizes the arc_length column of a cluster-summary
// table.
func ArcLengthSummary(rows []cluster.ClusterRow) Summary {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.ArcLength
	}
	return summarize(values)
}

// ClusterSizeSummary summarizes cluster membership size: the number of
// member rows claimed by each cluster id.
func ClusterSizeSummary(memberRows []cluster.ClusterMemberRow) Summary {
	counts := make(map[uint32]int)
	for _, m := range memberRows {
		counts[m.ClusterID]++
	}

	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		values = append(values, float64(c))
	}
	return summarize(values)
}
