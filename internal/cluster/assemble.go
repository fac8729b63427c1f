package cluster

// ClusterRow is one row of the cluster-summary table produced by a grid
// search, per §4.7.
type ClusterRow struct {
	ClusterID uint32
	Vx, Vy    float64
	ArcLength float64
}

// ClusterMemberRow is one row of the cluster-membership table: it binds an
// observation to the global cluster id that claimed it.
type ClusterMemberRow struct {
	ClusterID uint32
	ObsID     string
}

// assembleResults turns a set of per-velocity grid-search results into the
// two output tables of §4.7. Local cluster ids are only unique within a
// single (vx, vy) result; this assigns each local cluster a fresh,
// monotonically increasing global id (discovery order across results, then
// within a result in label order) and computes arc_length as the span
// between the earliest and latest observation timestamp claimed by that
// cluster.
func assembleResults(observations []Observation, results []GridSearchResult) ([]ClusterRow, []ClusterMemberRow) {
	var clusterRows []ClusterRow
	var memberRows []ClusterMemberRow
	var nextGlobal uint32 = 1

	for _, res := range results {
		if len(res.Labels) == 0 {
			continue
		}

		tmin := make(map[int]float64)
		tmax := make(map[int]float64)
		var order []int
		seen := make(map[int]bool)

		for i, label := range res.Labels {
			if label <= 0 {
				continue
			}
			t := observations[i].T
			if cur, ok := tmin[label]; !ok || t < cur {
				tmin[label] = t
			}
			if cur, ok := tmax[label]; !ok || t > cur {
				tmax[label] = t
			}
			if !seen[label] {
				seen[label] = true
				order = append(order, label)
			}
		}

		localToGlobal := make(map[int]uint32, len(order))
		for _, label := range order {
			g := nextGlobal
			nextGlobal++
			localToGlobal[label] = g
			clusterRows = append(clusterRows, ClusterRow{
				ClusterID: g,
				Vx:        res.Vx,
				Vy:        res.Vy,
				ArcLength: tmax[label] - tmin[label],
			})
		}

		for i, label := range res.Labels {
			if label <= 0 {
				continue
			}
			memberRows = append(memberRows, ClusterMemberRow{
				ClusterID: localToGlobal[label],
				ObsID:     observations[i].ID,
			})
		}
	}

	return clusterRows, memberRows
}
