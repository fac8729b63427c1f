package cluster

// dbscan runs density-based clustering over points using idx for
// neighborhood queries, per §4.2. Labels are 0 (undefined/never assigned,
// which can only happen if a cluster fails to claim a border point — not
// reachable on exit), -1 (noise), or a positive, densely-increasing
// cluster id assigned in discovery order.
//
// The re-expansion queries the popped neighbor's OWN neighborhood, never
// the originating seed point's — the §9 fix for the reference
// implementation's re-expansion bug.
func dbscan(points []Point, eps float64, minWeight int, idx SpatialIndex) []int {
	n := len(points)
	labels := make([]int, n) // 0 = undefined, -1 = noise, >=1 = cluster id
	clusterID := 0

	for i := 0; i < n; i++ {
		if labels[i] != 0 {
			continue // already visited
		}

		neighbors := idx.Neighbors(points[i], eps)
		if len(neighbors) < minWeight {
			labels[i] = -1
			continue
		}

		clusterID++
		labels[i] = clusterID

		// Work list seeded with the seed point's neighbors, drained LIFO.
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			if labels[j] == -1 {
				// Noise upgraded to a border point; it does not get
				// re-expanded.
				labels[j] = clusterID
				continue
			}
			if labels[j] != 0 {
				continue // already claimed by this or another cluster
			}

			labels[j] = clusterID
			// Query the popped neighbor's own neighborhood, not the
			// seed's.
			neighborsOfJ := idx.Neighbors(points[j], eps)
			if len(neighborsOfJ) >= minWeight {
				queue = append(queue, neighborsOfJ...)
			}
		}
	}

	return labels
}

// dbscanVariant runs the DBSCAN primitive using the spatial-index backend
// selected by alg. alg must be one of DBSCAN, DbscanRStar, DbscanFixed16.
func dbscanVariant(points []Point, eps float64, minWeight int, alg Algorithm) ([]int, error) {
	if len(points) == 0 {
		return nil, nil
	}

	builder, err := indexBuilderFor(alg)
	if err != nil {
		return nil, err
	}

	idx, err := builder(points)
	if err != nil {
		if alg == DbscanFixed16 {
			return nil, invalidInputf("building fixed-point index: %v", err)
		}
		return nil, wrapError(IndexBuildFailure, "building spatial index", err)
	}

	return dbscan(points, eps, minWeight, idx), nil
}
