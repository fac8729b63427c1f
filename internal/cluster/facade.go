package cluster

// FindClusters is the auxiliary single-velocity API of §6: it clusters one
// set of planar points with the algorithm named by alg and returns a
// length-N label vector where -1 marks noise and positive values are dense,
// 1-based local cluster ids.
func FindClusters(points []Point, eps float64, minWeight int, alg Algorithm) ([]int, error) {
	if eps <= 0 {
		return nil, invalidInputf("eps must be > 0, got %v", eps)
	}
	if len(points) == 0 {
		return nil, nil
	}

	switch alg {
	case DBSCAN, DbscanRStar, DbscanFixed16:
		return dbscanVariant(points, eps, minWeight, alg)
	case Hotspot2D:
		return densifyLabels(hotspot2D(points, eps, minWeight)), nil
	default:
		return nil, invalidInputf("unknown algorithm tag %v", alg)
	}
}

// densifyLabels remaps an arbitrary set of positive label values to dense
// 1-based ids, in order of first appearance, leaving -1 (noise) untouched.
// Hotspot2D's merged label vector can carry non-contiguous values (each
// point's label comes from whichever of the four quantization passes first
// claimed it); this restores the §3 invariant that local labels are dense
// and 1-based without changing which points share a label.
func densifyLabels(labels []int) []int {
	if labels == nil {
		return nil
	}
	remap := make(map[int]int)
	next := 1
	out := make([]int, len(labels))
	for i, l := range labels {
		if l == -1 {
			out[i] = -1
			continue
		}
		id, ok := remap[l]
		if !ok {
			id = next
			remap[l] = id
			next++
		}
		out[i] = id
	}
	return out
}
