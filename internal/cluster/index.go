package cluster

// Algorithm selects one of the clustering primitives (and, for the DBSCAN
// variants, the spatial-index backend that answers its neighbor queries).
type Algorithm int

const (
	// DBSCAN runs density clustering backed by a float32 k-d tree.
	DBSCAN Algorithm = iota
	// Hotspot2D runs the quantization-based grid approximation; it does
	// not use a spatial index.
	Hotspot2D
	// DbscanRStar runs density clustering backed by an R*-tree.
	DbscanRStar
	// DbscanFixed16 runs density clustering backed by a Q2.14
	// fixed-point k-d tree.
	DbscanFixed16
)

func (a Algorithm) String() string {
	switch a {
	case DBSCAN:
		return "DBSCAN"
	case Hotspot2D:
		return "Hotspot2D"
	case DbscanRStar:
		return "DbscanRStar"
	case DbscanFixed16:
		return "DbscanFixed16"
	default:
		return "Unknown"
	}
}

// SpatialIndex is the narrow capability the DBSCAN primitive depends on: a
// fixed set of N planar points indexed 0..N-1, queryable for the indices of
// points within a radius of a given query point. Implementations must be
// safe to query concurrently from a single thread (the grid-search driver
// never shares one index across goroutines, but a single worker may reuse
// one across many region queries while expanding a cluster).
//
// eps convention: every backend interprets radius as a Euclidean distance.
// Backends that compare squared distances internally (the two k-d tree
// backends) square radius themselves before comparing; callers never pass
// a pre-squared threshold. This resolves the ambiguity noted in §9 of the
// originating design: the reference float32 k-d tree forwarded eps directly
// as a squared-Euclidean threshold, which this implementation does not do.
type SpatialIndex interface {
	// Neighbors returns the indices of points within radius of query,
	// including the query point itself when query coincides with an
	// indexed point.
	Neighbors(query Point, radius float64) []int
}

// indexBuilder builds a SpatialIndex from a flat point set. It is the
// build(points) half of the capability; DBSCAN variants select one
// implementation via their Algorithm tag.
type indexBuilder func(points []Point) (SpatialIndex, error)

// indexBuilderFor resolves the spatial-index backend for a DBSCAN
// algorithm tag. Hotspot2D has no associated backend; callers must not
// invoke this for that tag.
func indexBuilderFor(alg Algorithm) (indexBuilder, error) {
	switch alg {
	case DBSCAN:
		return buildFloat32KDTree, nil
	case DbscanFixed16:
		return buildFixedPointKDTree, nil
	case DbscanRStar:
		return buildRStarTree, nil
	default:
		return nil, invalidInputf("algorithm %s has no spatial-index backend", alg)
	}
}
