package cluster

import (
	"math"

	"github.com/google/uuid"
)

// RunGridSearch is the top-level entry point of §4.6/§4.7: it reprojects
// observations against every (vx, vy) pair in grid, clusters each
// reprojection with alg, and assembles the per-velocity results into the
// global cluster-summary and cluster-membership tables. On any failure it
// returns no tables at all, per §7 — partial results are never surfaced
// alongside an error.
func RunGridSearch(observations []Observation, grid VelocityGrid, alg Algorithm, eps float64, minClusterSize int, nWorkers int) ([]ClusterRow, []ClusterMemberRow, error) {
	if err := validateSearchInputs(observations, grid, eps, minClusterSize, nWorkers); err != nil {
		return nil, nil, err
	}

	runID := uuid.New().String()
	Logf("grid-search %s: starting, %d observations over %d velocities, %d workers", runID, len(observations), grid.Len(), nWorkers)

	var results []GridSearchResult
	var err error
	if nWorkers <= 1 {
		results, err = gridSearchSerial(observations, grid, alg, eps, minClusterSize)
	} else {
		results, err = gridSearchParallel(observations, grid, alg, eps, minClusterSize, nWorkers)
	}
	if err != nil {
		Logf("grid-search %s: failed: %v", runID, err)
		return nil, nil, err
	}

	clusterRows, memberRows := assembleResults(observations, results)
	Logf("grid-search %s: done, %d clusters over %d member observations", runID, len(clusterRows), len(memberRows))
	return clusterRows, memberRows, nil
}

// validateSearchInputs rejects malformed input up front, before any
// dispatch, per §7's InvalidInput contract. An empty velocity grid or an
// empty observation set is not malformed — per §8 scenario 6 it flows
// through to two empty output tables instead of an error.
func validateSearchInputs(observations []Observation, grid VelocityGrid, eps float64, minClusterSize int, nWorkers int) error {
	if eps <= 0 {
		return invalidInputf("eps must be > 0, got %v", eps)
	}
	if minClusterSize < 1 || minClusterSize > 255 {
		return invalidInputf("min_cluster_size must be in [1, 255], got %d", minClusterSize)
	}
	if nWorkers < 1 {
		return invalidInputf("n_workers must be >= 1, got %d", nWorkers)
	}
	for i, o := range observations {
		if !finite(o.X) || !finite(o.Y) || !finite(o.T) {
			return invalidInputf("observation %d has a non-finite coordinate or timestamp", i)
		}
	}
	for i, v := range grid.Vxs {
		if !finite(v) {
			return invalidInputf("vxs[%d] is not finite", i)
		}
	}
	for i, v := range grid.Vys {
		if !finite(v) {
			return invalidInputf("vys[%d] is not finite", i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
