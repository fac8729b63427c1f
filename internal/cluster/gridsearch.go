package cluster

import (
	"fmt"
	"sync"
)

// GridSearchResult is the per-(vx, vy) output of one clustering pass over
// a velocity-reprojected point set, per §3.
type GridSearchResult struct {
	Vx, Vy float64
	Labels []int
}

// workChunkSize computes ceil(n / nWorkers), the contiguous chunk size the
// driver partitions vxs into per §4.6. Concrete scenarios from §8:
// (2,10)->5, (2,11)->6, (3,13)->5, (3,16)->6.
func workChunkSize(nWorkers, n int) int {
	if nWorkers <= 0 {
		return n
	}
	return (n + nWorkers - 1) / nWorkers
}

// chunkVxs partitions vxs into contiguous chunks of workChunkSize, skipping
// any trailing chunk that would be empty — "workers that would get no
// chunk are not spawned."
func chunkVxs(vxs []float64, nWorkers int) [][]float64 {
	size := workChunkSize(nWorkers, len(vxs))
	if size == 0 {
		return nil
	}
	var chunks [][]float64
	for i := 0; i < len(vxs); i += size {
		end := i + size
		if end > len(vxs) {
			end = len(vxs)
		}
		chunks = append(chunks, vxs[i:end])
	}
	return chunks
}

// computeOneVelocity reprojects observations at (vx, vy) and clusters the
// result, recovering any panic from the clustering call into a
// WorkerFailure so a single bad velocity cannot crash the whole search.
func computeOneVelocity(observations []Observation, vx, vy float64, alg Algorithm, eps float64, minWeight int) (res GridSearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapError(WorkerFailure, "panic while clustering one velocity", fmt.Errorf("%v", r))
		}
	}()

	points := reproject(observations, vx, vy)
	labels, ferr := FindClusters(points, eps, minWeight, alg)
	if ferr != nil {
		return GridSearchResult{}, ferr
	}
	return GridSearchResult{Vx: vx, Vy: vy, Labels: labels}, nil
}

// gridSearchSerial iterates vxs x vys in row-major order and appends one
// result per pair, in deterministic order (§4.6, n_workers == 1 path).
func gridSearchSerial(observations []Observation, grid VelocityGrid, alg Algorithm, eps float64, minWeight int) ([]GridSearchResult, error) {
	out := make([]GridSearchResult, 0, grid.Len())
	for _, vx := range grid.Vxs {
		for _, vy := range grid.Vys {
			res, err := computeOneVelocity(observations, vx, vy, alg, eps, minWeight)
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
	}
	return out, nil
}

// runChunk clusters every (vx, vy) pair for one worker's vx chunk, in
// (vx, vy) row-major order, sending each result onto out. It sends the
// first error it observes onto errs and stops — a worker failure aborts
// that worker's remaining work, and the caller treats it as aborting the
// whole search (§5, §7).
func runChunk(vxChunk, vys []float64, observations []Observation, alg Algorithm, eps float64, minWeight int, out chan<- GridSearchResult, errs chan<- error) {
	defer func() {
		if r := recover(); r != nil {
			errs <- wrapError(WorkerFailure, "panic in grid-search worker", fmt.Errorf("%v", r))
		}
	}()
	for _, vx := range vxChunk {
		for _, vy := range vys {
			res, err := computeOneVelocity(observations, vx, vy, alg, eps, minWeight)
			if err != nil {
				errs <- err
				return
			}
			out <- res
		}
	}
}

// gridSearchParallel fans the vx grid out across up to nWorkers-1 spawned
// goroutines plus the calling goroutine, which processes the final chunk
// itself before draining the shared results channel, per §4.6/§5: the
// coordinator retains no producer handle once every chunk (spawned or
// inline) has finished sending, so the channel closes once all producers
// are done and draining cannot block forever.
func gridSearchParallel(observations []Observation, grid VelocityGrid, alg Algorithm, eps float64, minWeight int, nWorkers int) ([]GridSearchResult, error) {
	chunks := chunkVxs(grid.Vxs, nWorkers)
	if len(chunks) == 0 {
		return nil, nil
	}

	total := 0
	for _, c := range chunks {
		total += len(c) * len(grid.Vys)
	}

	results := make(chan GridSearchResult, total)
	errs := make(chan error, len(chunks))
	var wg sync.WaitGroup

	lastIdx := len(chunks) - 1
	for i := 0; i < lastIdx; i++ {
		wg.Add(1)
		chunk := chunks[i]
		go func(chunk []float64) {
			defer wg.Done()
			runChunk(chunk, grid.Vys, observations, alg, eps, minWeight, results, errs)
		}(chunk)
	}

	// The coordinator computes the final chunk itself rather than
	// spawning a full nWorkers goroutines.
	runChunk(chunks[lastIdx], grid.Vys, observations, alg, eps, minWeight, results, errs)

	wg.Wait()
	close(results)
	close(errs)

	out := make([]GridSearchResult, 0, total)
	for r := range results {
		out = append(out, r)
	}
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
