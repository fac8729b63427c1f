package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkChunkSizeTable checks the concrete (n_workers, n) -> chunk size
// pairs from §8.
func TestWorkChunkSizeTable(t *testing.T) {
	cases := []struct {
		nWorkers, n, want int
	}{
		{2, 10, 5},
		{2, 11, 6},
		{3, 13, 5},
		{3, 16, 6},
	}
	for _, c := range cases {
		got := workChunkSize(c.nWorkers, c.n)
		assert.Equalf(t, c.want, got, "workChunkSize(%d, %d)", c.nWorkers, c.n)
	}
}

func TestChunkVxsSkipsEmptyTrailingChunks(t *testing.T) {
	vxs := []float64{1, 2, 3}
	chunks := chunkVxs(vxs, 5)

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	assert.Equal(t, len(vxs), total)
	assert.LessOrEqual(t, len(chunks), len(vxs))
}

// linearTrackObservations is the four-point linear-track scenario from §8:
// a single object moving at vx=1, vy=0, observed at four instants.
func linearTrackObservations() []Observation {
	return []Observation{
		NewObservation(0, 0, 0, "a"),
		NewObservation(1, 0, 1, "b"),
		NewObservation(2, 0, 2, "c"),
		NewObservation(3, 0, 3, "d"),
	}
}

func TestRunGridSearchFindsLinearTrack(t *testing.T) {
	observations := linearTrackObservations()
	grid := NewVelocityGrid([]float64{0, 1, 2}, []float64{-1, 0, 1})

	clusterRows, memberRows, err := RunGridSearch(observations, grid, DBSCAN, 0.5, 2, 1)
	require.NoError(t, err)

	var matches []ClusterRow
	for _, row := range clusterRows {
		if row.Vx == 1 && row.Vy == 0 {
			matches = append(matches, row)
		}
	}
	require.Len(t, matches, 1)
	assert.InDelta(t, 3.0, matches[0].ArcLength, 1e-9)

	memberCount := 0
	for _, m := range memberRows {
		if m.ClusterID == matches[0].ClusterID {
			memberCount++
		}
	}
	assert.Equal(t, 4, memberCount)
}

func TestRunGridSearchSerialAndParallelAgree(t *testing.T) {
	observations := linearTrackObservations()
	grid := NewVelocityGrid([]float64{0, 1, 2, 3}, []float64{-1, 0, 1})

	serialClusters, serialMembers, err := RunGridSearch(observations, grid, DBSCAN, 0.5, 2, 1)
	require.NoError(t, err)

	parallelClusters, parallelMembers, err := RunGridSearch(observations, grid, DBSCAN, 0.5, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, len(serialClusters), len(parallelClusters))
	assert.Equal(t, len(serialMembers), len(parallelMembers))

	serialByVelocity := make(map[[2]float64]int)
	for _, c := range serialClusters {
		serialByVelocity[[2]float64{c.Vx, c.Vy}]++
	}
	parallelByVelocity := make(map[[2]float64]int)
	for _, c := range parallelClusters {
		parallelByVelocity[[2]float64{c.Vx, c.Vy}]++
	}
	assert.Equal(t, serialByVelocity, parallelByVelocity)
}

func TestRunGridSearchEmptyInputs(t *testing.T) {
	grid := NewVelocityGrid([]float64{0}, []float64{0})

	clusterRows, memberRows, err := RunGridSearch(nil, grid, DBSCAN, 1.0, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, clusterRows)
	assert.Empty(t, memberRows)
}

// TestRunGridSearchEmptyGridReturnsEmptyTables covers §8 scenario 6: an
// empty velocity grid is not a validation failure, it just has zero
// (vx, vy) pairs to iterate, so the search returns two empty tables.
func TestRunGridSearchEmptyGridReturnsEmptyTables(t *testing.T) {
	clusterRows, memberRows, err := RunGridSearch(linearTrackObservations(), VelocityGrid{}, DBSCAN, 1.0, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, clusterRows)
	assert.Empty(t, memberRows)

	clusterRows, memberRows, err = RunGridSearch(linearTrackObservations(), VelocityGrid{}, DBSCAN, 1.0, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, clusterRows)
	assert.Empty(t, memberRows)
}

func TestRunGridSearchRejectsBadWorkerCount(t *testing.T) {
	grid := NewVelocityGrid([]float64{0}, []float64{0})
	_, _, err := RunGridSearch(linearTrackObservations(), grid, DBSCAN, 1.0, 1, 0)
	require.Error(t, err)
}

// TestRunGridSearchThreeTracksPlusNoise mirrors the §8 scenario with three
// independently moving tracks plus stationary noise: the search should
// recover exactly one matching cluster per track's true velocity.
func TestRunGridSearchThreeTracksPlusNoise(t *testing.T) {
	var observations []Observation
	// Track 1: vx=1, vy=0
	for i := 0; i < 4; i++ {
		observations = append(observations, NewObservation(float64(i), 0, float64(i), "t1"))
	}
	// Track 2: vx=0, vy=1, offset in space so it never collides with track 1
	for i := 0; i < 4; i++ {
		observations = append(observations, NewObservation(50, float64(i), float64(i), "t2"))
	}
	// Track 3: stationary (vx=0, vy=0), away from both other tracks
	for i := 0; i < 4; i++ {
		observations = append(observations, NewObservation(-50, 0, float64(i), "t3"))
	}
	// Noise: scattered stationary points far from both tracks.
	observations = append(observations,
		NewObservation(1000, 1000, 0, "n1"),
		NewObservation(-1000, -1000, 1, "n2"),
	)

	grid := NewVelocityGrid([]float64{0, 1}, []float64{0, 1})
	clusterRows, _, err := RunGridSearch(observations, grid, DBSCAN, 0.5, 3, 2)
	require.NoError(t, err)

	foundTrack1 := false
	foundTrack2 := false
	foundTrack3 := false
	perVelocity := make(map[[2]float64]int)
	for _, row := range clusterRows {
		perVelocity[[2]float64{row.Vx, row.Vy}]++
		if row.Vx == 1 && row.Vy == 0 {
			foundTrack1 = true
		}
		if row.Vx == 0 && row.Vy == 1 {
			foundTrack2 = true
		}
		if row.Vx == 0 && row.Vy == 0 {
			foundTrack3 = true
		}
	}
	assert.True(t, foundTrack1, "expected a cluster at vx=1,vy=0")
	assert.True(t, foundTrack2, "expected a cluster at vx=0,vy=1")
	assert.True(t, foundTrack3, "expected a cluster at vx=0,vy=0")
	assert.Equal(t, map[[2]float64]int{{1, 0}: 1, {0, 1}: 1, {0, 0}: 1}, perVelocity)
}
