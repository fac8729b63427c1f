package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHotspot2DNearMissGridLine is the §8 scenario where a tight group of
// points straddles an unshifted quantization grid line closely enough that
// the unshifted pass alone would split it, but one of the three shifted
// passes recovers it as a single cluster.
func TestHotspot2DNearMissGridLine(t *testing.T) {
	eps := 1.0
	points := []Point{
		{X: 0.45, Y: 0},
		{X: 0.55, Y: 0},
		{X: 0.45, Y: 0.05},
		{X: 0.55, Y: 0.05},
	}

	labels, err := FindClusters(points, eps, 3, Hotspot2D)
	require.NoError(t, err)
	require.Len(t, labels, 4)

	nonNoise := labels[0]
	assert.NotEqual(t, -1, nonNoise)
	for _, l := range labels {
		assert.Equal(t, nonNoise, l)
	}
}

func TestHotspot2DPartitionStableUnderPermutation(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0},
		{X: 0.1, Y: 0},
		{X: 0.1, Y: 0.1},
		{X: 20, Y: 20},
	}
	eps := 1.0

	labels, err := FindClusters(points, eps, 2, Hotspot2D)
	require.NoError(t, err)

	permuted := []Point{points[3], points[1], points[0], points[2]}
	permutedLabels, err := FindClusters(permuted, eps, 2, Hotspot2D)
	require.NoError(t, err)

	assert.Equal(t, labels[0] != -1, permutedLabels[2] != -1)
	assert.Equal(t, labels[1] != -1, permutedLabels[1] != -1)
	assert.Equal(t, labels[3] != -1, permutedLabels[0] != -1)
}

func TestHotspot2DEmptyInput(t *testing.T) {
	labels, err := FindClusters(nil, 1.0, 1, Hotspot2D)
	require.NoError(t, err)
	assert.Nil(t, labels)
}
