package cluster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestAssembleResultsGlobalIDsAreUnique(t *testing.T) {
	observations := []Observation{
		NewObservation(0, 0, 0, "a"),
		NewObservation(0.1, 0, 1, "b"),
		NewObservation(0, 0.1, 2, "c"),
	}
	results := []GridSearchResult{
		{Vx: 0, Vy: 0, Labels: []int{1, 1, 1}},
		{Vx: 1, Vy: 0, Labels: []int{1, 1, -1}},
	}

	clusterRows, memberRows := assembleResults(observations, results)
	require.Len(t, clusterRows, 2)

	seen := make(map[uint32]bool)
	for _, row := range clusterRows {
		require.Falsef(t, seen[row.ClusterID], "cluster id %d reused across results", row.ClusterID)
		seen[row.ClusterID] = true
	}

	want := []ClusterRow{
		{ClusterID: 1, Vx: 0, Vy: 0, ArcLength: 2},
		{ClusterID: 2, Vx: 1, Vy: 0, ArcLength: 1},
	}
	diff := cmp.Diff(want, clusterRows, cmpopts.SortSlices(func(a, b ClusterRow) bool { return a.ClusterID < b.ClusterID }))
	require.Empty(t, diff)

	wantMembers := []ClusterMemberRow{
		{ClusterID: 1, ObsID: "a"},
		{ClusterID: 1, ObsID: "b"},
		{ClusterID: 1, ObsID: "c"},
		{ClusterID: 2, ObsID: "a"},
		{ClusterID: 2, ObsID: "b"},
	}
	memberDiff := cmp.Diff(wantMembers, memberRows, cmpopts.SortSlices(func(a, b ClusterMemberRow) bool {
		if a.ClusterID != b.ClusterID {
			return a.ClusterID < b.ClusterID
		}
		return a.ObsID < b.ObsID
	}))
	require.Empty(t, memberDiff)
}

func TestAssembleResultsEmpty(t *testing.T) {
	clusterRows, memberRows := assembleResults(nil, nil)
	require.Nil(t, clusterRows)
	require.Nil(t, memberRows)
}
