package cluster

import "math"

// hotspotCell is a quantized grid cell coordinate.
type hotspotCell struct {
	x, y int64
}

// quantize maps each point to an integer cell by rounding x/eps, y/eps,
// per §4.3 step 1.
func quantize(points []Point, eps float64) []hotspotCell {
	cells := make([]hotspotCell, len(points))
	for i, p := range points {
		cells[i] = hotspotCell{
			x: int64(math.Round(p.X / eps)),
			y: int64(math.Round(p.Y / eps)),
		}
	}
	return cells
}

// hist2D buckets point indices by their quantized cell.
func hist2D(cells []hotspotCell) map[hotspotCell][]int {
	m := make(map[hotspotCell][]int)
	for i, c := range cells {
		m[c] = append(m[c], i)
	}
	return m
}

// labelCellMap assigns a dense cluster id (1-based) to every cell whose
// membership is >= minWeight, in the iteration order of the map (§4.3
// step 4: this order is unspecified, so cluster ids are not required to be
// deterministic across runs — only the partition is part of the contract).
func labelCellMap(cells []hotspotCell, cellMap map[hotspotCell][]int, minWeight int) []int {
	labels := make([]int, len(cells))
	labelOf := make(map[hotspotCell]int, len(cellMap))
	next := 1
	for cell, members := range cellMap {
		if len(members) >= minWeight {
			labelOf[cell] = next
			next++
		}
	}
	for i, c := range cells {
		if label, ok := labelOf[c]; ok {
			labels[i] = label
		} else {
			labels[i] = -1
		}
	}
	return labels
}

// hotspotPass runs one quantize -> histogram -> label pass over points.
func hotspotPass(points []Point, eps float64, minWeight int) []int {
	cells := quantize(points, eps)
	m := hist2D(cells)
	return labelCellMap(cells, m, minWeight)
}

// mergeHotspotLabels combines four label vectors by taking, per point, the
// first non-noise label among the four passes in order (§4.3 step 5).
func mergeHotspotLabels(l1, l2, l3, l4 []int) []int {
	merged := make([]int, len(l1))
	for i := range l1 {
		switch {
		case l1[i] != -1:
			merged[i] = l1[i]
		case l2[i] != -1:
			merged[i] = l2[i]
		case l3[i] != -1:
			merged[i] = l3[i]
		case l4[i] != -1:
			merged[i] = l4[i]
		default:
			merged[i] = -1
		}
	}
	return merged
}

// hotspot2D approximates density clustering by merging four shifted
// quantization passes, per §4.3. A cell with at least minWeight members
// seeds a cluster under any of the four quantizations; catching clusters
// that straddle a cell boundary under the unshifted grid.
func hotspot2D(points []Point, eps float64, minWeight int) []int {
	if len(points) == 0 {
		return nil
	}

	shifted := func(dx, dy float64) []Point {
		out := make([]Point, len(points))
		for i, p := range points {
			out[i] = Point{X: p.X + dx, Y: p.Y + dy}
		}
		return out
	}

	l1 := hotspotPass(points, eps, minWeight)
	l2 := hotspotPass(shifted(eps/2, 0), eps, minWeight)
	l3 := hotspotPass(shifted(0, eps/2), eps, minWeight)
	l4 := hotspotPass(shifted(eps/2, eps/2), eps, minWeight)

	return mergeHotspotLabels(l1, l2, l3, l4)
}
