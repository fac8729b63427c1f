package cluster

import "sort"

// rstarFanout bounds how many children a bounding-box node groups before a
// query descends to checking leaf points directly.
const rstarFanout = 8

// rStarTree is a bulk-loaded, bounding-box index over 2D points: leaves
// hold small groups of points with a cached bounding box; Neighbors prunes
// whole groups whose bounding box cannot intersect the query circle before
// falling back to exact per-point distance checks, the standard AABB
// traversal the R*-tree backend is defined to use.
type rStarTree struct {
	points []Point
	groups []rstarGroup
}

type rstarGroup struct {
	minX, minY, maxX, maxY float64
	indices                []int
}

func buildRStarTree(points []Point) (SpatialIndex, error) {
	t := &rStarTree{points: points}
	if len(points) == 0 {
		return t, nil
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	// Sort-tile-recursive bulk load: sort by X into vertical slabs, then
	// sort each slab by Y, grouping into rstarFanout-sized leaves.
	sort.Slice(order, func(i, j int) bool { return points[order[i]].X < points[order[j]].X })

	numLeaves := (len(order) + rstarFanout - 1) / rstarFanout
	numSlabs := int(isqrt(numLeaves))
	if numSlabs < 1 {
		numSlabs = 1
	}
	slabSize := (len(order) + numSlabs - 1) / numSlabs

	for s := 0; s < len(order); s += slabSize {
		end := s + slabSize
		if end > len(order) {
			end = len(order)
		}
		slab := order[s:end]
		sort.Slice(slab, func(i, j int) bool { return points[slab[i]].Y < points[slab[j]].Y })

		for g := 0; g < len(slab); g += rstarFanout {
			gEnd := g + rstarFanout
			if gEnd > len(slab) {
				gEnd = len(slab)
			}
			idxs := append([]int(nil), slab[g:gEnd]...)
			t.groups = append(t.groups, newRstarGroup(points, idxs))
		}
	}
	return t, nil
}

func newRstarGroup(points []Point, idxs []int) rstarGroup {
	g := rstarGroup{indices: idxs}
	g.minX, g.maxX = points[idxs[0]].X, points[idxs[0]].X
	g.minY, g.maxY = points[idxs[0]].Y, points[idxs[0]].Y
	for _, i := range idxs {
		p := points[i]
		if p.X < g.minX {
			g.minX = p.X
		}
		if p.X > g.maxX {
			g.maxX = p.X
		}
		if p.Y < g.minY {
			g.minY = p.Y
		}
		if p.Y > g.maxY {
			g.maxY = p.Y
		}
	}
	return g
}

// Neighbors returns the indices of points within a planar Euclidean
// radius of query.
func (t *rStarTree) Neighbors(query Point, radius float64) []int {
	var out []int
	for _, g := range t.groups {
		if !circleIntersectsBox(query, radius, g) {
			continue
		}
		for _, i := range g.indices {
			p := t.points[i]
			dx := p.X - query.X
			dy := p.Y - query.Y
			if dx*dx+dy*dy <= radius*radius {
				out = append(out, i)
			}
		}
	}
	return out
}

func circleIntersectsBox(center Point, radius float64, g rstarGroup) bool {
	cx := clampf(center.X, g.minX, g.maxX)
	cy := clampf(center.Y, g.minY, g.maxY)
	dx := center.X - cx
	dy := center.Y - cy
	return dx*dx+dy*dy <= radius*radius
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := 1
	for r*r < n {
		r++
	}
	return r
}
