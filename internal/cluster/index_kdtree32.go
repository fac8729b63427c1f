package cluster

import "sort"

// float32KDTree is a static, median-split k-d tree over 2D points stored as
// float32 coordinates, mirroring the reference float32 backend: points are
// narrowed to float32 before indexing, and range queries compare squared
// Euclidean distance.
type float32KDTree struct {
	nodes  []kdNode32
	points []Point // original float64 points, used to order the median splits during build
}

type kdNode32 struct {
	idx         int // index into points
	x, y        float32
	left, right int // node indices, -1 for absent
}

func buildFloat32KDTree(points []Point) (SpatialIndex, error) {
	t := &float32KDTree{
		points: points,
	}
	if len(points) == 0 {
		return t, nil
	}
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	t.nodes = make([]kdNode32, 0, len(points))
	t.build(order, 0)
	return t, nil
}

// build recursively splits order on alternating axes, appending nodes in
// the order they're created and returning the index of the subtree root
// (-1 for an empty slice).
func (t *float32KDTree) build(order []int, depth int) int {
	if len(order) == 0 {
		return -1
	}
	axis := depth % 2
	sort.Slice(order, func(i, j int) bool {
		if axis == 0 {
			return t.points[order[i]].X < t.points[order[j]].X
		}
		return t.points[order[i]].Y < t.points[order[j]].Y
	})
	mid := len(order) / 2
	medianIdx := order[mid]

	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, kdNode32{
		idx:   medianIdx,
		x:     float32(t.points[medianIdx].X),
		y:     float32(t.points[medianIdx].Y),
		left:  -1,
		right: -1,
	})

	left := t.build(order[:mid], depth+1)
	right := t.build(order[mid+1:], depth+1)
	t.nodes[nodeIdx].left = left
	t.nodes[nodeIdx].right = right
	return nodeIdx
}

// Neighbors returns the indices of points within radius (Euclidean) of
// query, per the SpatialIndex contract.
func (t *float32KDTree) Neighbors(query Point, radius float64) []int {
	if len(t.nodes) == 0 {
		return nil
	}
	qx, qy := float32(query.X), float32(query.Y)
	r := float32(radius)
	r2 := r * r

	var out []int
	var visit func(nodeIdx, depth int)
	visit = func(nodeIdx, depth int) {
		if nodeIdx < 0 {
			return
		}
		n := &t.nodes[nodeIdx]
		dx := n.x - qx
		dy := n.y - qy
		if dx*dx+dy*dy <= r2 {
			out = append(out, n.idx)
		}

		axis := depth % 2
		var diff float32
		if axis == 0 {
			diff = qx - n.x
		} else {
			diff = qy - n.y
		}

		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}
		visit(near, depth+1)
		if diff*diff <= r2 {
			visit(far, depth+1)
		}
	}
	visit(0, 0)
	return out
}
