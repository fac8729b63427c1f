package cluster

import (
	"fmt"
	"sort"
)

// fixed16Frac is the number of fractional bits in the Q2.14 fixed-point
// representation used by the fixed-point k-d tree backend: 2 integer bits
// and 14 fractional bits, representing values in [0, 4).
const fixed16Frac = 14
const fixed16Scale = 1 << fixed16Frac

// fixed16 is a Q2.14 fixed-point value in [0, 4), stored in a uint16.
type fixed16 uint16

func toFixed16(v float64) (fixed16, error) {
	if v < 0 || v >= 4 {
		return 0, fmt.Errorf("value %v is outside the representable range [0, 4)", v)
	}
	return fixed16(v * fixed16Scale), nil
}

func (f fixed16) toFloat64() float64 {
	return float64(f) / fixed16Scale
}

// fixedPointKDTree is a static, median-split k-d tree whose coordinates are
// truncated to Q2.14 fixed point, mirroring the reference fixed16 backend.
type fixedPointKDTree struct {
	nodes  []kdNodeFixed
	points []Point
}

type kdNodeFixed struct {
	idx         int
	x, y        fixed16
	left, right int
}

func buildFixedPointKDTree(points []Point) (SpatialIndex, error) {
	t := &fixedPointKDTree{points: points}
	if len(points) == 0 {
		return t, nil
	}

	fx := make([]fixed16, len(points))
	fy := make([]fixed16, len(points))
	for i, p := range points {
		x, err := toFixed16(p.X)
		if err != nil {
			return nil, fmt.Errorf("point %d x coordinate: %w", i, err)
		}
		y, err := toFixed16(p.Y)
		if err != nil {
			return nil, fmt.Errorf("point %d y coordinate: %w", i, err)
		}
		fx[i] = x
		fy[i] = y
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	t.nodes = make([]kdNodeFixed, 0, len(points))
	t.build(order, fx, fy, 0)
	return t, nil
}

func (t *fixedPointKDTree) build(order []int, fx, fy []fixed16, depth int) int {
	if len(order) == 0 {
		return -1
	}
	axis := depth % 2
	sort.Slice(order, func(i, j int) bool {
		if axis == 0 {
			return fx[order[i]] < fx[order[j]]
		}
		return fy[order[i]] < fy[order[j]]
	})
	mid := len(order) / 2
	medianIdx := order[mid]

	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, kdNodeFixed{
		idx:   medianIdx,
		x:     fx[medianIdx],
		y:     fy[medianIdx],
		left:  -1,
		right: -1,
	})

	left := t.build(order[:mid], fx, fy, depth+1)
	right := t.build(order[mid+1:], fx, fy, depth+1)
	t.nodes[nodeIdx].left = left
	t.nodes[nodeIdx].right = right
	return nodeIdx
}

// Neighbors returns the indices of points within radius of query. query is
// truncated to Q2.14 the way build inputs are, but unlike build inputs
// (which are rejected) values outside [0, 4) are clamped to the nearest
// representable fixed-point value before the range query is performed.
func (t *fixedPointKDTree) Neighbors(query Point, radius float64) []int {
	if len(t.nodes) == 0 {
		return nil
	}
	qx := clampFixed16(query.X)
	qy := clampFixed16(query.Y)
	r, err := toFixed16(radius)
	if err != nil {
		r = fixed16Scale*4 - 1 // clamp an out-of-range radius to the max representable value
	}
	r2 := int64(r) * int64(r)

	var out []int
	var visit func(nodeIdx, depth int)
	visit = func(nodeIdx, depth int) {
		if nodeIdx < 0 {
			return
		}
		n := &t.nodes[nodeIdx]
		dx := int64(n.x) - int64(qx)
		dy := int64(n.y) - int64(qy)
		if dx*dx+dy*dy <= r2 {
			out = append(out, n.idx)
		}

		axis := depth % 2
		var diff int64
		if axis == 0 {
			diff = int64(qx) - int64(n.x)
		} else {
			diff = int64(qy) - int64(n.y)
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

func clampFixed16(v float64) fixed16 {
	if v < 0 {
		return 0
	}
	if v >= 4 {
		return fixed16Scale*4 - 1
	}
	f, _ := toFixed16(v)
	return f
}
