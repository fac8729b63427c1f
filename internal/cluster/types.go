// Package cluster implements the velocity-grid cluster search engine: a
// 2D density-clustering primitive applied across a grid of candidate
// velocities to discover moving-object tracks among sparse observations.
package cluster

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// NewPoint constructs a Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Observation is a single measurement: a planar position at a known time,
// carrying the caller's identifier for the underlying measurement. The
// grid-search driver treats a slice of Observation as immutable input.
type Observation struct {
	X, Y, T float64
	ID      string
}

// NewObservation constructs an Observation.
func NewObservation(x, y, t float64, id string) Observation {
	return Observation{X: x, Y: y, T: t, ID: id}
}

// VelocityGrid is the cartesian product of candidate vx and vy values,
// enumerated in row-major order (outer vx, inner vy) per §4.6.
type VelocityGrid struct {
	Vxs []float64
	Vys []float64
}

// NewVelocityGrid constructs a VelocityGrid from ordered vx/vy sequences.
func NewVelocityGrid(vxs, vys []float64) VelocityGrid {
	return VelocityGrid{Vxs: vxs, Vys: vys}
}

// Len returns the number of (vx, vy) pairs in the grid.
func (g VelocityGrid) Len() int {
	return len(g.Vxs) * len(g.Vys)
}
