package cluster

// reproject applies the canonical velocity-subtraction convention of §4.5:
// an object moving at exactly (vx, vy) reprojects to a stationary cluster.
// Arithmetic happens in double precision; the output preserves observation
// order.
func reproject(observations []Observation, vx, vy float64) []Point {
	points := make([]Point, len(observations))
	for i, o := range observations {
		points[i] = Point{
			X: o.X - vx*o.T,
			Y: o.Y - vy*o.T,
		}
	}
	return points
}
