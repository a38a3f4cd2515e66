package route

import (
	"math"

	"drivelapse/geo"
)

// HeadingPolicy selects how viewing headings are derived from the
// resampled positions.
type HeadingPolicy string

const (
	// HeadingLocal points each waypoint at its immediate successor; the
	// last waypoint reuses the previous heading.
	HeadingLocal HeadingPolicy = "local"

	// HeadingMomentum points each waypoint several samples ahead and
	// blends the raw bearing with the previous heading, so the camera
	// leans into turns instead of snapping through them.
	HeadingMomentum HeadingPolicy = "momentum"
)

// Valid reports whether p names a known policy.
func (p HeadingPolicy) Valid() bool {
	return p == HeadingLocal || p == HeadingMomentum
}

// WithHeadings assigns a heading to every position under the given
// policy and returns the finished waypoints. Headings come out
// normalized to [0, 360). A single position gets heading 0.
func WithHeadings(positions []geo.Point, policy HeadingPolicy, smoothness int) []Waypoint {
	var headings []float64
	if policy == HeadingMomentum {
		headings = momentumHeadings(positions, smoothness)
	} else {
		headings = localHeadings(positions)
	}

	waypoints := make([]Waypoint, len(positions))
	for i, p := range positions {
		waypoints[i] = Waypoint{Point: p, Heading: headings[i]}
	}
	return waypoints
}

func localHeadings(pts []geo.Point) []float64 {
	h := make([]float64, len(pts))
	for i := 0; i < len(pts)-1; i++ {
		h[i] = geo.Bearing(pts[i], pts[i+1])
	}
	if n := len(pts); n > 1 {
		h[n-1] = h[n-2]
	}
	return h
}

func momentumHeadings(pts []geo.Point, smoothness int) []float64 {
	n := len(pts)
	h := make([]float64, n)
	if n < 2 {
		return h
	}
	if smoothness < 1 {
		smoothness = 1
	}
	damping := math.Max(0.3, 1-float64(smoothness)*0.1)

	// The first waypoint looks well ahead so the opening frame already
	// faces down the road.
	look := min(max(3, smoothness), n-1)
	h[0] = geo.Bearing(pts[0], pts[look])

	for i := 1; i < n; i++ {
		remaining := n - 1 - i
		if remaining == 0 {
			h[i] = h[i-1]
			break
		}
		ahead := min(smoothness*2, remaining)
		raw := geo.Bearing(pts[i], pts[i+ahead])

		// Momentum ramps up over the first waypoints, weighting the
		// previous heading against the raw bearing. The blend follows the
		// shortest angular path between the two.
		momentum := geo.SmoothStep(math.Min(float64(i)*0.1, 0.8)) * damping
		h[i] = geo.NormalizeBearing(h[i-1] + (1-momentum)*geo.AngularDelta(h[i-1], raw))
	}
	return h
}
