package route

import (
	"math"

	"drivelapse/geo"
)

// Smooth densifies a path with a cardinal (Catmull-Rom family) spline.
// Between every consecutive point pair it inserts max(2, smoothness)
// spline samples, shaped by the neighboring points on either side; edge
// points act as their own neighbor. Higher smoothness lowers the spline
// tension, giving a gentler curve through turns.
//
// Latitude and longitude are smoothed independently on the same basis, a
// planar approximation that holds at driving-route scale but not near
// the poles or across the antimeridian.
//
// A path of two or fewer points is returned unchanged, since the spline
// has no neighbor context to work with.
func Smooth(path []geo.Point, smoothness int) []geo.Point {
	if len(path) <= 2 {
		return path
	}
	if smoothness < 1 {
		smoothness = 1
	}
	segments := max(2, smoothness)
	tension := math.Max(0.1, 1-float64(smoothness)*0.2)

	out := make([]geo.Point, 0, len(path)+(len(path)-1)*segments)
	for i := 0; i < len(path)-1; i++ {
		p0 := path[max(i-1, 0)]
		p1 := path[i]
		p2 := path[i+1]
		p3 := path[min(i+2, len(path)-1)]

		out = append(out, p1)
		for k := 1; k <= segments; k++ {
			t := float64(k) / float64(segments+1)
			out = append(out, geo.Point{
				Lat: hermite(p0.Lat, p1.Lat, p2.Lat, p3.Lat, t, tension),
				Lng: hermite(p0.Lng, p1.Lng, p2.Lng, p3.Lng, t, tension),
			})
		}
	}
	return append(out, path[len(path)-1])
}

// hermite evaluates the cubic Hermite form of the spline between p1 and
// p2 at parameter t, with tangents taken across the neighbor points and
// scaled by the tension coefficient.
func hermite(p0, p1, p2, p3, t, tension float64) float64 {
	m1 := tension * (p2 - p0)
	m2 := tension * (p3 - p1)

	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*p1 + h10*m1 + h01*p2 + h11*m2
}
