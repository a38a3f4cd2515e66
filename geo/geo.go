// Package geo provides the great-circle primitives used by the route
// pipeline: distance, bearing and interpolation between geographic points
// on a spherical Earth model.
package geo

import "math"

const earthRadiusM = 6371000.0

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies inside the usual coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(p1, p2 Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180

	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// Bearing returns the initial great-circle bearing from p1 to p2 in
// degrees, normalized to [0, 360). Two coincident points yield 0.
func Bearing(p1, p2 Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180

	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	return NormalizeBearing(math.Atan2(y, x) * 180 / math.Pi)
}

// NormalizeBearing wraps a bearing in degrees into [0, 360).
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngularDelta returns the signed shortest rotation from bearing `from` to
// bearing `to`, in degrees within [-180, 180).
func AngularDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d < -180 {
		d += 360
	} else if d >= 180 {
		d -= 360
	}
	return d
}

// Intermediate returns the point a fraction f along the great circle from
// p1 to p2. f=0 yields p1, f=1 yields p2. For near-coincident points the
// spherical formula degenerates (sin δ → 0), so it falls back to
// component-wise linear interpolation, which is exact in the limit.
func Intermediate(p1, p2 Point, f float64) Point {
	if f <= 0 {
		return p1
	}
	if f >= 1 {
		return p2
	}

	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180

	delta := Haversine(p1, p2) / earthRadiusM
	if delta < 1e-9 {
		return Point{
			Lat: p1.Lat + (p2.Lat-p1.Lat)*f,
			Lng: p1.Lng + (p2.Lng-p1.Lng)*f,
		}
	}

	sinDelta := math.Sin(delta)
	a := math.Sin((1-f)*delta) / sinDelta
	b := math.Sin(f*delta) / sinDelta

	x := a*math.Cos(lat1)*math.Cos(lng1) + b*math.Cos(lat2)*math.Cos(lng2)
	y := a*math.Cos(lat1)*math.Sin(lng1) + b*math.Cos(lat2)*math.Sin(lng2)
	z := a*math.Sin(lat1) + b*math.Sin(lat2)

	return Point{
		Lat: math.Atan2(z, math.Sqrt(x*x+y*y)) * 180 / math.Pi,
		Lng: math.Atan2(y, x) * 180 / math.Pi,
	}
}

// SmoothStep is the cubic ease t²(3-2t), clamped to [0, 1]. It is shared by
// the eased resampling mode and the heading momentum ramp.
func SmoothStep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
