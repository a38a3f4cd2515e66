package route

import (
	"log/slog"

	"drivelapse/geo"
)

// endpointSnap collapses a final interpolated point that lands on the
// path end within floating error, so the mandatory last waypoint is not
// emitted twice.
const endpointSnap = 1e-3 // meters

// Length returns the great-circle length of the path in meters.
func Length(path []geo.Point) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		total += geo.Haversine(path[i], path[i+1])
	}
	return total
}

// Resample walks the path accumulating great-circle distance and emits a
// position every interval meters, spherically interpolated to the exact
// fractional distance within the bracketing segment. Distance left over
// at a segment boundary carries into the next segment, so spacing is
// uniform along the path rather than per segment.
//
// The first and last path points are always included, whatever the
// spacing. Zero-length segments from duplicate adjacent points
// contribute nothing and emit nothing. A path of fewer than two points,
// or a non-positive interval, yields no positions.
func Resample(path []geo.Point, interval float64) []geo.Point {
	return resample(path, interval, nil)
}

// ResampleEased is Resample with each emission fraction warped through
// the cubic ease curve, pulling samples toward segment endpoints for a
// softer perceived start and stop. Spacing is then only approximately
// uniform; use Resample when exact arc-length spacing matters.
func ResampleEased(path []geo.Point, interval float64) []geo.Point {
	return resample(path, interval, geo.SmoothStep)
}

func resample(path []geo.Point, interval float64, ease func(float64) float64) []geo.Point {
	if len(path) < 2 || interval <= 0 {
		return nil
	}

	out := []geo.Point{path[0]}
	carried := 0.0

	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		segment := geo.Haversine(a, b)
		if segment == 0 {
			slog.Debug("skipping zero-length route segment", "index", i)
			continue
		}

		consumed := 0.0
		for carried+segment-consumed >= interval {
			consumed += interval - carried
			carried = 0
			f := consumed / segment
			if ease != nil {
				f = ease(f)
			}
			out = append(out, geo.Intermediate(a, b, f))
		}
		carried += segment - consumed
	}

	last := path[len(path)-1]
	if geo.Haversine(out[len(out)-1], last) < endpointSnap {
		out[len(out)-1] = last
	} else {
		out = append(out, last)
	}
	return out
}
