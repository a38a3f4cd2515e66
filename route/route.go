// Package route turns a driving route into an evenly spaced sequence of
// camera waypoints. The stages are composable pure functions: Flatten
// joins per-step polylines into one path, Smooth densifies it with a
// cardinal spline, Resample walks it at a fixed arc-length interval, and
// WithHeadings assigns each position a viewing direction.
package route

import (
	"time"

	"drivelapse/geo"
	"drivelapse/polyline"
)

// Step is one maneuver of a route, carrying its own encoded polyline.
type Step struct {
	Polyline    string
	Distance    float64 // meters
	Duration    time.Duration
	Instruction string
}

// Route is an ordered list of steps plus the provider's overview
// polyline, which covers the whole route at lower point density.
type Route struct {
	Summary  string
	Steps    []Step
	Overview string
	Distance float64 // meters
	Duration time.Duration
}

// Waypoint is a resampled route position plus the viewing heading for
// the still image captured there.
type Waypoint struct {
	geo.Point
	Heading float64 `json:"heading"`
}

// Flatten decodes every step polyline and concatenates the results in
// step order. Join points are kept as-is; a coincident join surfaces as
// a zero-length segment that Resample skips. When the route carries no
// steps the overview polyline is used instead, and a route with neither
// yields an empty path.
func Flatten(r Route) ([]geo.Point, error) {
	if len(r.Steps) == 0 {
		if r.Overview == "" {
			return nil, nil
		}
		return polyline.Decode(r.Overview)
	}

	var path []geo.Point
	for _, step := range r.Steps {
		points, err := polyline.Decode(step.Polyline)
		if err != nil {
			return nil, err
		}
		path = append(path, points...)
	}
	return path, nil
}
