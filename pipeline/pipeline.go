// Package pipeline chains the route stages into one run: flatten the
// route, smooth the path, resample it at a fixed interval, and estimate
// a heading per waypoint. A Pipeline is immutable once built, so one
// instance can serve any number of runs.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"drivelapse/frame"
	"drivelapse/geo"
	"drivelapse/polyline"
	"drivelapse/route"
)

// Defaults applied by New for unset options.
const (
	DefaultIntervalDistance = 10.0
	DefaultSmoothness       = 3
)

// Options tunes one pipeline. The zero value picks the defaults.
type Options struct {
	// IntervalDistance is the along-path spacing between waypoints in
	// meters.
	IntervalDistance float64

	// Smoothness drives spline density and tension as well as heading
	// look-ahead and momentum damping. Higher is smoother.
	Smoothness int

	// HeadingPolicy selects local or momentum heading estimation;
	// momentum when unset.
	HeadingPolicy route.HeadingPolicy

	// SkipSmoothing resamples the raw flattened path without spline
	// densification.
	SkipSmoothing bool

	// EasedResampling warps sample placement through the cubic ease
	// curve, trading exact spacing for softer starts and stops.
	EasedResampling bool

	// Enhance configures the frame stage applied by EnhanceFrames. The
	// zero value passes frames through unchanged.
	Enhance frame.Enhancer
}

func (o Options) withDefaults() Options {
	if o.IntervalDistance == 0 {
		o.IntervalDistance = DefaultIntervalDistance
	}
	if o.Smoothness == 0 {
		o.Smoothness = DefaultSmoothness
	}
	if o.HeadingPolicy == "" {
		o.HeadingPolicy = route.HeadingMomentum
	}
	return o
}

func (o Options) validate() error {
	var errs []error
	if o.IntervalDistance <= 0 {
		errs = append(errs, fmt.Errorf("interval distance must be positive, got %g", o.IntervalDistance))
	}
	if o.Smoothness < 1 {
		errs = append(errs, fmt.Errorf("smoothness must be at least 1, got %d", o.Smoothness))
	}
	if !o.HeadingPolicy.Valid() {
		errs = append(errs, fmt.Errorf("unknown heading policy %q", o.HeadingPolicy))
	}
	return errors.Join(errs...)
}

// Pipeline turns routes into camera waypoints under one fixed set of
// options.
type Pipeline struct {
	opts Options
}

// New fills in defaults for unset options, validates the result, and
// returns a ready pipeline.
func New(opts Options) (*Pipeline, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("pipeline options: %w", err)
	}
	return &Pipeline{opts: opts}, nil
}

// Options returns the effective options after defaulting.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Result carries the waypoints of one run, the raw input path, the
// smoothed path the waypoints were sampled from, and some run
// accounting.
type Result struct {
	Raw       []geo.Point
	Path      []geo.Point
	Waypoints []route.Waypoint
	Stats     Stats
}

// Stats summarizes one run.
type Stats struct {
	RawPoints  int
	PathPoints int
	Waypoints  int
	PathLength float64 // meters
	Elapsed    time.Duration
}

// FromRoute flattens the route and runs the waypoint stages on it.
func (p *Pipeline) FromRoute(r route.Route) (*Result, error) {
	path, err := route.Flatten(r)
	if err != nil {
		return nil, err
	}
	return p.Waypoints(path), nil
}

// FromPolyline runs the waypoint stages on a single encoded polyline.
func (p *Pipeline) FromPolyline(encoded string) (*Result, error) {
	path, err := polyline.Decode(encoded)
	if err != nil {
		return nil, err
	}
	return p.Waypoints(path), nil
}

// Waypoints runs smoothing, resampling, and heading estimation over a
// raw path. A path of fewer than two points yields a result with no
// waypoints.
func (p *Pipeline) Waypoints(raw []geo.Point) *Result {
	start := time.Now()

	path := raw
	if !p.opts.SkipSmoothing {
		path = route.Smooth(raw, p.opts.Smoothness)
	}

	var positions []geo.Point
	if p.opts.EasedResampling {
		positions = route.ResampleEased(path, p.opts.IntervalDistance)
	} else {
		positions = route.Resample(path, p.opts.IntervalDistance)
	}
	waypoints := route.WithHeadings(positions, p.opts.HeadingPolicy, p.opts.Smoothness)

	stats := Stats{
		RawPoints:  len(raw),
		PathPoints: len(path),
		Waypoints:  len(waypoints),
		PathLength: route.Length(path),
		Elapsed:    time.Since(start),
	}
	slog.Debug("pipeline run finished",
		"raw_points", stats.RawPoints,
		"path_points", stats.PathPoints,
		"waypoints", stats.Waypoints,
		"path_length_m", stats.PathLength,
		"elapsed", stats.Elapsed,
	)

	return &Result{Raw: raw, Path: path, Waypoints: waypoints, Stats: stats}
}

// EnhanceFrames runs the frame stage over captured frames: interpolated
// in-betweens, optional crossfade, optional motion blur, per the
// Enhance options.
func (p *Pipeline) EnhanceFrames(frames []frame.Frame) ([]frame.Frame, error) {
	return p.opts.Enhance.Enhance(frames)
}
