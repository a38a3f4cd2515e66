package main

import (
	"flag"
	"runtime"
	"time"

	"drivelapse/config"
)

// --- Structs ---

type Arguments struct {
	// Route sources, one of which must be given.
	Origin      string
	Destination string
	Polyline    string
	GpxFile     string

	// Outputs.
	OutputFile    string
	PreviewFile   string
	WaypointsFile string
	GeoJSONFile   string

	ConfigFile string

	// Tunables; only explicitly set flags override the config.
	IntervalDistance float64
	Smoothness       int
	HeadingPolicy    string
	Eased            bool
	NoSmoothing      bool
	FrameRate        int
	Interpolation    int
	Crossfade        float64
	CrossfadeMode    string
	MotionBlur       bool
	Width            int
	Height           int
	FOV              int
	Pitch            int
	APIKey           string
	CacheDir         string
	Workers          int
	Throttle         time.Duration
	LogLevel         string
}

// --- Argument Parsing ---

func parseArguments() *Arguments {
	args := &Arguments{}

	flag.StringVar(&args.Origin, "origin", "", "Route start as an address or lat,lng pair.")
	flag.StringVar(&args.Destination, "destination", "", "Route end as an address or lat,lng pair.")
	flag.StringVar(&args.Polyline, "route", "", "Encoded route polyline, bypassing the directions lookup.")
	flag.StringVar(&args.GpxFile, "gpx", "", "Path to a GPX track to use as the route.")

	flag.StringVar(&args.OutputFile, "o", "", "Output file; .gif encodes a GIF, anything else goes through ffmpeg.")
	flag.StringVar(&args.PreviewFile, "preview", "", "Write a PNG route card to this file.")
	flag.StringVar(&args.WaypointsFile, "waypoints", "", "Write the waypoint sequence as JSON to this file.")
	flag.StringVar(&args.GeoJSONFile, "geojson", "", "Write the path and waypoints as GeoJSON to this file.")
	flag.StringVar(&args.ConfigFile, "config", "", "Optional config file.")

	flag.Float64Var(&args.IntervalDistance, "interval", 10, "Distance between captures in meters.")
	flag.IntVar(&args.Smoothness, "smoothness", 3, "Path smoothing strength (1 = minimal).")
	flag.StringVar(&args.HeadingPolicy, "heading", "momentum", "Heading policy: momentum or local.")
	flag.BoolVar(&args.Eased, "eased", false, "Ease sample placement within segments.")
	flag.BoolVar(&args.NoSmoothing, "no-smoothing", false, "Resample the raw path without spline smoothing.")
	flag.IntVar(&args.FrameRate, "framerate", 10, "Playback frame rate of captured frames.")
	flag.IntVar(&args.Interpolation, "interpolation", 1, "Blended frames per gap (1 = none).")
	flag.Float64Var(&args.Crossfade, "crossfade", 0, "Crossfade strength in [0,1] (0 = off).")
	flag.StringVar(&args.CrossfadeMode, "crossfade-mode", "screen", "Crossfade formula: screen or alpha.")
	flag.BoolVar(&args.MotionBlur, "motion-blur", false, "Blur blend sources proportionally to blend ratio.")
	flag.IntVar(&args.Width, "width", 640, "Capture width in pixels.")
	flag.IntVar(&args.Height, "height", 400, "Capture height in pixels.")
	flag.IntVar(&args.FOV, "fov", 90, "Camera field of view in degrees.")
	flag.IntVar(&args.Pitch, "pitch", 0, "Camera pitch in degrees.")
	flag.StringVar(&args.APIKey, "key", "", "Imagery and directions API key.")
	flag.StringVar(&args.CacheDir, "cache", "", "Directory for the on-disk imagery cache.")
	flag.IntVar(&args.Workers, "workers", runtime.NumCPU(), "Concurrent fetch and blend workers.")
	flag.DurationVar(&args.Throttle, "throttle", 0, "Pause before each imagery request (e.g. 200ms).")
	flag.StringVar(&args.LogLevel, "log-level", "info", "Log level: debug, info, warn, or error.")

	flag.Parse()
	return args
}

// applyOverrides copies explicitly set flags over the loaded config, so
// the precedence is flags over environment over file over defaults.
func (a *Arguments) applyOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.IntervalDistance = a.IntervalDistance
		case "smoothness":
			cfg.Smoothness = a.Smoothness
		case "heading":
			cfg.HeadingPolicy = a.HeadingPolicy
		case "eased":
			cfg.EasedResampling = a.Eased
		case "no-smoothing":
			cfg.SkipSmoothing = a.NoSmoothing
		case "framerate":
			cfg.FrameRate = a.FrameRate
		case "interpolation":
			cfg.Interpolation = a.Interpolation
		case "crossfade":
			cfg.CrossfadeStrength = a.Crossfade
		case "crossfade-mode":
			cfg.CrossfadeMode = a.CrossfadeMode
		case "motion-blur":
			cfg.MotionBlur = a.MotionBlur
		case "width":
			cfg.Width = a.Width
		case "height":
			cfg.Height = a.Height
		case "fov":
			cfg.FOV = a.FOV
		case "pitch":
			cfg.Pitch = a.Pitch
		case "key":
			cfg.APIKey = a.APIKey
		case "cache":
			cfg.CacheDir = a.CacheDir
		case "workers":
			cfg.Workers = a.Workers
		case "throttle":
			cfg.Throttle = a.Throttle
		case "log-level":
			cfg.LogLevel = a.LogLevel
		}
	})
}
