package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"drivelapse/config"
	"drivelapse/directions"
	"drivelapse/encode"
	"drivelapse/frame"
	"drivelapse/geo"
	"drivelapse/logging"
	"drivelapse/pipeline"
	"drivelapse/polyline"
	"drivelapse/preview"
	"drivelapse/route"
	"drivelapse/streetview"
)

const (
	directionsTimeout = time.Minute
	previewWidth      = 800
	previewHeight     = 500
)

// --- Main Logic ---

func main() {
	args := parseArguments()

	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	args.applyOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.Setup(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := resolveRoute(ctx, args, cfg)
	if err != nil {
		log.Fatalf("Error resolving route: %v", err)
	}

	pipe, err := pipeline.New(pipeline.Options{
		IntervalDistance: cfg.IntervalDistance,
		Smoothness:       cfg.Smoothness,
		HeadingPolicy:    route.HeadingPolicy(cfg.HeadingPolicy),
		SkipSmoothing:    cfg.SkipSmoothing,
		EasedResampling:  cfg.EasedResampling,
		Enhance: frame.Enhancer{
			Interpolation:     cfg.Interpolation,
			CrossfadeStrength: cfg.CrossfadeStrength,
			CrossfadeMode:     frame.CrossfadeMode(cfg.CrossfadeMode),
			MotionBlur:        cfg.MotionBlur,
			Workers:           cfg.Workers,
		},
	})
	if err != nil {
		log.Fatalf("Error building pipeline: %v", err)
	}

	res := pipe.Waypoints(path)
	if len(res.Waypoints) == 0 {
		log.Fatal("Route has too few points to sample.")
	}
	slog.Info("route processed",
		"waypoints", res.Stats.Waypoints,
		"path_km", res.Stats.PathLength/1000,
		"interval_m", cfg.IntervalDistance,
	)

	if args.WaypointsFile != "" {
		if err := writeWaypoints(args.WaypointsFile, res.Waypoints); err != nil {
			log.Fatalf("Error writing waypoints: %v", err)
		}
		slog.Info("waypoints written", "file", args.WaypointsFile)
	}
	if args.GeoJSONFile != "" {
		if err := writeGeoJSON(args.GeoJSONFile, res); err != nil {
			log.Fatalf("Error writing GeoJSON: %v", err)
		}
		slog.Info("geojson written", "file", args.GeoJSONFile)
	}
	if args.PreviewFile != "" {
		if err := preview.Save(args.PreviewFile, res, previewWidth, previewHeight); err != nil {
			log.Fatalf("Error writing preview: %v", err)
		}
		slog.Info("preview written", "file", args.PreviewFile)
	}

	if args.OutputFile == "" {
		return
	}

	// --- Capture & Encode ---

	sv := streetview.New(streetview.Config{
		APIKey:   cfg.APIKey,
		CacheDir: cfg.CacheDir,
		Width:    cfg.Width,
		Height:   cfg.Height,
		FOV:      cfg.FOV,
		Pitch:    cfg.Pitch,
		Workers:  cfg.Workers,
		Throttle: cfg.Throttle,
	})
	if ok, err := sv.Metadata(ctx, res.Waypoints[0]); err != nil {
		slog.Warn("coverage probe failed, fetching anyway", "err", err)
	} else if !ok {
		log.Fatal("No imagery coverage at the route start.")
	}

	frames, err := sv.Prefetch(ctx, res.Waypoints)
	if err != nil {
		log.Fatalf("Error fetching imagery: %v", err)
	}

	enhanced, err := pipe.EnhanceFrames(frames)
	if err != nil {
		log.Fatalf("Error enhancing frames: %v", err)
	}
	slog.Info("frames ready", "captured", len(frames), "total", len(enhanced))

	if err := encodeFrames(args.OutputFile, enhanced, cfg); err != nil {
		log.Fatalf("Error encoding: %v", err)
	}

	fmt.Printf("\nSaved %s (%d frames).\n", args.OutputFile, len(enhanced))
}

func resolveRoute(ctx context.Context, args *Arguments, cfg config.Config) ([]geo.Point, error) {
	switch {
	case args.Polyline != "":
		return polyline.Decode(args.Polyline)
	case args.GpxFile != "":
		return route.FromGPXFile(args.GpxFile)
	case args.Origin != "" && args.Destination != "":
		ctx, cancel := context.WithTimeout(ctx, directionsTimeout)
		defer cancel()

		r, err := directions.NewClient(cfg.APIKey).Route(ctx, args.Origin, args.Destination)
		if err != nil {
			return nil, err
		}
		slog.Info("route found",
			"summary", r.Summary,
			"distance_km", r.Distance/1000,
			"steps", len(r.Steps),
		)
		return route.Flatten(r)
	default:
		return nil, errors.New("pass -origin and -destination, -route, or -gpx")
	}
}

func writeWaypoints(path string, waypoints []route.Waypoint) error {
	data, err := json.MarshalIndent(waypoints, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeGeoJSON(path string, res *pipeline.Result) error {
	data, err := route.GeoJSON(res.Path, res.Waypoints).MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func encodeFrames(path string, frames []frame.Frame, cfg config.Config) error {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := encode.WriteSequence(encode.NewGIF(f, cfg.FrameRate, cfg.Interpolation), frames); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	w, err := encode.NewVideo(path, cfg.FrameRate, cfg.Interpolation)
	if err != nil {
		return err
	}
	return encode.WriteSequence(w, frames)
}
