package route

import (
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"drivelapse/geo"
)

// FromGPXFile loads a recorded GPX track as a route path. Tracks,
// segments, and points are concatenated in file order, so a multi-segment
// recording becomes one continuous path.
func FromGPXFile(path string) ([]geo.Point, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse gpx %s: %w", path, err)
	}
	return gpxPath(g), nil
}

// FromGPX reads GPX XML from r and returns the concatenated track points.
func FromGPX(r io.Reader) ([]geo.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read gpx: %w", err)
	}
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse gpx: %w", err)
	}
	return gpxPath(g), nil
}

func gpxPath(g *gpx.GPX) []geo.Point {
	var path []geo.Point
	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				path = append(path, geo.Point{Lat: p.Latitude, Lng: p.Longitude})
			}
		}
	}
	// Planner exports sometimes carry <rte> elements instead of tracks.
	if len(path) == 0 {
		for _, rte := range g.Routes {
			for _, p := range rte.Points {
				path = append(path, geo.Point{Lat: p.Latitude, Lng: p.Longitude})
			}
		}
	}
	return path
}
