package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"drivelapse/geo"
)

// GeoJSON packages the path and its waypoints as a feature collection:
// one LineString for the path and one Point feature per waypoint
// carrying its sequence number and heading. Drop the output onto any map
// viewer to inspect what the camera will do.
func GeoJSON(path []geo.Point, waypoints []Waypoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(path) > 0 {
		line := make(orb.LineString, len(path))
		for i, p := range path {
			line[i] = orb.Point{p.Lng, p.Lat}
		}
		feature := geojson.NewFeature(line)
		feature.Properties["kind"] = "path"
		fc.Append(feature)
	}

	for i, w := range waypoints {
		feature := geojson.NewFeature(orb.Point{w.Lng, w.Lat})
		feature.Properties["kind"] = "waypoint"
		feature.Properties["seq"] = i
		feature.Properties["heading"] = w.Heading
		fc.Append(feature)
	}
	return fc
}
