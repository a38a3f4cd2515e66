package route

import (
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelapse/geo"
)

func TestGeoJSON(t *testing.T) {
	path := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0.001, Lng: 0},
	}
	waypoints := WithHeadings(Resample(path, 50), HeadingLocal, 1)

	fc := GeoJSON(path, waypoints)
	require.Len(t, fc.Features, 1+len(waypoints))

	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, decoded.Features, 1+len(waypoints))

	line := decoded.Features[0]
	assert.Equal(t, "LineString", line.Geometry.GeoJSONType())
	assert.Equal(t, "path", line.Properties["kind"])

	first := decoded.Features[1]
	assert.Equal(t, "Point", first.Geometry.GeoJSONType())
	assert.Equal(t, "waypoint", first.Properties["kind"])
	assert.InDelta(t, 0, first.Properties.MustFloat64("heading"), 0.01)
}

func TestGeoJSONEmpty(t *testing.T) {
	fc := GeoJSON(nil, nil)
	assert.Empty(t, fc.Features)
}
