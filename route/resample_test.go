package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelapse/geo"
)

func pathLength(path []geo.Point) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		total += geo.Haversine(path[i], path[i+1])
	}
	return total
}

func TestResampleNorthboundPath(t *testing.T) {
	// Roughly 111m due north, sampled every 50m: start, 50m, 100m, end.
	path := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0.001, Lng: 0},
	}

	out := Resample(path, 50)
	require.Len(t, out, 4)

	assert.Equal(t, path[0], out[0])
	assert.Equal(t, path[1], out[3])
	assert.InDelta(t, 0.00045, out[1].Lat, 0.00002)
	assert.InDelta(t, 0.0009, out[2].Lat, 0.00002)

	assert.InDelta(t, 50, geo.Haversine(out[0], out[1]), 0.01)
	assert.InDelta(t, 50, geo.Haversine(out[1], out[2]), 0.01)
}

func TestResampleWaypointCount(t *testing.T) {
	// Interior count tracks floor(length/interval) regardless of how the
	// path is segmented.
	path := []geo.Point{
		{Lat: 52.5200, Lng: 13.4050},
		{Lat: 52.5212, Lng: 13.4063},
		{Lat: 52.5214, Lng: 13.4101},
		{Lat: 52.5230, Lng: 13.4109},
		{Lat: 52.5251, Lng: 13.4112},
	}

	for _, interval := range []float64{25, 50, 120} {
		out := Resample(path, interval)
		interior := len(out) - 2
		want := math.Floor(pathLength(path) / interval)
		assert.InDelta(t, want, float64(interior), 1, "interval %.0f", interval)
	}
}

func TestResampleSpacing(t *testing.T) {
	// A straight path, so great-circle distance between waypoints equals
	// distance along the path and spacing can be checked directly.
	path := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0.0004, Lng: 0},
		{Lat: 0.0007, Lng: 0},
		{Lat: 0.003, Lng: 0},
	}

	const interval = 40.0
	out := Resample(path, interval)
	require.Greater(t, len(out), 3)

	// Spacing is exact except for the final leg, which absorbs whatever
	// length remains before the mandatory endpoint.
	for i := 0; i+2 < len(out); i++ {
		assert.InDelta(t, interval, geo.Haversine(out[i], out[i+1]), 0.01, "gap %d", i)
	}
	assert.LessOrEqual(t, geo.Haversine(out[len(out)-2], out[len(out)-1]), interval+0.01)
}

func TestResampleDegenerateInputs(t *testing.T) {
	tests := []struct {
		name     string
		path     []geo.Point
		interval float64
	}{
		{name: "nil path", path: nil, interval: 10},
		{name: "single point", path: []geo.Point{{Lat: 1, Lng: 1}}, interval: 10},
		{name: "zero interval", path: []geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, interval: 0},
		{name: "negative interval", path: []geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, interval: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Resample(tt.path, tt.interval))
		})
	}
}

func TestResampleEmptyFlattenedRoute(t *testing.T) {
	path, err := Flatten(Route{})
	require.NoError(t, err)
	assert.Empty(t, Resample(path, 10))
}

func TestResampleSkipsDuplicatePoints(t *testing.T) {
	a := geo.Point{Lat: 0, Lng: 0}
	b := geo.Point{Lat: 0.001, Lng: 0}

	withDup := Resample([]geo.Point{a, a, b, b}, 50)
	clean := Resample([]geo.Point{a, b}, 50)

	require.Equal(t, len(clean), len(withDup))
	for i := range clean {
		assert.InDelta(t, clean[i].Lat, withDup[i].Lat, 1e-12, "point %d", i)
		assert.False(t, math.IsNaN(withDup[i].Lat), "point %d", i)
	}

	// No zero-length gaps between emitted waypoints.
	for i := 0; i+1 < len(withDup); i++ {
		assert.Greater(t, geo.Haversine(withDup[i], withDup[i+1]), 0.0)
	}
}

func TestResampleIdempotent(t *testing.T) {
	// Unevenly segmented but straight, so resampling the output again
	// walks the same geometry.
	path := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0.0004, Lng: 0},
		{Lat: 0.0007, Lng: 0},
		{Lat: 0.003, Lng: 0},
	}

	const interval = 35.0
	once := Resample(path, interval)
	twice := Resample(once, interval)

	assert.InDelta(t, len(once), len(twice), 1)
	assert.Equal(t, once[0], twice[0])
	assert.Equal(t, once[len(once)-1], twice[len(twice)-1])

	// Every re-resampled position lands on (or within noise of) one of
	// the originals.
	for i, p := range twice {
		nearest := math.Inf(1)
		for _, q := range once {
			nearest = math.Min(nearest, geo.Haversine(p, q))
		}
		assert.Less(t, nearest, 0.05, "point %d", i)
	}
}

func TestResampleEased(t *testing.T) {
	path := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0.001, Lng: 0},
	}

	linear := Resample(path, 50)
	eased := ResampleEased(path, 50)

	require.Equal(t, len(linear), len(eased))
	assert.Equal(t, linear[0], eased[0])
	assert.Equal(t, linear[len(linear)-1], eased[len(eased)-1])

	// The ease curve pulls the first interior sample back toward the
	// segment start.
	assert.Less(t, eased[1].Lat, linear[1].Lat)
}
