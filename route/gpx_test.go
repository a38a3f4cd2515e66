package route

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="drivelapse-test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>morning drive</name>
    <trkseg>
      <trkpt lat="52.5200" lon="13.4050"></trkpt>
      <trkpt lat="52.5210" lon="13.4060"></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="52.5220" lon="13.4070"></trkpt>
    </trkseg>
  </trk>
</gpx>`

const routeGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="drivelapse-test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <rtept lat="48.8566" lon="2.3522"></rtept>
    <rtept lat="48.8570" lon="2.3530"></rtept>
  </rte>
</gpx>`

func TestFromGPXConcatenatesSegments(t *testing.T) {
	path, err := FromGPX(strings.NewReader(trackGPX))
	require.NoError(t, err)
	require.Len(t, path, 3)

	assert.InDelta(t, 52.5200, path[0].Lat, 1e-6)
	assert.InDelta(t, 13.4050, path[0].Lng, 1e-6)
	assert.InDelta(t, 52.5220, path[2].Lat, 1e-6)
}

func TestFromGPXRouteElements(t *testing.T) {
	path, err := FromGPX(strings.NewReader(routeGPX))
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.InDelta(t, 48.8566, path[0].Lat, 1e-6)
}

func TestFromGPXMalformed(t *testing.T) {
	_, err := FromGPX(strings.NewReader("<gpx><trk>"))
	assert.Error(t, err)
}
