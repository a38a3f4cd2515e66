package polyline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelapse/geo"
)

func TestDecode(t *testing.T) {
	// Worked example from the format documentation.
	points, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, points, 3)

	want := []geo.Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	for i, p := range points {
		assert.InDelta(t, want[i].Lat, p.Lat, 1e-9, "point %d lat", i)
		assert.InDelta(t, want[i].Lng, p.Lng, 1e-9, "point %d lng", i)
	}
}

func TestDecodeEmpty(t *testing.T) {
	points, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		reason  string
	}{
		{
			name:    "truncated mid chunk",
			encoded: "_p~i",
			reason:  "unterminated chunk sequence",
		},
		{
			name:    "missing longitude",
			encoded: "_p~iF",
			reason:  "longitude component missing",
		},
		{
			name:    "character below alphabet",
			encoded: "_p~iF~ps|U !",
			reason:  "outside encoding alphabet",
		},
		{
			name:    "overflowing chunk sequence",
			encoded: strings.Repeat("_", 10) + "F",
			reason:  "overflows 32 bits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Contains(t, decodeErr.Reason, tt.reason)
		})
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	// A latitude beyond the poles encodes fine but must be rejected on
	// the way back out.
	encoded := Encode([]geo.Point{{Lat: 91.0, Lng: 0.0}})

	_, err := Decode(encoded)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, decodeErr.Reason, "out of range")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []geo.Point{
		{Lat: 52.52, Lng: 13.405},
		{Lat: 52.51, Lng: 13.41},
		{Lat: -33.86882, Lng: 151.20929},
		{Lat: -33.87, Lng: 151.21},
		{Lat: 0.00001, Lng: -0.00001},
		{Lat: 0, Lng: 0},
	}

	decoded, err := Decode(Encode(original))
	require.NoError(t, err)
	require.Len(t, decoded, len(original))

	for i := range original {
		assert.InDelta(t, original[i].Lat, decoded[i].Lat, DefaultPrecision/2, "point %d lat", i)
		assert.InDelta(t, original[i].Lng, decoded[i].Lng, DefaultPrecision/2, "point %d lng", i)
	}
}

func TestEncodeKnownValue(t *testing.T) {
	encoded := Encode([]geo.Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	})
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)
}

func TestDecodeWithPrecision(t *testing.T) {
	// The same text read at 1e-6 yields coordinates ten times smaller.
	points, err := DecodeWithPrecision("_p~iF~ps|U", 1e-6)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 3.85, points[0].Lat, 1e-9)
	assert.InDelta(t, -12.02, points[0].Lng, 1e-9)
}
