// Package polyline implements the encoded polyline format used by mapping
// providers: coordinate deltas scaled to a fixed precision, zigzag-signed,
// and written as base-64-offset ASCII chunks of five bits each.
package polyline

import (
	"fmt"
	"strings"

	"drivelapse/geo"
)

// DefaultPrecision is the scale factor of the standard encoding (five
// decimal places, roughly meter resolution). Some providers use 1e-6.
const DefaultPrecision = 1e-5

// DecodeError reports malformed polyline text. It carries the byte offset
// at which decoding failed.
type DecodeError struct {
	Index  int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("polyline: invalid encoding at byte %d: %s", e.Index, e.Reason)
}

// Decode converts an encoded polyline string into an ordered point
// sequence at DefaultPrecision. An empty string yields an empty sequence.
func Decode(encoded string) ([]geo.Point, error) {
	return DecodeWithPrecision(encoded, DefaultPrecision)
}

// DecodeWithPrecision decodes with a custom precision factor.
func DecodeWithPrecision(encoded string, precision float64) ([]geo.Point, error) {
	var points []geo.Point
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		dLat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += dLat

		if index >= len(encoded) {
			return nil, &DecodeError{Index: index, Reason: "longitude component missing"}
		}
		dLng, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += dLng

		p := geo.Point{Lat: float64(lat) * precision, Lng: float64(lng) * precision}
		if !p.Valid() {
			return nil, &DecodeError{
				Index:  index,
				Reason: fmt.Sprintf("coordinate out of range: %.5f,%.5f", p.Lat, p.Lng),
			}
		}
		points = append(points, p)
	}

	return points, nil
}

// decodeValue reads one zigzag-encoded delta starting at index and returns
// the delta plus the index of the byte after it.
func decodeValue(encoded string, index int) (int, int, error) {
	shift, result := 0, 0

	for {
		if index >= len(encoded) {
			return 0, 0, &DecodeError{Index: index, Reason: "unterminated chunk sequence"}
		}
		b := int(encoded[index]) - 63
		if b < 0 || b > 63 {
			return 0, 0, &DecodeError{
				Index:  index,
				Reason: fmt.Sprintf("character %q outside encoding alphabet", encoded[index]),
			}
		}
		if shift > 30 {
			return 0, 0, &DecodeError{Index: index, Reason: "chunk sequence overflows 32 bits"}
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode converts a point sequence into an encoded polyline string at
// DefaultPrecision.
func Encode(points []geo.Point) string {
	return EncodeWithPrecision(points, DefaultPrecision)
}

// EncodeWithPrecision encodes with a custom precision factor.
func EncodeWithPrecision(points []geo.Point, precision float64) string {
	var sb strings.Builder
	prevLat, prevLng := 0, 0

	for _, p := range points {
		lat := round(p.Lat / precision)
		lng := round(p.Lng / precision)
		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}

	return sb.String()
}

func encodeValue(sb *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
