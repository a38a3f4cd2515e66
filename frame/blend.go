package frame

import "math"

// CrossfadeMode selects the compositing formula used for crossfade
// frames.
type CrossfadeMode string

const (
	// CrossfadeScreen composites with a lightening screen blend, giving
	// a brighter, flare-like transition.
	CrossfadeScreen CrossfadeMode = "screen"

	// CrossfadeAlpha is a straight alpha dissolve between the two
	// frames.
	CrossfadeAlpha CrossfadeMode = "alpha"
)

// Valid reports whether m names a known mode.
func (m CrossfadeMode) Valid() bool {
	return m == CrossfadeScreen || m == CrossfadeAlpha
}

// Blend linearly mixes the RGB channels of a and b at the given ratio
// (0 = all a, 1 = all b). The alpha channel is copied from a. Frames of
// different geometry cannot be blended.
func Blend(a, b Frame, ratio float64) (Frame, error) {
	if err := compatible(a, b); err != nil {
		return Frame{}, err
	}
	ratio = clamp01(ratio)

	out := New(a.Width, a.Height)
	for i := 0; i < len(a.Pixels); i += 4 {
		out.Pixels[i+0] = lerpByte(a.Pixels[i+0], b.Pixels[i+0], ratio)
		out.Pixels[i+1] = lerpByte(a.Pixels[i+1], b.Pixels[i+1], ratio)
		out.Pixels[i+2] = lerpByte(a.Pixels[i+2], b.Pixels[i+2], ratio)
		out.Pixels[i+3] = a.Pixels[i+3]
	}
	return out, nil
}

// Crossfade composites b over a at the given strength. Screen mode
// lightens toward the screen composite of the two frames; alpha mode is
// a plain dissolve. The alpha channel is copied from a either way.
func Crossfade(a, b Frame, strength float64, mode CrossfadeMode) (Frame, error) {
	if err := compatible(a, b); err != nil {
		return Frame{}, err
	}
	strength = clamp01(strength)

	out := New(a.Width, a.Height)
	for i := 0; i < len(a.Pixels); i += 4 {
		for c := 0; c < 3; c++ {
			av := float64(a.Pixels[i+c])
			bv := float64(b.Pixels[i+c])
			target := bv
			if mode != CrossfadeAlpha {
				target = 255 - (255-av)*(255-bv)/255
			}
			out.Pixels[i+c] = byte(math.Round(av + (target-av)*strength))
		}
		out.Pixels[i+3] = a.Pixels[i+3]
	}
	return out, nil
}

// BoxBlur smears the frame horizontally with a sliding-window average of
// the given radius, approximating lateral motion streak. A radius of
// zero or less returns the frame unchanged.
func BoxBlur(f Frame, radius int) Frame {
	if radius <= 0 {
		return f
	}

	out := New(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		base := y * f.Width * 4

		var sum [4]int
		count := 0
		for x := 0; x <= radius && x < f.Width; x++ {
			off := base + x*4
			for c := 0; c < 4; c++ {
				sum[c] += int(f.Pixels[off+c])
			}
			count++
		}

		for x := 0; x < f.Width; x++ {
			off := base + x*4
			for c := 0; c < 4; c++ {
				out.Pixels[off+c] = byte(sum[c] / count)
			}
			if next := x + radius + 1; next < f.Width {
				for c := 0; c < 4; c++ {
					sum[c] += int(f.Pixels[base+next*4+c])
				}
				count++
			}
			if prev := x - radius; prev >= 0 {
				for c := 0; c < 4; c++ {
					sum[c] -= int(f.Pixels[base+prev*4+c])
				}
				count--
			}
		}
	}
	return out
}

func lerpByte(a, b byte, t float64) byte {
	return byte(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
