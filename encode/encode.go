// Package encode serializes finished frame sequences into playable
// containers: an animated GIF via the standard library, or any format
// ffmpeg can write via a PNG pipe.
package encode

import (
	"fmt"
	"math"

	"drivelapse/frame"
)

// Writer receives frames in presentation order and finalizes the
// container on Close.
type Writer interface {
	Add(frame.Frame) error
	Close() error
}

// DelayCentiseconds converts a capture frame rate and interpolation
// factor into the per-frame GIF delay. Interpolated frames multiply the
// frame count, so the delay shrinks by the same factor to keep total
// playback duration unchanged.
func DelayCentiseconds(frameRate, interpolation int) int {
	if frameRate < 1 {
		frameRate = 1
	}
	if interpolation < 1 {
		interpolation = 1
	}
	d := int(math.Round(100 / float64(frameRate*interpolation)))
	// Most players treat delays under 2cs as a full 100ms.
	if d < 2 {
		d = 2
	}
	return d
}

// WriteSequence adds every frame in order and closes the writer.
func WriteSequence(w Writer, frames []frame.Frame) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	for i, f := range frames {
		if err := w.Add(f); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}
