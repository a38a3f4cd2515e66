package frame

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// motionBlurMaxRadius is the horizontal blur window at full blend ratio.
const motionBlurMaxRadius = 5

// Enhancer expands a captured frame sequence with synthesized in-between
// frames so playback reads as continuous motion instead of a slideshow.
type Enhancer struct {
	// Interpolation is the number of frames per original gap; 1 leaves
	// the sequence as captured.
	Interpolation int

	// CrossfadeStrength adds one crossfade frame per gap when > 0.
	CrossfadeStrength float64

	// CrossfadeMode picks the crossfade formula; screen when unset.
	CrossfadeMode CrossfadeMode

	// MotionBlur smears the source frame horizontally before each blend,
	// proportionally to the blend ratio.
	MotionBlur bool

	// Workers bounds the goroutines computing blends; NumCPU when <= 0.
	Workers int
}

// Enhance returns the enlarged sequence: each original frame followed by
// its synthesized in-betweens, closed by the final original, which never
// gets trailing insertions. Output order is deterministic regardless of
// worker count. All frames must share one geometry.
func (e Enhancer) Enhance(frames []Frame) ([]Frame, error) {
	interp := e.Interpolation
	if interp < 1 {
		interp = 1
	}
	if len(frames) < 2 || (interp == 1 && e.CrossfadeStrength <= 0) {
		return frames, nil
	}

	for i, f := range frames {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if f.Width != frames[0].Width || f.Height != frames[0].Height {
			return nil, fmt.Errorf("frame %d: %w", i, &BufferMismatchError{
				Width:  frames[0].Width,
				Height: frames[0].Height,
				Len:    len(f.Pixels),
			})
		}
	}

	crossfade := e.CrossfadeStrength > 0
	perGap := interp
	if crossfade {
		perGap++
	}

	// Originals land in their slots up front; workers fill the gaps
	// between them, each writing a disjoint index range.
	out := make([]Frame, (len(frames)-1)*perGap+1)
	for g := 0; g < len(frames)-1; g++ {
		out[g*perGap] = frames[g]
	}
	out[len(out)-1] = frames[len(frames)-1]

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for g := 0; g < len(frames)-1; g++ {
		g := g
		group.Go(func() error {
			a, b := frames[g], frames[g+1]
			for j := 1; j < interp; j++ {
				ratio := float64(j) / float64(interp)
				src := a
				if e.MotionBlur {
					src = BoxBlur(a, int(math.Round(ratio*motionBlurMaxRadius)))
				}
				blended, err := Blend(src, b, ratio)
				if err != nil {
					return fmt.Errorf("gap %d blend %d: %w", g, j, err)
				}
				out[g*perGap+j] = blended
			}
			if crossfade {
				faded, err := Crossfade(a, b, e.CrossfadeStrength, e.CrossfadeMode)
				if err != nil {
					return fmt.Errorf("gap %d crossfade: %w", g, err)
				}
				out[g*perGap+interp] = faded
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
