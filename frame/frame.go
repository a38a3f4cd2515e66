// Package frame holds raw RGBA pixel buffers and the blending operations
// that turn a sparse sequence of captured stills into a dense, smooth
// one. Frames are treated as immutable values; every operation allocates
// its output.
package frame

import (
	"fmt"
	"image"
	"image/draw"
)

// Frame is a packed 4-channel row-major pixel buffer. The buffer length
// must equal Width*Height*4 for a frame to be usable.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
}

// BufferMismatchError reports a pixel buffer that does not fit the frame
// geometry it is supposed to carry.
type BufferMismatchError struct {
	Width  int
	Height int
	Len    int
}

func (e *BufferMismatchError) Error() string {
	return fmt.Sprintf("frame: buffer length %d does not fit %dx%d (want %d)",
		e.Len, e.Width, e.Height, 4*e.Width*e.Height)
}

// New allocates a zeroed frame of the given dimensions.
func New(width, height int) Frame {
	return Frame{
		Pixels: make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// FromImage copies img into a packed RGBA frame.
func FromImage(img image.Image) Frame {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return Frame{Pixels: rgba.Pix, Width: bounds.Dx(), Height: bounds.Dy()}
}

// Image wraps the pixel buffer as an image without copying.
func (f Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pixels,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Validate checks the buffer length against the declared dimensions.
func (f Frame) Validate() error {
	if len(f.Pixels) != f.Width*f.Height*4 {
		return &BufferMismatchError{Width: f.Width, Height: f.Height, Len: len(f.Pixels)}
	}
	return nil
}

// compatible reports whether two frames can be combined pixel for pixel.
func compatible(a, b Frame) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.Width != b.Width || a.Height != b.Height {
		return &BufferMismatchError{Width: a.Width, Height: a.Height, Len: len(b.Pixels)}
	}
	return nil
}
