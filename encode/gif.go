package encode

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"drivelapse/frame"
)

// GIF palettizes frames with Floyd-Steinberg dithering and writes an
// endlessly looping animated GIF on Close.
type GIF struct {
	w    io.Writer
	anim gif.GIF
	cs   int
}

// NewGIF returns a GIF writer whose per-frame delay plays an
// interpolation-enlarged sequence at the configured capture rate.
func NewGIF(w io.Writer, frameRate, interpolation int) *GIF {
	return &GIF{w: w, cs: DelayCentiseconds(frameRate, interpolation)}
}

// Add palettizes one frame and appends it to the animation.
func (g *GIF) Add(f frame.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	pal := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), palette.Plan9)
	draw.FloydSteinberg.Draw(pal, pal.Bounds(), f.Image(), image.Point{})
	g.anim.Image = append(g.anim.Image, pal)
	g.anim.Delay = append(g.anim.Delay, g.cs)
	return nil
}

// Close writes the assembled animation.
func (g *GIF) Close() error {
	if len(g.anim.Image) == 0 {
		return errors.New("encode: no frames added")
	}
	return gif.EncodeAll(g.w, &g.anim)
}
